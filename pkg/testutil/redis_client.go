package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for xredis.Client. Sorted
// sets and plain keys behave like the real thing minus expiration;
// individual funcs can be overridden per test.
type MockRedisClient struct {
	mutex sync.Mutex

	values map[string]string
	zsets  map[string]map[string]float64

	ExistFunc func(ctx context.Context, key string) (bool, error)
	SetFunc   func(ctx context.Context, key, value string, expiration time.Duration) error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		values: map[string]string{},
		zsets:  map[string]map[string]float64{},
	}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.values[key]; ok {
		return true, nil
	}

	_, ok := m.zsets[key]
	return ok, nil
}

func (m *MockRedisClient) MGet(ctx context.Context, keys ...string) ([]any, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	results := make([]any, 0, len(keys))
	for _, key := range keys {
		if value, ok := m.values[key]; ok {
			results = append(results, value)
		} else {
			results = append(results, nil)
		}
	}

	return results, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = value
	return nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, key := range keys {
		delete(m.values, key)
		delete(m.zsets, key)
	}

	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}

	m.zsets[key][z.Member.(string)] = z.Score
	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}

	m.zsets[key][member] += float64(incr)
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	all := m.sortedZs(key)

	// Mirror ZREVRANGE index handling: stop is offset+limit-1, and a
	// negative stop counts from the end of the set.
	start, stop := offset, offset+limit-1
	if stop < 0 {
		stop += len(all)
	}

	if start >= len(all) || stop < start {
		return nil, nil
	}

	if stop >= len(all) {
		stop = len(all) - 1
	}

	return all[start : stop+1], nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range m.sortedZs(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) sortedZs(key string) []redis.Z {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	all := make([]redis.Z, 0, len(m.zsets[key]))
	for member, score := range m.zsets[key] {
		all = append(all, redis.Z{Member: member, Score: score})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}

		return all[i].Member.(string) < all[j].Member.(string)
	})

	return all
}
