package statistic

import (
	"context"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/shelfmark/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type Leaderboard interface {
	GetLeaderBoard(
		ctx context.Context,
		communityID, orderedBy string,
		period entity.LeaderBoardPeriodType,
		offset, limit int,
	) ([]model.UserStatistic, error)

	GetRank(
		ctx context.Context,
		userID, communityID, orderedBy string,
		period entity.LeaderBoardPeriodType,
	) (uint64, error)

	ChangePagesLeaderboard(
		ctx context.Context,
		value int64,
		recordedAt time.Time,
		userID, communityID string,
	) error

	ChangeBooksLeaderboard(
		ctx context.Context,
		value int64,
		completedAt time.Time,
		userID, communityID string,
	) error
}

type leaderboard struct {
	readingLogRepo repository.ReadingLogRepository
	redisClient    xredis.Client
}

func New(
	readingLogRepo repository.ReadingLogRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{readingLogRepo: readingLogRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context,
	communityID string,
	orderedBy string,
	period entity.LeaderBoardPeriodType,
	offset, limit int,
) ([]model.UserStatistic, error) {
	key, err := redisKeyLeaderBoard(orderedBy, communityID, period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid ordered by field: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, communityID, period); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.UserStatistic{}
	for i, z := range results {
		leaderboard = append(leaderboard, model.UserStatistic{
			User:        model.ShortUser{ID: z.Member.(string)},
			Value:       int(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return leaderboard, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context,
	userID string,
	communityID string,
	orderedBy string,
	period entity.LeaderBoardPeriodType,
) (uint64, error) {
	key, err := redisKeyLeaderBoard(orderedBy, communityID, period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid ordered by field: %v", err)
		return 0, errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, communityID, period); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) changeLeaderboard(
	ctx context.Context,
	value int64,
	userID, communityID string,
	orderedBy string,
	period entity.LeaderBoardPeriodType,
) error {
	key, err := redisKeyLeaderBoard(orderedBy, communityID, period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid ordered by field: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update. The next
	// read will backfill the full window from database anyway.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) ChangePagesLeaderboard(
	ctx context.Context,
	value int64,
	recordedAt time.Time,
	userID, communityID string,
) error {
	return l.changeAllPeriods(ctx, value, recordedAt, userID, communityID, "pages")
}

func (l *leaderboard) ChangeBooksLeaderboard(
	ctx context.Context,
	value int64,
	completedAt time.Time,
	userID, communityID string,
) error {
	return l.changeAllPeriods(ctx, value, completedAt, userID, communityID, "books")
}

func (l *leaderboard) changeAllPeriods(
	ctx context.Context,
	value int64,
	at time.Time,
	userID, communityID string,
	orderedBy string,
) error {
	weekPeriod, err := ToPeriodWithTime("week", at)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid period: %v", err)
		return errorx.Unknown
	}

	if err := l.changeLeaderboard(ctx, value, userID, communityID, orderedBy, weekPeriod); err != nil {
		return err
	}

	monthPeriod, err := ToPeriodWithTime("month", at)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid period: %v", err)
		return errorx.Unknown
	}

	if err := l.changeLeaderboard(ctx, value, userID, communityID, orderedBy, monthPeriod); err != nil {
		return err
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(
	ctx context.Context, communityID string, period entity.LeaderBoardPeriodType,
) error {
	members, err := l.readingLogRepo.Statistic(
		ctx,
		repository.StatisticReadingFilter{
			CommunityID: communityID,
			Begin:       period.Start(),
			End:         period.End(),
		},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
		return errorx.Unknown
	}

	pagesKey := redisKeyPagesLeaderBoard(communityID, period)
	booksKey := redisKeyBooksLeaderBoard(communityID, period)
	for _, m := range members {
		err := l.redisClient.ZAdd(ctx, pagesKey, redis.Z{Member: m.UserID, Score: float64(m.Pages)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}

		err = l.redisClient.ZAdd(ctx, booksKey, redis.Z{Member: m.UserID, Score: float64(m.BooksFinished)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
