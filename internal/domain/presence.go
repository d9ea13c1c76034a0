package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/shelfmark/backend/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

const (
	StatusOnline  = "online"
	StatusReading = "reading"
	StatusAway    = "away"
	StatusOffline = "offline"
)

type PresenceDomain interface {
	Heartbeat(context.Context, *model.HeartbeatRequest) (*model.HeartbeatResponse, error)
	GetStatuses(context.Context, *model.GetStatusesRequest) (*model.GetStatusesResponse, error)

	// Statuses is used by other domains to decorate user lists.
	Statuses(ctx context.Context, userIDs []string) (map[string]string, error)
}

type heartbeatRecord struct {
	status string
	at     time.Time
}

type presenceDomain struct {
	communityRepo repository.CommunityRepository
	memberRepo    repository.MemberRepository
	redisClient   xredis.Client

	// lastBeats suppresses redundant redis writes from clients that
	// heartbeat faster than the TTL requires.
	lastBeats *xsync.MapOf[string, heartbeatRecord]
}

func NewPresenceDomain(
	communityRepo repository.CommunityRepository,
	memberRepo repository.MemberRepository,
	redisClient xredis.Client,
) *presenceDomain {
	return &presenceDomain{
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		redisClient:   redisClient,
		lastBeats:     xsync.NewMapOf[heartbeatRecord](),
	}
}

func (d *presenceDomain) Heartbeat(
	ctx context.Context, req *model.HeartbeatRequest,
) (*model.HeartbeatResponse, error) {
	status := req.Status
	if status == "" {
		status = StatusOnline
	}

	switch status {
	case StatusOnline, StatusReading, StatusAway, StatusOffline:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", status)
	}

	userID := xcontext.RequestUserID(ctx)
	ttl := xcontext.Configs(ctx).Presence.HeartbeatTTL

	// An explicit offline beat clears presence immediately instead of
	// waiting for the TTL to run out.
	if status == StatusOffline {
		if err := d.redisClient.Del(ctx, presenceKey(userID)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot clear presence: %v", err)
			return nil, errorx.Unknown
		}

		d.lastBeats.Delete(userID)
		return &model.HeartbeatResponse{}, nil
	}

	if last, ok := d.lastBeats.Load(userID); ok {
		if last.status == status && time.Since(last.at) < ttl/2 {
			return &model.HeartbeatResponse{}, nil
		}
	}

	if err := d.redisClient.Set(ctx, presenceKey(userID), status, ttl); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set presence: %v", err)
		return nil, errorx.Unknown
	}

	d.lastBeats.Store(userID, heartbeatRecord{status: status, at: time.Now()})
	return &model.HeartbeatResponse{}, nil
}

func (d *presenceDomain) GetStatuses(
	ctx context.Context, req *model.GetStatusesRequest,
) (*model.GetStatusesResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.memberRepo.GetListByCommunityID(ctx, community.ID, 0, -1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	statuses, err := d.Statuses(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get statuses: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetStatusesResponse{Statuses: statuses}, nil
}

func (d *presenceDomain) Statuses(
	ctx context.Context, userIDs []string,
) (map[string]string, error) {
	statuses := map[string]string{}
	if len(userIDs) == 0 {
		return statuses, nil
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, presenceKey(id))
	}

	values, err := d.redisClient.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		status, ok := v.(string)
		if !ok || status == "" {
			status = StatusOffline
		}

		statuses[userIDs[i]] = status
	}

	return statuses, nil
}

func presenceKey(userID string) string {
	return "presence:" + userID
}
