package domain

import (
	"context"
	"errors"
	"regexp"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var handleRegexp = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

type CommunityDomain interface {
	Create(context.Context, *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	Get(context.Context, *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	GetList(context.Context, *model.GetListCommunityRequest) (*model.GetListCommunityResponse, error)
	Follow(context.Context, *model.FollowCommunityRequest) (*model.FollowCommunityResponse, error)
	Unfollow(context.Context, *model.UnfollowCommunityRequest) (*model.UnfollowCommunityResponse, error)
	GetMembers(context.Context, *model.GetMembersRequest) (*model.GetMembersResponse, error)
	GetMyCommunities(context.Context, *model.GetMyCommunitiesRequest) (*model.GetMyCommunitiesResponse, error)
}

type communityDomain struct {
	communityRepo repository.CommunityRepository
	memberRepo    repository.MemberRepository
	userRepo      repository.UserRepository
	presence      PresenceDomain
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	presence PresenceDomain,
) *communityDomain {
	return &communityDomain{
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		presence:      presence,
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if !handleRegexp.MatchString(req.Handle) {
		return nil, errorx.New(errorx.BadRequest,
			"Handle must be 3-32 lowercase letters, digits, or underscores")
	}

	if req.DisplayName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty display name")
	}

	if _, err := d.communityRepo.GetByHandle(ctx, req.Handle); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This handle is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing handle: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	community := &entity.Community{
		Base:         entity.Base{ID: uuid.NewString()},
		CreatedBy:    userID,
		Handle:       req.Handle,
		DisplayName:  req.DisplayName,
		Introduction: []byte(req.Introduction),
		LogoPicture:  req.LogoPicture,
	}

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	// The creator immediately follows their own community.
	if err := d.follow(ctx, userID, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot follow new community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommunityResponse{Handle: community.Handle}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetCommunityResponse(model.ConvertCommunity(community))
	return &resp, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetListCommunityRequest,
) (*model.GetListCommunityResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	communities, err := d.communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities: %v", err)
		return nil, errorx.Unknown
	}

	clientCommunities := []model.Community{}
	for i := range communities {
		clientCommunities = append(clientCommunities, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetListCommunityResponse{Communities: clientCommunities}, nil
}

func (d *communityDomain) Follow(
	ctx context.Context, req *model.FollowCommunityRequest,
) (*model.FollowCommunityResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.memberRepo.Get(ctx, userID, community.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already follow this community")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.follow(ctx, userID, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot follow community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FollowCommunityResponse{}, nil
}

func (d *communityDomain) Unfollow(
	ctx context.Context, req *model.UnfollowCommunityRequest,
) (*model.UnfollowCommunityResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.memberRepo.Delete(ctx, userID, community.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You do not follow this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.IncreaseFollowers(ctx, community.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease followers: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowCommunityResponse{}, nil
}

func (d *communityDomain) GetMembers(
	ctx context.Context, req *model.GetMembersRequest,
) (*model.GetMembersResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.memberRepo.GetListByCommunityID(ctx, community.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	statuses := map[string]string{}
	if d.presence != nil {
		statuses, err = d.presence.Statuses(ctx, userIDs)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get presence statuses: %v", err)
			statuses = map[string]string{}
		}
	}

	clientMembers := []model.Member{}
	for i := range members {
		user := userMap[members[i].UserID]
		clientMembers = append(
			clientMembers, model.ConvertMember(&members[i], user, statuses[members[i].UserID]))
	}

	return &model.GetMembersResponse{Members: clientMembers}, nil
}

func (d *communityDomain) GetMyCommunities(
	ctx context.Context, req *model.GetMyCommunitiesRequest,
) (*model.GetMyCommunitiesResponse, error) {
	members, err := d.memberRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get memberships: %v", err)
		return nil, errorx.Unknown
	}

	communityIDs := []string{}
	for _, m := range members {
		communityIDs = append(communityIDs, m.CommunityID)
	}

	communities, err := d.communityRepo.GetByIDs(ctx, communityIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities: %v", err)
		return nil, errorx.Unknown
	}

	clientCommunities := []model.Community{}
	for i := range communities {
		clientCommunities = append(clientCommunities, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetMyCommunitiesResponse{Communities: clientCommunities}, nil
}

func (d *communityDomain) follow(ctx context.Context, userID, communityID string) error {
	err := d.memberRepo.Create(ctx, &entity.Member{
		UserID:      userID,
		CommunityID: communityID,
	})
	if err != nil {
		return err
	}

	return d.communityRepo.IncreaseFollowers(ctx, communityID, 1)
}
