package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/enum"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
}

type userDomain struct {
	userRepo       repository.UserRepository
	oauth2Repo     repository.OAuth2Repository
	readingLogRepo repository.ReadingLogRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	oauth2Repo repository.OAuth2Repository,
	readingLogRepo repository.ReadingLogRepository,
) *userDomain {
	return &userDomain{
		userRepo:       userRepo,
		oauth2Repo:     oauth2Repo,
		readingLogRepo: readingLogRepo,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	links, err := d.oauth2Repo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get oauth2 links: %v", err)
		return nil, errorx.Unknown
	}

	providers := []string{}
	for _, link := range links {
		providers = append(providers, link.Service)
	}

	return &model.GetMeResponse{
		User:      model.ConvertUser(user, true),
		Providers: providers,
	}, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// The public profile shows lifetime pages, not the private stats.
	totalPages, err := d.readingLogRepo.SumPages(
		ctx, repository.ReadingLogFilter{UserID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum pages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{
		User:           model.ConvertUser(user, false),
		TotalPagesRead: totalPages,
	}, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	update := &entity.User{}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		existing, err := d.userRepo.GetByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot check existing name: %v", err)
			return nil, errorx.Unknown
		}

		if existing != nil && existing.ID != xcontext.RequestUserID(ctx) {
			return nil, errorx.New(errorx.AlreadyExists, "This name is already taken")
		}

		update.Name = name
	}

	if req.ProfilePicture != "" {
		update.ProfilePicture = req.ProfilePicture
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid timezone %s", req.Timezone)
		}

		update.Timezone = req.Timezone
	}

	if req.WeekStart != "" {
		weekStart, err := enum.ToEnum[entity.WeekStart](req.WeekStart)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid week start: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Week start must be monday or sunday")
		}

		update.WeekStart = weekStart
	}

	err := d.userRepo.UpdateByID(ctx, xcontext.RequestUserID(ctx), update)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}
