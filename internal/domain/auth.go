package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/authenticator"
	"github.com/shelfmark/backend/pkg/crypto"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	OAuth2Verify(context.Context, *model.OAuth2VerifyRequest) (*model.OAuth2VerifyResponse, error)
}

type authDomain struct {
	userRepo       repository.UserRepository
	oauth2Repo     repository.OAuth2Repository
	oauth2Services []authenticator.IOAuth2Service
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Repo repository.OAuth2Repository,
	oauth2Services []authenticator.IOAuth2Service,
) *authDomain {
	return &authDomain{
		userRepo:       userRepo,
		oauth2Repo:     oauth2Repo,
		oauth2Services: oauth2Services,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if !strings.Contains(req.Email, "@") {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing email: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This name is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing name: %v", err)
		return nil, errorx.Unknown
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: sql.NullString{Valid: true, String: hash},
		Role:         entity.UserRole,
		WeekStart:    entity.WeekStartMonday,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Incorrect email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !user.PasswordHash.Valid {
		return nil, errorx.New(errorx.Unavailable, "This account signs in with a provider")
	}

	if err := crypto.ComparePassword(user.PasswordHash.String, req.Password); err != nil {
		return nil, errorx.New(errorx.NotFound, "Incorrect email or password")
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := saveSession(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot save session: %v", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        model.ConvertUser(user, true),
	}, nil
}

func (d *authDomain) OAuth2Verify(
	ctx context.Context, req *model.OAuth2VerifyRequest,
) (*model.OAuth2VerifyResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported oauth2 provider %s", req.Type)
	}

	serviceUser, err := service.VerifyIDToken(ctx, req.AccessToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify id token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid token")
	}

	user, err := d.userRepo.GetByServiceUserID(ctx, service.Service(), serviceUser.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by service id: %v", err)
			return nil, errorx.Unknown
		}

		user, err = d.createOAuth2User(ctx, service.Service(), serviceUser)
		if err != nil {
			return nil, err
		}
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := saveSession(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot save session: %v", err)
	}

	return &model.OAuth2VerifyResponse{
		AccessToken: token,
		User:        model.ConvertUser(user, true),
	}, nil
}

func (d *authDomain) getOAuth2Service(name string) (authenticator.IOAuth2Service, bool) {
	for _, s := range d.oauth2Services {
		if s.Service() == name {
			return s, true
		}
	}

	return nil, false
}

func (d *authDomain) createOAuth2User(
	ctx context.Context, service string, serviceUser authenticator.OAuth2User,
) (*entity.User, error) {
	name := serviceUser.Username
	if name == "" {
		name = "user_" + crypto.GenerateRandomAlphabet(8)
	}

	// Append a random suffix until the name is free. Collisions are
	// rare enough that two attempts cover them.
	if _, err := d.userRepo.GetByName(ctx, name); err == nil {
		name = name + "_" + crypto.GenerateRandomAlphabet(4)
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           name,
		Email:          serviceUser.Email,
		Role:           entity.UserRole,
		ProfilePicture: serviceUser.Picture,
		WeekStart:      entity.WeekStartMonday,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	err := d.oauth2Repo.Create(ctx, &entity.OAuth2{
		UserID:        user.ID,
		Service:       service,
		ServiceUserID: serviceUser.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot link oauth2 service: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
		},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}

func saveSession(ctx context.Context, userID string) error {
	httpReq := xcontext.HTTPRequest(ctx)
	httpWriter := xcontext.HTTPWriter(ctx)
	if httpReq == nil || httpWriter == nil {
		return nil
	}

	session, err := xcontext.SessionStore(ctx).Get(httpReq, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return err
	}

	session.Values["user_id"] = userID
	return session.Save(httpReq, httpWriter)
}
