package domain

import (
	"testing"

	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewOAuth2Repository(), nil)

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "carol",
		Email:    "Carol@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "carol", resp.User.Name)
	require.Equal(t, "carol@example.com", resp.User.Email)

	// The new account can log in right away.
	loginResp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "carol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)
	require.Equal(t, resp.User.ID, loginResp.User.ID)
}

func Test_authDomain_Register_duplicate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewOAuth2Repository(), nil)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "someone",
		Email:    testutil.User1.Email,
		Password: "password123",
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:     testutil.User1.Name,
		Email:    "someone@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_authDomain_Register_invalid(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewOAuth2Repository(), nil)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name: "carol", Email: "not-an-email", Password: "password123"})
	require.Error(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name: "carol", Email: "carol@example.com", Password: "short"})
	require.Error(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name: "", Email: "carol@example.com", Password: "password123"})
	require.Error(t, err)
}

func Test_authDomain_Login_wrongPassword(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewOAuth2Repository(), nil)

	_, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.User1.Email,
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: testutil.Password,
	})
	require.Error(t, err)
}
