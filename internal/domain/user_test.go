package domain

import (
	"testing"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewOAuth2Repository(),
		repository.NewReadingLogRepository(),
	)

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, resp.Name)
	require.Equal(t, testutil.User1.Email, resp.Email)
	require.Equal(t, "monday", resp.WeekStart)
	require.Empty(t, resp.Providers)
}

func Test_userDomain_GetUser_hidesSensitiveFields(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewOAuth2Repository(),
		repository.NewReadingLogRepository(),
	)

	resp, err := domain.GetUser(ctx, &model.GetUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Name, resp.Name)
	require.Empty(t, resp.Email)
	require.Empty(t, resp.Role)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewOAuth2Repository(),
		repository.NewReadingLogRepository(),
	)

	_, err := domain.Update(ctx, &model.UpdateUserRequest{
		Timezone:  "Asia/Tokyo",
		WeekStart: "sunday",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "Asia/Tokyo", user.Timezone)
	require.Equal(t, entity.WeekStartSunday, user.WeekStart)
}

func Test_userDomain_Update_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewOAuth2Repository(),
		repository.NewReadingLogRepository(),
	)

	_, err := domain.Update(ctx, &model.UpdateUserRequest{Timezone: "Not/AZone"})
	require.Error(t, err)

	_, err = domain.Update(ctx, &model.UpdateUserRequest{WeekStart: "tuesday"})
	require.Error(t, err)

	_, err = domain.Update(ctx, &model.UpdateUserRequest{Name: testutil.User2.Name})
	require.Error(t, err)
}
