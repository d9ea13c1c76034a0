package middleware

import (
	"testing"

	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_OnlyAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixture(ctx)
	onlyAdmin := NewOnlyAdmin(repository.NewUserRepository())

	_, err := onlyAdmin.Middleware()(ctx)
	require.NoError(t, err)

	userCtx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(userCtx)
	_, err = onlyAdmin.Middleware()(userCtx)
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}
