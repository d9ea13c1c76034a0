package middleware

import (
	"context"
	"strings"

	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/router"
	"github.com/shelfmark/backend/pkg/xcontext"
)

// WithAuth resolves the requesting user from a bearer token, falling
// back to the session cookie. It never rejects the request by itself,
// Authenticate does that for routes that require a user.
func WithAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if userID := verifyBearer(ctx); userID != "" {
			return xcontext.WithRequestUserID(ctx, userID), nil
		}

		if userID := verifySession(ctx); userID != "" {
			return xcontext.WithRequestUserID(ctx, userID), nil
		}

		return nil, nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

func verifyBearer(ctx context.Context) string {
	httpReq := xcontext.HTTPRequest(ctx)
	if httpReq == nil {
		return ""
	}

	authorization := httpReq.Header.Get("Authorization")
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return ""
	}

	var accessToken model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ""
	}

	return accessToken.ID
}

func verifySession(ctx context.Context) string {
	httpReq := xcontext.HTTPRequest(ctx)
	store := xcontext.SessionStore(ctx)
	if httpReq == nil || store == nil {
		return ""
	}

	session, err := store.Get(httpReq, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok {
		return ""
	}

	return userID
}
