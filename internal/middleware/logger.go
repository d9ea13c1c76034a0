package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/router"
	"github.com/shelfmark/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		httpReq := xcontext.HTTPRequest(ctx)
		if httpReq == nil {
			return
		}

		info := fmt.Sprintf("%s | %s", httpReq.Method, httpReq.URL.Path)
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
