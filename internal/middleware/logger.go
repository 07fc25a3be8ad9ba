package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/router"
	"github.com/inkpost/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx)).Round(time.Microsecond)

		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %s | %v | %d",
					req.Method, req.URL.Path, elapsed, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %s | %v | %d",
					req.Method, req.URL.Path, elapsed, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof("%s | %s | %v",
				req.Method, req.URL.Path, elapsed)
		}
	}
}
