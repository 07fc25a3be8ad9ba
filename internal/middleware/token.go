package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/inkpost/backend/pkg/router"
	"github.com/inkpost/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// HandleSetAccessToken mirrors the access token of a login response into a
// cookie, so browser clients are authenticated without handling the token
// themselves.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if ok {
			cfg := xcontext.Configs(ctx).Auth.AccessToken
			http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
				Name:     cfg.Name,
				Value:    tokenResp.AccessTokenInfo(),
				Domain:   "",
				Path:     "/",
				Expires:  time.Now().Add(cfg.Expiration),
				Secure:   true,
				HttpOnly: false,
			})
		}

		return nil, nil
	}
}
