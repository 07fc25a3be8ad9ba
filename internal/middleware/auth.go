package middleware

import (
	"context"
	"strings"

	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/router"
	"github.com/inkpost/backend/pkg/xcontext"
)

// AuthVerifier resolves the requesting user from the access token carried in
// the Authorization header or the token cookie. By default a missing or
// invalid token rejects the request; optional mode lets it through as an
// anonymous one instead, for routes that only personalize their response.
type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			tokenStr := getAccessToken(ctx)
			if tokenStr != "" {
				token, err := xcontext.TokenEngine(ctx).Verify(tokenStr)
				if err == nil {
					return xcontext.WithRequestUserID(ctx, token.ID), nil
				}

				if !a.optional {
					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}
			}
		}

		if a.optional {
			return nil, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if authorization := req.Header.Get("Authorization"); authorization != "" {
		if strings.HasPrefix(authorization, "Bearer ") {
			return strings.TrimPrefix(authorization, "Bearer ")
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
