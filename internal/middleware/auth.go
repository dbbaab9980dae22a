package middleware

import (
	"context"
	"strings"

	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/router"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

// AuthVerifier resolves the requesting user from the access token. With
// optional set, an anonymous request passes through without a user id;
// otherwise it is rejected.
type AuthVerifier struct {
	optional bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := a.tokenFromRequest(ctx)
		if token == "" {
			if a.optional {
				return ctx, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		payload, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			if a.optional {
				return ctx, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, payload.ID), nil
	}
}

func (a *AuthVerifier) tokenFromRequest(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	if authorization := req.Header.Get("Authorization"); authorization != "" {
		token, found := strings.CutPrefix(authorization, "Bearer ")
		if found {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
