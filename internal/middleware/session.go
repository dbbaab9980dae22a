package middleware

import (
	"context"
	"errors"

	"github.com/JiSuMun/New-zigoohang/pkg/router"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

// SessionResponse is implemented by responses whose handler wants values
// persisted into the cookie session.
type SessionResponse interface {
	SessionInfo() map[string]any
}

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := router.Response(ctx).(SessionResponse)
		if !ok {
			return ctx, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, errors.New("no session info")
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return ctx, nil
	}
}
