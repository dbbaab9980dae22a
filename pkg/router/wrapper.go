package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

type stateKey struct{}

type requestState struct {
	err  error
	resp any
}

// Error returns the error produced by the handler or a middleware of the
// current request, if any. It is meant for After middlewares and closers.
func Error(ctx context.Context) error {
	if state, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}

// Response returns the response object produced by the handler of the
// current request, if any.
func Response(ctx context.Context) any {
	if state, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return state.resp
	}

	return nil
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		state := &requestState{}
		ctx := context.WithValue(r.Context(), stateKey{}, state)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithSessionStore(ctx, router.sessionStore)
		ctx = xcontext.WithSnowFlake(ctx, router.snowflake)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		req := new(Request)
		var err error
		switch method {
		case http.MethodGet:
			err = decodeQuery(r.URL.Query(), req)
		case http.MethodPost:
			err = decodeBody(r.Body, req)
		}

		if err != nil {
			state.err = err
			writeResponse(ctx, w, newErrorResponse(err))
			return
		}

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				state.err = err
				writeResponse(ctx, w, newErrorResponse(err))
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		resp, err := handler(ctx, req)
		if err != nil {
			state.err = err
			writeResponse(ctx, w, newErrorResponse(err))
			return
		}

		if resp != nil {
			state.resp = resp
		}

		for _, middleware := range router.afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				state.err = err
				writeResponse(ctx, w, newErrorResponse(err))
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		// A handler hijacking the connection (websocket upgrade) returns a
		// nil response and writes nothing through the router.
		if resp != nil {
			writeResponse(ctx, w, newResponse(resp))
		}
	}
}

func decodeQuery(values url.Values, req any) error {
	params := map[string]any{}
	for key, value := range values {
		if len(value) == 1 {
			params[key] = value[0]
		} else {
			params[key] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(params)
}

func decodeBody(body io.Reader, req any) error {
	if err := json.NewDecoder(body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
