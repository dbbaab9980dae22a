package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/config"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/logger"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{Name: "access_token", Expiration: time.Minute},
		},
		Session: config.SessionConfigs{Secret: "session-secret"},
	}

	return New(db, cfg, logger.NewLogger(logger.SILENCE))
}

func TestRouterGETDecodesQuery(t *testing.T) {
	r := newTestRouter(t)
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Count: req.Count}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?name=planet&count=3", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "planet", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Count)
}

func TestRouterPOSTDecodesBody(t *testing.T) {
	r := newTestRouter(t)
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"helper"}`)))

	var resp struct {
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "helper", resp.Data.Name)

	// The wrong method is rejected before decoding.
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter(t)
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found thing")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found thing", resp.Error)
}

func TestRouterBranchMiddleware(t *testing.T) {
	r := newTestRouter(t)

	protected := r.Branch()
	protected.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})

	GET(r, "/open", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})
	GET(protected, "/closed", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	var open struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &open))
	require.Equal(t, 0, open.Code)

	// The branch middleware does not leak into the parent router.
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/closed", nil))
	var closed struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &closed))
	require.Equal(t, int(errorx.Unauthenticated), closed.Code)
}
