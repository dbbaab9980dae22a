package router

import (
	"context"
	"net/http"

	"github.com/JiSuMun/New-zigoohang/config"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/pkg/authenticator"
	"github.com/JiSuMun/New-zigoohang/pkg/logger"
	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of a domain operation exposed over HTTP.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. It can derive a new
// context (e.g. attaching the authenticated user id) or reject the request
// by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, regardless of the
// handler result.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg          config.Configs
	logger       logger.Logger
	db           *gorm.DB
	tokenEngine  authenticator.TokenEngine[model.AccessToken]
	sessionStore sessions.Store
	snowflake    *snowflake.Node

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	return &Router{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		logger:       log,
		db:           db,
		tokenEngine:  authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		snowflake:    node,
	}
}

// Branch returns a router sharing the same mux and configuration but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	if len(r.cfg.ApiServer.AllowCORS) == 0 {
		return r.mux
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}
