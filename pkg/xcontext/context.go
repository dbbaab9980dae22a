package xcontext

import (
	"context"
	"net/http"

	"github.com/JiSuMun/New-zigoohang/config"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/pkg/authenticator"
	"github.com/JiSuMun/New-zigoohang/pkg/logger"
	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	txKey           struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	snowflakeKey    struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	userIDKey       struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if the context carries an uncompleted
// one, otherwise the root database handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		return holder.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and returns a context whose
// DB() resolves to it. Complete it with WithCommitDBTransaction or
// WithRollbackDBTransaction; the rollback is a no-op after a commit, so it is
// safe to defer.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the authenticated user id of this request, or an
// empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}
