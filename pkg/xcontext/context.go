package xcontext

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/inkpost/backend/config"
	"github.com/inkpost/backend/pkg/jwt"
	"github.com/inkpost/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	txKey           struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
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

// DB returns the current database handle. If a transaction was begun with
// WithDBTransaction, the transaction takes precedence until it is committed
// or rolled back.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*txHolder); ok && tx.tx != nil {
		return tx.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txHolder struct {
	tx *gorm.DB
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
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

func WithTokenEngine(ctx context.Context, engine *jwt.Engine[jwt.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) *jwt.Engine[jwt.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(*jwt.Engine[jwt.AccessToken])
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}
