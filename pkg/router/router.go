package router

import (
	"context"
	"net/http"
)

// HandlerFunc is the generic shape of every API handler. The request is
// bound from the query string (GET) or the JSON body (POST) before the
// handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It may derive a new
// context; returning a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, regardless of the
// handler outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux
	ctx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context is the base of every
// request context and should carry the configs, logger, and database.
func New(ctx context.Context) *Router {
	return &Router{
		mux: http.NewServeMux(),
		ctx: ctx,
	}
}

// Branch returns a router sharing the underlying mux but with its own copy
// of the middleware chains, so separate route groups can be guarded
// differently.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:     r.mux,
		ctx:     r.ctx,
		befores: make([]MiddlewareFunc, len(r.befores)),
		afters:  make([]MiddlewareFunc, len(r.afters)),
		closers: make([]CloserFunc, len(r.closers)),
	}

	copy(branch.befores, r.befores)
	copy(branch.afters, r.afters)
	copy(branch.closers, r.closers)
	return branch
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
	return r.mux
}
