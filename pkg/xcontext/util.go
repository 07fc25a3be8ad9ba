package xcontext

import (
	"context"
	"time"
)

type (
	userIDKey    struct{}
	requestKey   struct{}
	startTimeKey struct{}
)

// requestState carries the per-request response and error. The router
// installs one holder before running middlewares so that handlers and
// closers observe the same values regardless of context branching.
type requestState struct {
	response any
	err      error
}

func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestKey{}, &requestState{})
}

func SetResponse(ctx context.Context, resp any) {
	if state, ok := ctx.Value(requestKey{}).(*requestState); ok {
		state.response = resp
	}
}

func Response(ctx context.Context) any {
	if state, ok := ctx.Value(requestKey{}).(*requestState); ok {
		return state.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if state, ok := ctx.Value(requestKey{}).(*requestState); ok {
		state.err = err
	}
}

func Error(ctx context.Context) error {
	if state, ok := ctx.Value(requestKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the authenticated user id, or an empty string for
// anonymous requests.
func RequestUserID(ctx context.Context) string {
	id := ctx.Value(userIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}
