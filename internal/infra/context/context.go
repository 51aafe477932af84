// Package context carries request-scoped values (trace ID, authenticated requester)
// between middleware, services and log handlers.
package context

import (
	"context"
)

type contextKey string

const (
	contextKeyTraceID  = contextKey("traceID")
	contextKeyUsername = contextKey("username")
)

// TraceIDFromContext returns the request trace ID, if any.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(contextKeyTraceID).(string)

	return traceID, ok
}

// WithTraceID returns a context carrying the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, contextKeyTraceID, traceID)
}

// UsernameFromContext returns the authenticated requester, if any.
// An empty username is reported as absent.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(contextKeyUsername).(string)

	return username, ok && username != ""
}

// WithUsername returns a context carrying the authenticated requester.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUsername, username)
}
