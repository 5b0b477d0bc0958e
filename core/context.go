package core

import "context"

// Context keys for render options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	renderRunIDKey    contextKey = "renderRunID"
)

// withSuppressHeader sets whether headers should be suppressed in the context
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withRenderRunID stores the history run of the current render
func withRenderRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, renderRunIDKey, runID)
}

// getRenderRunID returns the history run of the current render, if any
func getRenderRunID(ctx context.Context) (int64, bool) {
	runID, ok := ctx.Value(renderRunIDKey).(int64)
	return runID, ok
}

// Quiet returns a context that suppresses progress headers, used by long-running servers.
func Quiet(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}
