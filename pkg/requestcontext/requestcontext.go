// Package requestcontext carries request-scoped values (request id, clock,
// authenticated principal) through context.Context with typed keys.
package requestcontext

import (
	"context"
	"time"
)

type requestIDKey struct{}
type clockKey struct{}
type principalKey struct{}

// Principal is the authenticated caller attached by the auth middleware.
type Principal struct {
	UserID   int64
	Username string
	RoleID   int64
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id, or "" when none was set.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithTime pins the clock for everything downstream of ctx.
// Tests use it to issue tokens in the past without sleeping.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, clockKey{}, t)
}

// Now returns the pinned time if one exists, otherwise time.Now().
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(clockKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// PinnedTime returns the time set by WithTime, if any.
func PinnedTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(clockKey{}).(time.Time)
	return t, ok
}

// WithPrincipal stores the authenticated caller.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the authenticated caller and whether one was set.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
