// Package tracer provides a small tracing abstraction so feature packages can
// emit spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and demo mode
//   - OTelTracer: OpenTelemetry adapter using the global provider
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child calls.
	//
	// Example:
	//   ctx, span := tr.Start(ctx, tracer.SpanListingFetch,
	//       tracer.String(tracer.AttrResource, "contacts"),
	//       tracer.Int64(tracer.AttrPageSize, 10),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanListingQuery = "listing.query"
	SpanListingFetch = "listing.fetch"
	SpanLogin        = "auth.login"
)

// Attribute keys.
const (
	AttrResource = "listing.resource"
	AttrPage     = "listing.page"
	AttrPageSize = "listing.page_size"
	AttrSortBy   = "listing.sort_by"
	AttrOrder    = "listing.order"
	AttrTotal    = "listing.total"
	AttrRows     = "listing.rows"
	AttrOutcome  = "auth.outcome"
)

// Event names.
const (
	EventSortRejected = "listing.sort_rejected"
)
