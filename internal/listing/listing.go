// Package listing implements the paginated, sorted collection query shared by
// every list endpoint: parameter coercion, the sort whitelist, and the bounded
// fetch plus total count.
package listing

import (
	"context"
	"net/url"
	"time"

	"rubrica/internal/platform/tracer"
	dErrors "rubrica/pkg/domain-errors"
)

// Lister carries the instrumentation used by List. The zero value is usable.
type Lister struct {
	tracer  tracer.Tracer
	metrics *Metrics
}

type Option func(*Lister)

func WithTracer(t tracer.Tracer) Option {
	return func(l *Lister) {
		l.tracer = t
	}
}

func WithMetrics(m *Metrics) Option {
	return func(l *Lister) {
		l.metrics = m
	}
}

func New(opts ...Option) *Lister {
	l := &Lister{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lister) tr() tracer.Tracer {
	if l == nil || l.tracer == nil {
		return tracer.NewNoop()
	}
	return l.tracer
}

func (l *Lister) m() *Metrics {
	if l == nil {
		return nil
	}
	return l.metrics
}

// List validates raw against schema and fetches the requested page from src.
// An invalid sort column fails with invalid_sort before src is called. Source
// failures are wrapped as internal errors.
func List[T any](ctx context.Context, l *Lister, raw url.Values, schema Schema, src Source[T]) (page *Page[T], err error) {
	ctx, span := l.tr().Start(ctx, tracer.SpanListingQuery,
		tracer.String(tracer.AttrResource, schema.Resource()),
	)
	defer func() { span.End(err) }()

	q, err := ParseQuery(raw, schema)
	if err != nil {
		span.AddEvent(tracer.EventSortRejected)
		if m := l.m(); m != nil {
			m.IncSortRejected(schema.Resource())
		}
		return nil, err
	}
	span.SetAttributes(
		tracer.Int64(tracer.AttrPage, q.Page),
		tracer.Int64(tracer.AttrPageSize, int64(q.PageSize)),
		tracer.String(tracer.AttrSortBy, q.SortBy),
		tracer.String(tracer.AttrOrder, q.Order.String()),
	)

	return Fetch(ctx, l, q, schema, src)
}

// Fetch runs an already validated query against src.
func Fetch[T any](ctx context.Context, l *Lister, q Query, schema Schema, src Source[T]) (*Page[T], error) {
	if !schema.Allows(q.SortBy) {
		return nil, dErrors.New(dErrors.CodeInvalidSort, "invalid sort column")
	}

	ctx, span := l.tr().Start(ctx, tracer.SpanListingFetch,
		tracer.String(tracer.AttrResource, schema.Resource()),
	)
	start := time.Now()
	rows, total, err := src.Fetch(ctx, Window{Query: q, OrderBy: schema.OrderBy(q)})
	if m := l.m(); m != nil {
		m.ObserveQuery(schema.Resource(), start)
	}
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to list "+schema.Resource())
		span.End(err)
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	span.SetAttributes(
		tracer.Int64(tracer.AttrRows, int64(len(rows))),
		tracer.Int64(tracer.AttrTotal, total),
	)
	span.End(nil)

	return &Page[T]{Data: rows, Total: total}, nil
}
