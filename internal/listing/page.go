package listing

import "context"

// Page is one window of a collection plus the collection size.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

// Window is what a Source needs to fetch one page.
type Window struct {
	Query
	// OrderBy is the whitelisted clause from Schema.OrderBy.
	OrderBy string
}

// Source fetches a window of rows and the total row count.
// Postgres sources run both statements on one pooled connection.
type Source[T any] interface {
	Fetch(ctx context.Context, w Window) (rows []T, total int64, err error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context, w Window) ([]T, int64, error)

func (f SourceFunc[T]) Fetch(ctx context.Context, w Window) ([]T, int64, error) {
	return f(ctx, w)
}
