package listing

import (
	"cmp"
	"slices"
)

// Comparators maps each whitelisted sortBy name to an ordering of T.
type Comparators[T any] map[string]func(a, b T) int

// Paginate sorts a copy of rows by w and returns the requested window and the
// total. In-memory stores use it so they page exactly like the SQL sources.
func Paginate[T any](rows []T, w Window, by Comparators[T], id func(T) int64) ([]T, int64) {
	sorted := slices.Clone(rows)
	byKey, ok := by[w.SortBy]
	if !ok {
		byKey = func(a, b T) int { return cmp.Compare(id(a), id(b)) }
	}
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := byKey(a, b)
		if w.Order == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})

	total := int64(len(sorted))
	offset := w.Offset()
	if offset >= total {
		return []T{}, total
	}
	end := offset + int64(w.Limit())
	if end > total {
		end = total
	}
	return sorted[offset:end], total
}
