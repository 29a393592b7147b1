package listing

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	dErrors "rubrica/pkg/domain-errors"
)

// Pagination bounds shared by every resource.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "id"

	// MaxPage keeps (page-1)*pageSize well inside int64.
	MaxPage = math.MaxInt64/MaxPageSize - 1
)

// Query parameter names.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamSortBy   = "sortBy"
	ParamOrder    = "order"
)

// Direction is the sort direction of a listing.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "desc" and "descending" (any case) to Descending.
// Everything else, including the empty string, is Ascending.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SQL returns the ORDER BY keyword for d.
func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Query is a validated listing request.
type Query struct {
	Page     int64
	PageSize int
	SortBy   string
	Order    Direction
}

// Offset is the number of rows skipped before the requested page.
func (q Query) Offset() int64 {
	return (q.Page - 1) * int64(q.PageSize)
}

// Limit is the maximum number of rows on the requested page.
func (q Query) Limit() int {
	return q.PageSize
}

// ParseQuery builds a Query from untrusted query-string values.
//
// page and pageSize are coerced: missing or non-numeric values take their
// defaults, page below 1 becomes 1, pageSize below 1 becomes the default and
// above MaxPageSize becomes MaxPageSize. sortBy must be a column of schema;
// anything else fails with invalid_sort.
func ParseQuery(raw url.Values, schema Schema) (Query, error) {
	sortBy := strings.TrimSpace(raw.Get(ParamSortBy))
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if !schema.Allows(sortBy) {
		return Query{}, dErrors.New(dErrors.CodeInvalidSort, "invalid sort column")
	}

	return Query{
		Page:     parsePage(raw.Get(ParamPage)),
		PageSize: parsePageSize(raw.Get(ParamPageSize)),
		SortBy:   sortBy,
		Order:    ParseDirection(raw.Get(ParamOrder)),
	}, nil
}

func parsePage(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && v > 0:
		return MaxPage
	case err != nil, v < 1:
		return DefaultPage
	case v > MaxPage:
		return MaxPage
	default:
		return v
	}
}

func parsePageSize(raw string) int {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && v > 0:
		return MaxPageSize
	case err != nil, v < 1:
		return DefaultPageSize
	case v > MaxPageSize:
		return MaxPageSize
	default:
		return int(v)
	}
}
