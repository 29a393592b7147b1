package listing

import "fmt"

// Schema is the sort whitelist of one resource. Each allowed sortBy value maps
// to a fixed SQL expression; request input never reaches the ORDER BY text.
type Schema struct {
	resource string
	columns  map[string]string
	idExpr   string
}

// NewSchema returns the whitelist for resource. columns maps the public sortBy
// name to its SQL expression and must contain DefaultSortBy, which is also
// used as the tie-breaker.
func NewSchema(resource string, columns map[string]string) Schema {
	idExpr, ok := columns[DefaultSortBy]
	if !ok {
		panic(fmt.Sprintf("listing: schema %q has no %q column", resource, DefaultSortBy))
	}
	copied := make(map[string]string, len(columns))
	for k, v := range columns {
		copied[k] = v
	}
	return Schema{resource: resource, columns: copied, idExpr: idExpr}
}

// Resource names the collection, used for metrics and spans.
func (s Schema) Resource() string {
	return s.resource
}

// Allows reports whether sortBy is whitelisted.
func (s Schema) Allows(sortBy string) bool {
	_, ok := s.columns[sortBy]
	return ok
}

// OrderBy returns the ORDER BY clause body for q, with the id column as a
// tie-breaker so equal sort keys page deterministically.
func (s Schema) OrderBy(q Query) string {
	expr, ok := s.columns[q.SortBy]
	if !ok {
		expr = s.idExpr
	}
	if expr == s.idExpr {
		return expr + " " + q.Order.SQL()
	}
	return expr + " " + q.Order.SQL() + ", " + s.idExpr + " ASC"
}
