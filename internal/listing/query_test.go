package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rubrica/pkg/domain-errors"
)

var contactSchema = NewSchema("contacts", map[string]string{
	"id":      "id",
	"name":    "name",
	"surname": "surname",
	"phone":   "phone",
	"email":   "email",
	"address": "address",
})

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery(url.Values{}, contactSchema)
	require.NoError(t, err)
	assert.Equal(t, Query{Page: 1, PageSize: 10, SortBy: "id", Order: Ascending}, q)
	assert.Equal(t, int64(0), q.Offset())
}

func TestParseQueryCoercion(t *testing.T) {
	tests := []struct {
		name         string
		page         string
		pageSize     string
		wantPage     int64
		wantPageSize int
	}{
		{"explicit values", "3", "25", 3, 25},
		{"non numeric", "abc", "ten", 1, 10},
		{"decimal", "2.5", "7.1", 1, 10},
		{"zero", "0", "0", 1, 10},
		{"negative", "-4", "-1", 1, 10},
		{"page size above bound", "1", "1000", 1, MaxPageSize},
		{"page size at bound", "1", "100", 1, 100},
		{"surrounding spaces", " 2 ", " 5 ", 2, 5},
		{"overflowing page", "99999999999999999999999", "10", MaxPage, 10},
		{"overflowing page size", "1", "99999999999999999999999", 1, MaxPageSize},
		{"page past cap", "9223372036854775807", "100", MaxPage, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(url.Values{ParamPage: {tt.page}, ParamPageSize: {tt.pageSize}}, contactSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantPageSize, q.PageSize)
			assert.GreaterOrEqual(t, q.Offset(), int64(0))
		})
	}
}

func TestParseQuerySort(t *testing.T) {
	t.Run("whitelisted column", func(t *testing.T) {
		q, err := ParseQuery(url.Values{ParamSortBy: {"surname"}, ParamOrder: {"DESC"}}, contactSchema)
		require.NoError(t, err)
		assert.Equal(t, "surname", q.SortBy)
		assert.Equal(t, Descending, q.Order)
	})

	for _, bad := range []string{"DROP TABLE", "name; DROP TABLE contacts", "Name", "password", "role_id"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseQuery(url.Values{ParamSortBy: {bad}}, contactSchema)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidSort))
		})
	}
}

func TestParseDirection(t *testing.T) {
	for raw, want := range map[string]Direction{
		"":           Ascending,
		"asc":        Ascending,
		"ascending":  Ascending,
		"desc":       Descending,
		"DESC":       Descending,
		"Descending": Descending,
		"down":       Ascending,
		"1":          Ascending,
	} {
		assert.Equal(t, want, ParseDirection(raw), raw)
	}
	assert.Equal(t, "desc", Descending.String())
	assert.Equal(t, "ASC", Ascending.SQL())
}

func TestSchemaOrderBy(t *testing.T) {
	users := NewSchema("users", map[string]string{"id": "u.id", "username": "u.username"})

	assert.Equal(t, "u.id ASC", users.OrderBy(Query{SortBy: "id"}))
	assert.Equal(t, "u.id DESC", users.OrderBy(Query{SortBy: "id", Order: Descending}))
	assert.Equal(t, "u.username DESC, u.id ASC", users.OrderBy(Query{SortBy: "username", Order: Descending}))
	assert.Equal(t, "u.id ASC", users.OrderBy(Query{SortBy: "nope"}))
	assert.Equal(t, "users", users.Resource())
}

func TestNewSchemaRequiresID(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("broken", map[string]string{"name": "name"})
	})
}
