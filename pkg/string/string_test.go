package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"pageSize": "page_size",
		"RoleID":   "role_id",
		"role_id":  "role_id",
		"sortBy":   "sort_by",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestTrimStrings(t *testing.T) {
	a, b := "  admin ", "\tsecret\n"
	TrimStrings(&a, &b, nil)
	assert.Equal(t, "admin", a)
	assert.Equal(t, "secret", b)
}
