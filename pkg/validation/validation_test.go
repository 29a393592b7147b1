package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "rubrica/pkg/domain-errors"
)

type sample struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=5"`
	Email     string `json:"email" validate:"omitempty,email"`
	RoleID    int64  `json:"role_id" validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantMsg string
	}{
		{"valid", sample{FirstName: "Ann", RoleID: 1}, ""},
		{"missing required", sample{RoleID: 1}, "first_name is required"},
		{"blank", sample{FirstName: "   ", RoleID: 1}, "first_name must not be blank"},
		{"too long", sample{FirstName: "Annabelle", RoleID: 1}, "first_name must be at most 5"},
		{"bad email", sample{FirstName: "Ann", Email: "nope", RoleID: 1}, "email must be a valid email"},
		{"non positive", sample{FirstName: "Ann"}, "role_id must be greater than 0"},
		{"every failing field is reported", sample{Email: "nope"}, "first_name is required; email must be a valid email; role_id must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestErrorMessageWithoutValidatorErrors(t *testing.T) {
	assert.Equal(t, "invalid request body", ErrorMessage(assert.AnError))
}
