package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "rubrica/pkg/domain-errors"
)

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"both present", LoginRequest{Username: "admin", Password: "admin"}, false},
		{"blank username", LoginRequest{Username: "   ", Password: "admin"}, true},
		{"empty password", LoginRequest{Username: "admin"}, true},
		{"whitespace password is kept", LoginRequest{Username: "admin", Password: " "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeMissingCredentials))
				return
			}
			assert.NoError(t, err)
		})
	}
}
