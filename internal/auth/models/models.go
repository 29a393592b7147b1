// Package models holds the login request, response and principal shapes.
package models

import (
	"strings"

	dErrors "rubrica/pkg/domain-errors"
)

// Principal is the account a login resolves to. Read-only to the auth core.
type Principal struct {
	ID           int64
	Username     string
	PasswordHash string
	RoleID       int64
	RoleName     string
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize trims the username. The password is compared byte for byte.
func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *LoginRequest) Validate() error {
	if r == nil || r.Username == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeMissingCredentials, "username and password are required")
	}
	return nil
}

type LoginResponse struct {
	Token string `json:"token"`
}

// MeResponse echoes the verified claims of the caller.
type MeResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	RoleID   int64  `json:"role_id"`
}
