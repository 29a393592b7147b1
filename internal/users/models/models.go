package models

import (
	"cmp"
	"strings"

	"rubrica/internal/listing"
)

// Seeded role ids. Migrations and the in-memory store create the same rows.
const (
	RoleAdminID int64 = 1
	RoleUserID  int64 = 2
)

// User is an account able to log in. The bcrypt hash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RoleID       int64  `json:"role_id"`
	RoleName     string `json:"role_name"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserFields are the writable columns of a user. An empty PasswordHash on
// update keeps the stored hash.
type UserFields struct {
	Username     string
	PasswordHash string
	RoleID       int64
}

// DefaultRoles returns the roles every store starts with.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleAdminID, Name: "admin"},
		{ID: RoleUserID, Name: "user"},
	}
}

// SortSchema whitelists the sortable user columns. The listing query aliases
// users as u because it joins roles.
var SortSchema = listing.NewSchema("users", map[string]string{
	"id":       "u.id",
	"username": "u.username",
})

var Comparators = listing.Comparators[User]{
	"id":       func(a, b User) int { return cmp.Compare(a.ID, b.ID) },
	"username": func(a, b User) int { return strings.Compare(a.Username, b.Username) },
}

func UserID(u User) int64 { return u.ID }
