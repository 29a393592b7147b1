package handler

import (
	"strings"

	"rubrica/internal/users/service"
	"rubrica/pkg/validation"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	RoleID   int64  `json:"role_id" validate:"required,gt=0"`
}

func (r *CreateUserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *CreateUserRequest) Validate() error {
	return validation.Validate(r)
}

// UpdateUserRequest replaces username and role. An omitted or empty password
// leaves the current one in place.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
	RoleID   int64  `json:"role_id" validate:"required,gt=0"`
}

func (r *UpdateUserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Validate(r)
}

func (r *CreateUserRequest) toInput() service.CreateInput {
	return service.CreateInput{Username: r.Username, Password: r.Password, RoleID: r.RoleID}
}

func (r *UpdateUserRequest) toInput() service.UpdateInput {
	return service.UpdateInput{Username: r.Username, Password: r.Password, RoleID: r.RoleID}
}
