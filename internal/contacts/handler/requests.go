package handler

import (
	"strings"

	"rubrica/internal/contacts/models"
	s "rubrica/pkg/string"
	"rubrica/pkg/validation"
)

// ContactRequest is the body of POST and PUT. Every field is required; PUT
// replaces the whole contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Surname string `json:"surname" validate:"required,notblank,max=100"`
	Phone   string `json:"phone" validate:"required,notblank,max=40"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Address string `json:"address" validate:"required,notblank,max=255"`
}

func (r *ContactRequest) Normalize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.Name, &r.Surname, &r.Phone, &r.Email, &r.Address)
	r.Email = strings.ToLower(r.Email)
}

func (r *ContactRequest) Validate() error {
	return validation.Validate(r)
}

// ToFields converts the request into the service input.
func (r *ContactRequest) ToFields() models.ContactFields {
	return models.ContactFields{
		Name:    r.Name,
		Surname: r.Surname,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}
