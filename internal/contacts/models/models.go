package models

import (
	"cmp"
	"strings"

	"rubrica/internal/listing"
)

// Contact is one address book entry.
type Contact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ContactFields are the writable columns of a contact.
type ContactFields struct {
	Name    string
	Surname string
	Phone   string
	Email   string
	Address string
}

// WithID builds the stored representation of f.
func (f ContactFields) WithID(id int64) *Contact {
	return &Contact{
		ID:      id,
		Name:    f.Name,
		Surname: f.Surname,
		Phone:   f.Phone,
		Email:   f.Email,
		Address: f.Address,
	}
}

// SortSchema whitelists the sortable contact columns.
var SortSchema = listing.NewSchema("contacts", map[string]string{
	"id":      "id",
	"name":    "name",
	"surname": "surname",
	"phone":   "phone",
	"email":   "email",
	"address": "address",
})

// Comparators orders contacts in memory the same way SortSchema orders SQL rows.
var Comparators = listing.Comparators[Contact]{
	"id":      func(a, b Contact) int { return cmp.Compare(a.ID, b.ID) },
	"name":    func(a, b Contact) int { return strings.Compare(a.Name, b.Name) },
	"surname": func(a, b Contact) int { return strings.Compare(a.Surname, b.Surname) },
	"phone":   func(a, b Contact) int { return strings.Compare(a.Phone, b.Phone) },
	"email":   func(a, b Contact) int { return strings.Compare(a.Email, b.Email) },
	"address": func(a, b Contact) int { return strings.Compare(a.Address, b.Address) },
}

// ContactID returns c.ID; used as the listing tie-breaker.
func ContactID(c Contact) int64 { return c.ID }
