package testutil

import (
	"fmt"

	contactmodels "rubrica/internal/contacts/models"
	usermodels "rubrica/internal/users/models"
)

// ContactBuilder provides a fluent interface for building contact fields.
type ContactBuilder struct {
	fields contactmodels.ContactFields
}

// NewContactBuilder creates a new ContactBuilder with sensible defaults.
func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{
		fields: contactmodels.ContactFields{
			Name:    "Mario",
			Surname: "Rossi",
			Phone:   "+39 06 1234567",
			Email:   "mario.rossi@example.com",
			Address: "Via del Corso 1, Roma",
		},
	}
}

func (b *ContactBuilder) WithName(name string) *ContactBuilder {
	b.fields.Name = name
	return b
}

func (b *ContactBuilder) WithSurname(surname string) *ContactBuilder {
	b.fields.Surname = surname
	return b
}

func (b *ContactBuilder) WithPhone(phone string) *ContactBuilder {
	b.fields.Phone = phone
	return b
}

func (b *ContactBuilder) WithEmail(email string) *ContactBuilder {
	b.fields.Email = email
	return b
}

func (b *ContactBuilder) WithAddress(address string) *ContactBuilder {
	b.fields.Address = address
	return b
}

func (b *ContactBuilder) Build() contactmodels.ContactFields {
	return b.fields
}

// NumberedContacts returns n distinct contacts whose names sort in creation
// order (Name01, Name02, ...).
func NumberedContacts(n int) []contactmodels.ContactFields {
	out := make([]contactmodels.ContactFields, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewContactBuilder().
			WithName(fmt.Sprintf("Name%02d", i)).
			WithEmail(fmt.Sprintf("contact%02d@example.com", i)).
			Build())
	}
	return out
}

// UserBuilder provides a fluent interface for building user fields.
type UserBuilder struct {
	fields usermodels.UserFields
}

// NewUserBuilder creates a new UserBuilder with sensible defaults.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		fields: usermodels.UserFields{
			Username:     "test-user",
			PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold",
			RoleID:       usermodels.RoleUserID,
		},
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.fields.Username = username
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.fields.PasswordHash = hash
	return b
}

func (b *UserBuilder) WithRole(roleID int64) *UserBuilder {
	b.fields.RoleID = roleID
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	return b.WithRole(usermodels.RoleAdminID)
}

func (b *UserBuilder) Build() usermodels.UserFields {
	return b.fields
}
