package adapters

import (
	"context"

	"rubrica/internal/auth/models"
	usermodels "rubrica/internal/users/models"
)

// userFinder is implemented by both user stores. Defined locally so auth does
// not depend on the users service.
type userFinder interface {
	FindByUsername(ctx context.Context, username string) (*usermodels.User, error)
}

// UserCredentialStore adapts a user store to service.CredentialStore.
// Store errors, including sentinel.ErrNotFound, pass through unchanged.
type UserCredentialStore struct {
	users userFinder
}

func NewUserCredentialStore(users userFinder) *UserCredentialStore {
	return &UserCredentialStore{users: users}
}

func (a *UserCredentialStore) FindByUsername(ctx context.Context, username string) (*models.Principal, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		RoleID:       u.RoleID,
		RoleName:     u.RoleName,
	}, nil
}
