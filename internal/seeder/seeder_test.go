package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	contactstore "rubrica/internal/contacts/store"
	"rubrica/internal/listing"
	usermodels "rubrica/internal/users/models"
	userstore "rubrica/internal/users/store"
	"rubrica/pkg/secrets"
)

func newSeeder() (*Seeder, *userstore.InMemory, *contactstore.InMemory, *secrets.Hasher) {
	users := userstore.NewInMemory()
	contacts := contactstore.NewInMemory()
	hasher := secrets.NewHasher(bcrypt.MinCost)
	return New(users, contacts, hasher, slog.New(slog.NewTextHandler(io.Discard, nil))), users, contacts, hasher
}

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	s, users, contacts, hasher := newSeeder()

	require.NoError(t, s.SeedAll(ctx))

	admin, err := users.FindByUsername(ctx, AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, usermodels.RoleAdminID, admin.RoleID)
	assert.NoError(t, hasher.Verify(AdminPassword, admin.PasswordHash))

	_, total, err := contacts.Fetch(ctx, listing.Window{Query: listing.Query{Page: 1, PageSize: 1}, OrderBy: "id ASC"})
	require.NoError(t, err)
	assert.Positive(t, total)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, users, _, _ := newSeeder()

	require.NoError(t, s.EnsureAdmin(ctx))
	require.NoError(t, s.EnsureAdmin(ctx))

	_, total, err := users.Fetch(ctx, listing.Window{Query: listing.Query{Page: 1, PageSize: 10}, OrderBy: "u.id ASC"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
