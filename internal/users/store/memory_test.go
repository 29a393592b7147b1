package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubrica/internal/listing"
	"rubrica/internal/users/models"
	"rubrica/internal/users/service"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/testutil"
)

var (
	_ service.Store = (*InMemory)(nil)
	_ service.Store = (*PostgresStore)(nil)
)

func TestInMemoryConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	admin, err := s.Create(ctx, testutil.NewUserBuilder().WithUsername("admin").AsAdmin().Build())
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.RoleName)

	_, err = s.Create(ctx, models.UserFields{Username: "admin", PasswordHash: "h2", RoleID: models.RoleUserID})
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)

	_, err = s.Create(ctx, testutil.NewUserBuilder().WithUsername("nobody").WithRole(42).Build())
	assert.ErrorIs(t, err, sentinel.ErrInvalidReference)

	other, err := s.Create(ctx, models.UserFields{Username: "anna", PasswordHash: "h3", RoleID: models.RoleUserID})
	require.NoError(t, err)

	_, err = s.Update(ctx, other.ID, models.UserFields{Username: "admin", RoleID: models.RoleUserID})
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed, "renaming onto a taken username")

	_, err = s.Update(ctx, 999, models.UserFields{Username: "x", RoleID: models.RoleUserID})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryUpdateKeepsHashWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	u, err := s.Create(ctx, models.UserFields{Username: "anna", PasswordHash: "orig", RoleID: models.RoleUserID})
	require.NoError(t, err)

	_, err = s.Update(ctx, u.ID, models.UserFields{Username: "anna", RoleID: models.RoleAdminID})
	require.NoError(t, err)
	found, err := s.FindByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, "orig", found.PasswordHash)
	assert.Equal(t, "admin", found.RoleName)

	_, err = s.Update(ctx, u.ID, models.UserFields{Username: "anna", PasswordHash: "next", RoleID: models.RoleAdminID})
	require.NoError(t, err)
	found, err = s.FindByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, "next", found.PasswordHash)
}

func TestInMemoryFindByUsernameIsExact(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	_, err := s.Create(ctx, models.UserFields{Username: "Admin", PasswordHash: "h", RoleID: models.RoleAdminID})
	require.NoError(t, err)

	_, err = s.FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryFetchAndRoles(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	for _, name := range []string{"carla", "anna", "bruno"} {
		_, err := s.Create(ctx, models.UserFields{Username: name, PasswordHash: "h", RoleID: models.RoleUserID})
		require.NoError(t, err)
	}

	q := listing.Query{Page: 1, PageSize: 2, SortBy: "username", Order: listing.Ascending}
	rows, total, err := s.Fetch(ctx, listing.Window{Query: q, OrderBy: models.SortSchema.OrderBy(q)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "anna", rows[0].Username)
	assert.Equal(t, "user", rows[0].RoleName)

	roles, err := s.ListRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRoles(), roles)
}

func TestInMemoryConcurrentDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	res := testutil.RunConcurrent(16, func(int) error {
		_, err := s.Create(ctx, models.UserFields{Username: "race", PasswordHash: "h", RoleID: models.RoleUserID})
		return err
	})

	assert.Equal(t, int32(1), res.Successes)
	assert.Equal(t, int32(15), res.Conflicts)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, sentinel.ErrAlreadyUsed},
		{"foreign key violation", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgForeignKeyViolation}), sentinel.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError("create user", tt.err), tt.want)
		})
	}

	other := errors.New("connection reset")
	got := translateError("create user", other)
	assert.ErrorIs(t, got, other)
	assert.NotErrorIs(t, got, sentinel.ErrAlreadyUsed)
}
