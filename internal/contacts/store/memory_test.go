package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubrica/internal/contacts/models"
	"rubrica/internal/contacts/service"
	"rubrica/internal/listing"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/testutil"
)

var (
	_ service.Store = (*InMemory)(nil)
	_ service.Store = (*PostgresStore)(nil)
)

func fields(name, surname string) models.ContactFields {
	return testutil.NewContactBuilder().
		WithName(name).
		WithSurname(surname).
		WithEmail(name + "@example.com").
		Build()
}

func window(page int64, size int, sortBy string, order listing.Direction) listing.Window {
	q := listing.Query{Page: page, PageSize: size, SortBy: sortBy, Order: order}
	return listing.Window{Query: q, OrderBy: models.SortSchema.OrderBy(q)}
}

func TestInMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	created, err := s.Create(ctx, fields("anna", "verdi"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	updated, err := s.Update(ctx, created.ID, fields("anna", "bianchi"))
	require.NoError(t, err)
	assert.Equal(t, "bianchi", updated.Surname)

	_, err = s.Update(ctx, 404, fields("x", "y"))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.Delete(ctx, created.ID))
	require.NoError(t, s.Delete(ctx, created.ID), "deleting twice is not an error")

	_, total, err := s.Fetch(ctx, window(1, 10, "id", listing.Ascending))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInMemoryFetchPagesAndSorts(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	for i := 0; i < 25; i++ {
		_, err := s.Create(ctx, fields(fmt.Sprintf("n%02d", 24-i), "same"))
		require.NoError(t, err)
	}

	rows, total, err := s.Fetch(ctx, window(1, 10, "id", listing.Ascending))
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, rows, 10)
	assert.Equal(t, int64(1), rows[0].ID)

	rows, _, err = s.Fetch(ctx, window(3, 10, "id", listing.Ascending))
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	rows, _, err = s.Fetch(ctx, window(1, 3, "name", listing.Ascending))
	require.NoError(t, err)
	assert.Equal(t, []string{"n00", "n01", "n02"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	// equal surnames fall back to id order
	rows, _, err = s.Fetch(ctx, window(1, 3, "surname", listing.Descending))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestInMemoryNameOrderMatchesCreation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	for _, f := range testutil.NumberedContacts(12) {
		_, err := s.Create(ctx, f)
		require.NoError(t, err)
	}

	byName, _, err := s.Fetch(ctx, window(2, 5, "name", listing.Descending))
	require.NoError(t, err)
	require.Len(t, byName, 5)
	assert.Equal(t, "Name07", byName[0].Name)
	assert.Equal(t, int64(7), byName[0].ID)
}

func TestInMemoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	result := testutil.RunConcurrent(50, func(idx int) error {
		_, err := s.Create(ctx, fields(fmt.Sprint(idx), "c"))
		return err
	})

	assert.Equal(t, int32(50), result.Successes)
	_, total, err := s.Fetch(ctx, window(1, 1, "id", listing.Ascending))
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
}
