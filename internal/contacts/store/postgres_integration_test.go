//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"rubrica/internal/contacts/models"
	"rubrica/internal/contacts/store"
	"rubrica/internal/listing"
	"rubrica/internal/platform/database"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/testutil"
	"rubrica/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.GetPostgres(s.T())
	s.store = store.NewPostgres(database.FromDB(s.pg.DB))
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateModuleTables(s.ctx))
}

func (s *PostgresStoreSuite) fetch(raw string, page int64, size int, order listing.Direction) ([]models.Contact, int64) {
	q := listing.Query{Page: page, PageSize: size, SortBy: raw, Order: order}
	rows, total, err := s.store.Fetch(s.ctx, listing.Window{Query: q, OrderBy: models.SortSchema.OrderBy(q)})
	s.Require().NoError(err)
	return rows, total
}

func (s *PostgresStoreSuite) TestCRUD() {
	created, err := s.store.Create(s.ctx, models.ContactFields{
		Name: "Mario", Surname: "Rossi", Phone: "1", Email: "mario@example.com", Address: "Via Roma 1",
	})
	s.Require().NoError(err)
	s.Positive(created.ID)

	updated, err := s.store.Update(s.ctx, created.ID, models.ContactFields{
		Name: "Maria", Surname: "Rossi", Phone: "2", Email: "maria@example.com", Address: "Via Po 2",
	})
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("Maria", updated.Name)

	_, err = s.store.Update(s.ctx, created.ID+100, models.ContactFields{Name: "x"})
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Delete(s.ctx, created.ID))
	s.Require().NoError(s.store.Delete(s.ctx, created.ID), "deleting a missing row is not an error")

	rows, total := s.fetch("id", 1, 10, listing.Ascending)
	s.Empty(rows)
	s.Zero(total)
}

func (s *PostgresStoreSuite) TestPagingAcrossTwentyFiveRows() {
	for i := 1; i <= 25; i++ {
		s.pg.CreateTestContact(s.ctx, s.T(), fmt.Sprintf("Name%02d", i), "Surname")
	}

	rows, total := s.fetch("id", 3, 10, listing.Ascending)
	s.Equal(int64(25), total)
	s.Require().Len(rows, 5)
	s.Equal(int64(21), rows[0].ID)

	rows, _ = s.fetch("name", 1, 3, listing.Descending)
	s.Require().Len(rows, 3)
	s.Equal("Name25", rows[0].Name)

	rows, total = s.fetch("id", 4, 10, listing.Ascending)
	s.Empty(rows)
	s.Equal(int64(25), total)
}

func (s *PostgresStoreSuite) TestTiesBreakOnID() {
	for i := 0; i < 6; i++ {
		s.pg.CreateTestContact(s.ctx, s.T(), "Same", "Surname")
	}

	first, _ := s.fetch("name", 1, 3, listing.Descending)
	second, _ := s.fetch("name", 2, 3, listing.Descending)

	s.Equal([]int64{1, 2, 3}, ids(first))
	s.Equal([]int64{4, 5, 6}, ids(second))
}

func (s *PostgresStoreSuite) TestConcurrentCreates() {
	res := testutil.RunConcurrent(20, func(idx int) error {
		_, err := s.store.Create(s.ctx, testutil.NewContactBuilder().WithName(fmt.Sprintf("C%d", idx)).Build())
		return err
	})
	s.Equal(int32(20), res.Successes)

	_, total := s.fetch("id", 1, 1, listing.Ascending)
	s.Equal(int64(20), total)
}

func (s *PostgresStoreSuite) TestMissingTableSurfacesError() {
	_, err := s.pg.Exec(s.ctx, `ALTER TABLE contacts RENAME TO contacts_gone`)
	s.Require().NoError(err)
	defer func() {
		_, err := s.pg.Exec(s.ctx, `ALTER TABLE contacts_gone RENAME TO contacts`)
		s.Require().NoError(err)
	}()

	q := listing.Query{Page: 1, PageSize: 10, SortBy: "id"}
	_, _, err = s.store.Fetch(s.ctx, listing.Window{Query: q, OrderBy: models.SortSchema.OrderBy(q)})
	s.Error(err)
}

func ids(rows []models.Contact) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
