package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rubrica/internal/contacts/models"
	"rubrica/internal/listing"
	"rubrica/internal/platform/database"
	"rubrica/pkg/platform/sentinel"
)

const contactColumns = `id, name, surname, phone, email, address`

// PostgresStore persists contacts in PostgreSQL.
type PostgresStore struct {
	pool *database.Pool
}

func NewPostgres(pool *database.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Fetch runs the page query and the count on the same pooled connection.
// w.OrderBy comes from listing.Schema and is never built from request input.
func (s *PostgresStore) Fetch(ctx context.Context, w listing.Window) ([]models.Contact, int64, error) {
	var (
		contacts []models.Contact
		total    int64
	)
	err := s.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT `+contactColumns+` FROM contacts ORDER BY `+w.OrderBy+` LIMIT $1 OFFSET $2`,
			w.Limit(), w.Offset(),
		)
		if err != nil {
			return fmt.Errorf("query contacts: %w", err)
		}
		defer rows.Close()

		contacts = make([]models.Contact, 0, w.Limit())
		for rows.Next() {
			c, err := scanContact(rows)
			if err != nil {
				return fmt.Errorf("scan contact: %w", err)
			}
			contacts = append(contacts, *c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate contacts: %w", err)
		}

		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
			return fmt.Errorf("count contacts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (s *PostgresStore) Create(ctx context.Context, f models.ContactFields) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (name, surname, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns
	c, err := scanContact(s.pool.DB().QueryRowContext(ctx, query, f.Name, f.Surname, f.Phone, f.Email, f.Address))
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, f models.ContactFields) (*models.Contact, error) {
	query := `
		UPDATE contacts
		SET name = $1, surname = $2, phone = $3, email = $4, address = $5
		WHERE id = $6
		RETURNING ` + contactColumns
	c, err := scanContact(s.pool.DB().QueryRowContext(ctx, query, f.Name, f.Surname, f.Phone, f.Email, f.Address, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.pool.DB().ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

type contactRow interface {
	Scan(dest ...any) error
}

func scanContact(row contactRow) (*models.Contact, error) {
	var c models.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Email, &c.Address); err != nil {
		return nil, err
	}
	return &c, nil
}
