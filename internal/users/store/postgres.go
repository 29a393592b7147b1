package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"rubrica/internal/listing"
	"rubrica/internal/platform/database"
	"rubrica/internal/users/models"
	"rubrica/pkg/platform/sentinel"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// userSelect reads a user joined with its role. Callers alias the user row
// source as u.
const userSelect = `SELECT u.id, u.username, u.password, u.role_id, r.name`

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	pool *database.Pool
}

func NewPostgres(pool *database.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Fetch(ctx context.Context, w listing.Window) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	err := s.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			userSelect+` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY `+w.OrderBy+` LIMIT $1 OFFSET $2`,
			w.Limit(), w.Offset(),
		)
		if err != nil {
			return fmt.Errorf("query users: %w", err)
		}
		defer rows.Close()

		users = make([]models.User, 0, w.Limit())
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			users = append(users, *u)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate users: %w", err)
		}

		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *PostgresStore) Create(ctx context.Context, f models.UserFields) (*models.User, error) {
	query := `
		WITH u AS (
			INSERT INTO users (username, password, role_id)
			VALUES ($1, $2, $3)
			RETURNING id, username, password, role_id
		)
		` + userSelect + ` FROM u JOIN roles r ON r.id = u.role_id`
	u, err := scanUser(s.pool.DB().QueryRowContext(ctx, query, f.Username, f.PasswordHash, f.RoleID))
	if err != nil {
		return nil, translateError("create user", err)
	}
	return u, nil
}

// Update replaces username and role. The stored hash is kept when
// f.PasswordHash is empty.
func (s *PostgresStore) Update(ctx context.Context, id int64, f models.UserFields) (*models.User, error) {
	query := `
		WITH u AS (
			UPDATE users
			SET username = $1, password = COALESCE(NULLIF($2, ''), password), role_id = $3
			WHERE id = $4
			RETURNING id, username, password, role_id
		)
		` + userSelect + ` FROM u JOIN roles r ON r.id = u.role_id`
	u, err := scanUser(s.pool.DB().QueryRowContext(ctx, query, f.Username, f.PasswordHash, f.RoleID, id))
	if err != nil {
		return nil, translateError("update user", err)
	}
	return u, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.pool.DB().ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRoles(ctx context.Context) ([]models.Role, error) {
	rows, err := s.pool.DB().QueryContext(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0, 2)
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(s.pool.DB().QueryRowContext(ctx,
		userSelect+` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.username = $1`,
		username,
	))
	if err != nil {
		return nil, translateError("find user by username", err)
	}
	return u, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.RoleName); err != nil {
		return nil, err
	}
	return &u, nil
}

func translateError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: username taken: %w", op, sentinel.ErrAlreadyUsed)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: unknown role: %w", op, sentinel.ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
