//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"rubrica/migrations"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("rubrica_test"),
		postgres.WithUsername("rubrica"),
		postgres.WithPassword("rubrica_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if _, err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// No t.Cleanup: the container is shared through Manager and reaped by
	// Ryuk when the test process exits.
	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateTables clears the given tables and resets their id sequences.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateModuleTables clears contacts and users. Seeded roles are kept.
func (p *PostgresContainer) TruncateModuleTables(ctx context.Context) error {
	return p.TruncateTables(ctx, "contacts", "users")
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// QueryRow runs a SQL query expected to return a single row.
func (p *PostgresContainer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.DB.QueryRowContext(ctx, query, args...)
}

// CreateTestContact inserts a contact and returns its id.
func (p *PostgresContainer) CreateTestContact(ctx context.Context, t testing.TB, name, surname string) int64 {
	t.Helper()
	var contactID int64
	err := p.QueryRow(ctx, `
		INSERT INTO contacts (name, surname, phone, email, address)
		VALUES ($1, $2, '+39 06 000000', $3, 'Via Roma 1')
		RETURNING id
	`, name, surname, name+"."+surname+"@example.com").Scan(&contactID)
	if err != nil {
		t.Fatalf("CreateTestContact: %v", err)
	}
	return contactID
}

// CreateTestUser inserts a user with an already hashed password and returns its id.
func (p *PostgresContainer) CreateTestUser(ctx context.Context, t testing.TB, username, passwordHash string, roleID int64) int64 {
	t.Helper()
	var userID int64
	err := p.QueryRow(ctx, `
		INSERT INTO users (username, password, role_id) VALUES ($1, $2, $3) RETURNING id
	`, username, passwordHash, roleID).Scan(&userID)
	if err != nil {
		t.Fatalf("CreateTestUser: %v", err)
	}
	return userID
}
