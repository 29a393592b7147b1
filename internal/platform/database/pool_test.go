package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresURL(t *testing.T) {
	_, err := New(context.Background(), DefaultConfig())
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestNilPoolIsSafe(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Health(ctx), errNotConfigured)
	assert.ErrorIs(t, p.WithConn(ctx, func(*sql.Conn) error { return nil }), errNotConfigured)
	_, err := p.Migrate(ctx)
	assert.ErrorIs(t, err, errNotConfigured)
	assert.NoError(t, p.Close())
	assert.Equal(t, sql.DBStats{}, p.Stats())
}

func TestNewFailsOnUnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.URL = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	_, err := New(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}
