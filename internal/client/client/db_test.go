package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "openmarket.db")

	db, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	v, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)

	// migrations are idempotent
	require.NoError(t, RunMigrations(ctx, db))
}

func TestInitDatabase_Memory(t *testing.T) {
	db, err := InitDatabase(context.Background(), MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
