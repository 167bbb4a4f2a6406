package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "market.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	require.NoError(t, EnsureParentDir(path), "must be idempotent")
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("market.db"))
}

func TestReadLimited(t *testing.T) {
	tmp := t.TempDir()
	png := filepath.Join(tmp, "pic.png")
	data := []byte("\x89PNG\r\n\x1a\n0000")
	require.NoError(t, os.WriteFile(png, data, 0o600))

	got, ct, err := ReadLimited(png, 1024)
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, "image/png", ct)

	_, _, err = ReadLimited(png, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	_, _, err = ReadLimited(filepath.Join(tmp, "missing.png"), 0)
	require.Error(t, err)

	_, _, err = ReadLimited(tmp, 0)
	require.Error(t, err)
}
