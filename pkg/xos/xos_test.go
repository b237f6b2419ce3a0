package xos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	require.NoError(t, WriteFile(path, []byte("one"), 0644))
	require.NoError(t, WriteFile(path, []byte("two"), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestWriteFile_LeavesOnlyTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")

	require.NoError(t, WriteFile(path, []byte("one"), 0644))
	require.NoError(t, WriteFile(path, []byte("two"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "manifest.yaml", entries[0].Name())
}

func TestWriteFile_MissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "manifest.yaml"), []byte("x"), 0644)
	assert.Error(t, err)
}

func TestWriteFileWithBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "js-uploader.yaml")

	// No backup for a new file
	require.NoError(t, WriteFileWithBackup(path, []byte("first"), 0644))
	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, WriteFileWithBackup(path, []byte("second"), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "first", string(bak))
}
