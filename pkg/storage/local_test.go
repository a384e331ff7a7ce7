package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, size, err := store.Save(context.Background(), "file1.txt", strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)
	assert.FileExists(t, path)

	f, err := store.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestSaveRejectsDuplicateName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Save(context.Background(), "dup.txt", strings.NewReader("a"))
	require.NoError(t, err)

	_, _, err = store.Save(context.Background(), "dup.txt", strings.NewReader("b"))
	assert.Error(t, err)
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	// A hostile original name must not escape the store directory.
	path, _, err := store.Save(context.Background(), "../../etc/evil.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Contains(t, path, dir)
}

func TestSaveCleansUpOnCanceledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = store.Save(ctx, "aborted.bin", strings.NewReader("partial"))
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "aborted upload must not leave a file behind")
}

func TestRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, _, err := store.Save(context.Background(), "gone.txt", strings.NewReader("bye"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	assert.NoFileExists(t, path)

	// Removing again surfaces the error, callers decide what to do.
	assert.Error(t, store.Remove(path))
}
