package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	srcDir := t.TempDir()
	baseDir := t.TempDir()

	src := filepath.Join(srcDir, "result_abc.png")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0644))

	store := NewLocalStorage(baseDir)
	ref, err := store.Save(context.Background(), src, "result_abc.png")
	require.NoError(t, err)

	assert.Equal(t, "/results/result_abc.png", ref)
	assert.True(t, store.Exists("result_abc.png"))

	content, err := os.ReadFile(filepath.Join(baseDir, "result_abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
}

func TestLocalStorageSaveMissingSource(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	_, err := store.Save(context.Background(), "does-not-exist", "x.png")
	assert.Error(t, err)
}

func TestLocalStorageDelete(t *testing.T) {
	baseDir := t.TempDir()
	src := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(src, []byte("v"), 0644))

	store := NewLocalStorage(baseDir)
	_, err := store.Save(context.Background(), src, "a.mp4")
	require.NoError(t, err)

	require.NoError(t, store.Delete("a.mp4"))
	assert.False(t, store.Exists("a.mp4"))
}
