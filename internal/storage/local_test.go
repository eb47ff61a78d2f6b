package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolsite-backend-go/internal/config"
)

func TestLocalDisk_StaysUnderRoot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "uploads")

	store, err := New(ctx, config.UploadConfig{Backend: "local", Dir: root})
	require.NoError(t, err)
	assert.DirExists(t, root)

	require.NoError(t, store.Put(ctx, "../../escape.png", strings.NewReader("x"), 1, "image/png"))
	assert.FileExists(t, filepath.Join(root, "escape.png"))

	rc, err := store.Get(ctx, "/../escape.png")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "x", string(body))

	_, err = store.Get(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, store.Delete(ctx, "escape.png"))
	require.NoError(t, store.Delete(ctx, "escape.png"))
	_, err = os.Stat(filepath.Join(root, "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), config.UploadConfig{Backend: "ftp"})
	assert.EqualError(t, err, `unknown upload backend "ftp"`)
}
