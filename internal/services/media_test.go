package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolsite-backend-go/internal/services"
	"schoolsite-backend-go/internal/storage"
)

func TestMedia_SaveOpenRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	media := services.NewMedia(store, 1<<20)

	url, err := media.Save(ctx, services.DirTeachers, "Foto.PNG", "image/png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/teachers/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rc, err := media.Open(ctx, url)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(body))

	require.NoError(t, media.Remove(ctx, &url))
	_, err = media.Open(ctx, url)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	external := "https://cdn.example.com/a.png"
	assert.NoError(t, media.Remove(ctx, &external))
	assert.NoError(t, media.Remove(ctx, nil))
}

func TestMedia_SaveRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	media := services.NewMedia(store, 8)

	tests := []struct {
		name        string
		contentType string
		size        int64
		msg         string
	}{
		{name: "type", contentType: "text/plain", size: 3, msg: "Invalid file type. Only JPEG, PNG and MP4 are allowed."},
		{name: "empty", contentType: "image/jpeg", size: 0, msg: "Uploaded file is empty"},
		{name: "too large", contentType: "video/mp4", size: 9, msg: "File too large. Maximum size is 0 MB"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := media.Save(ctx, services.DirGalleries, "f", tt.contentType, tt.size, strings.NewReader("abc"))
			requireServiceError(t, err, 400, tt.msg)
		})
	}
}
