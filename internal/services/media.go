package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"schoolsite-backend-go/internal/storage"
)

const (
	DirTeachers  = "teachers"
	DirGalleries = "galleries"
	DirProfile   = "profile"

	// UploadURLPrefix is the public path under which stored objects are served.
	UploadURLPrefix = "/uploads/"
)

var allowedMedia = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"video/mp4":  ".mp4",
}

func AllowedMediaType(contentType string) bool {
	_, ok := allowedMedia[strings.ToLower(contentType)]
	return ok
}

// Media writes uploaded files to the configured object storage.
type Media struct {
	Store    storage.ObjectStorage
	MaxBytes int64
}

func NewMedia(store storage.ObjectStorage, maxBytes int64) *Media {
	return &Media{Store: store, MaxBytes: maxBytes}
}

// Save stores the file under dir/<uuid><ext> and returns its public URL.
func (m *Media) Save(ctx context.Context, dir, filename, contentType string, size int64, body io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedMedia[contentType]
	if !ok {
		return "", ErrBadRequest("Invalid file type. Only JPEG, PNG and MP4 are allowed.")
	}
	if size == 0 {
		return "", ErrBadRequest("Uploaded file is empty")
	}
	if m.MaxBytes > 0 && size > m.MaxBytes {
		return "", ErrBadRequest(fmt.Sprintf("File too large. Maximum size is %d MB", m.MaxBytes>>20))
	}
	if original := strings.ToLower(filepath.Ext(filename)); original == ".jpeg" || original == ".jpg" || original == ".png" || original == ".mp4" {
		ext = original
	}
	key := dir + "/" + uuid.NewString() + ext
	if err := m.Store.Put(ctx, key, body, size, contentType); err != nil {
		return "", err
	}
	return UploadURLPrefix + key, nil
}

// Open resolves a public upload URL or bare key to a reader.
func (m *Media) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.Store.Get(ctx, strings.TrimPrefix(key, UploadURLPrefix))
}

// Remove deletes a previously saved upload. URLs that do not point into
// the upload area are ignored.
func (m *Media) Remove(ctx context.Context, url *string) error {
	if url == nil || !strings.HasPrefix(*url, UploadURLPrefix) {
		return nil
	}
	return m.Store.Delete(ctx, strings.TrimPrefix(*url, UploadURLPrefix))
}
