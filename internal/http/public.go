package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"schoolsite-backend-go/internal/services"
	"schoolsite-backend-go/internal/storage"
)

func (s *Server) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, http.StatusOK, "School website API is running", map[string]string{
		"version": "1.0.0",
		"docs":    "/api/health",
	})
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	sample := services.CaptureHealth(r.Context(), s.DB, s.StartedAt)
	status := http.StatusOK
	if sample.Database != "ok" {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, Envelope{Success: status == http.StatusOK, Message: "Health check", Data: sample})
}

// ServeUpload streams a stored object back from the upload backend.
func (s *Server) ServeUpload(w http.ResponseWriter, r *http.Request) {
	key := path.Clean("/" + chi.URLParam(r, "*"))[1:]
	if key == "" {
		NotFound(w, r)
		return
	}
	reader, err := s.Media.Open(r.Context(), key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	defer reader.Close()
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(w, reader)
}
