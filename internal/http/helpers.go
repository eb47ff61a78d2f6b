package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"schoolsite-backend-go/internal/services"
)

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func pageFromQuery(r *http.Request) services.Page {
	q := r.URL.Query()
	return services.NewPage(parseInt(q.Get("page"), 1), parseInt(q.Get("limit"), services.DefaultPageSize))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, services.ErrBadRequest("Invalid ID")
	}
	return id, nil
}

// parseForm accepts multipart and urlencoded bodies up to maxBytes.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return services.ErrBadRequest("Request body too large")
			}
			return services.ErrBadRequest("Invalid form data")
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return services.ErrBadRequest("Invalid form data")
	}
	return nil
}

// formString returns nil when key is absent from the form.
func formString(r *http.Request, key string) *string {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := strings.TrimSpace(values[0])
	return &value
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func optionalInt64(field string, raw *string) (*int64, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, services.ErrValidation("Invalid " + field)
	}
	return &value, nil
}

func optionalBool(field string, raw *string) (*bool, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, services.ErrValidation("Invalid " + field)
	}
	return &value, nil
}

func optionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, services.ErrValidation("Invalid " + field)
	}
	return &value, nil
}

// nonEmpty maps "" to nil so blank form fields do not overwrite with empty
// strings.
func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

// saveUpload stores the file in field, if present, and returns its URL.
func (s *Server) saveUpload(r *http.Request, field, dir string) (*string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, services.ErrBadRequest("Invalid file upload")
	}
	defer file.Close()
	url, err := s.Media.Save(r.Context(), dir, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
