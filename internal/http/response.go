package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"schoolsite-backend-go/internal/services"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PagedEnvelope struct {
	Envelope
	Pagination Pagination `json:"pagination"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationEnvelope struct {
	Envelope
	Errors []FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

func WriteOK(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

func WritePage(w http.ResponseWriter, message string, data interface{}, page services.Page, total int) {
	WriteJSON(w, http.StatusOK, PagedEnvelope{
		Envelope: Envelope{Success: true, Message: message, Data: data},
		Pagination: Pagination{
			Page:       page.Number,
			Limit:      page.Size,
			Total:      total,
			TotalPages: services.TotalPages(total, page.Size),
		},
	})
}

func WriteValidation(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, ValidationEnvelope{
		Envelope: Envelope{Success: false, Message: "Validation failed"},
		Errors:   errs,
	})
}

// WriteServiceError writes the status and message of a ServiceError. Any
// other error is logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteError(w, serr.Status, serr.Message)
		return
	}
	log.Printf("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
