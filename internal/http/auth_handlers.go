package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"schoolsite-backend-go/internal/models"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      models.Account `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := s.Accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	token, exp, err := s.Tokens.Issue(account.ID, account.RoleName())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Accounts.SetLastLogin(r.Context(), account.ID); err != nil {
		log.Printf("[%s] last login update for user %d: %v", middleware.GetReqID(r.Context()), account.ID, err)
	} else {
		now := time.Now().UTC()
		account.LastLogin = &now
	}
	WriteOK(w, http.StatusOK, "Login successful", LoginResponse{Token: token, ExpiresAt: exp, User: account})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	account, err := s.Accounts.Get(r.Context(), identity.ID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "User retrieved successfully", account)
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	identity, _ := IdentityFromContext(r.Context())
	if err := s.Accounts.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Password changed successfully", nil)
}

// Logout only acknowledges; tokens stay valid until they expire.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, http.StatusOK, "Logout successful", nil)
}
