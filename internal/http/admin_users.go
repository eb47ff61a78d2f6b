package httpapi

import (
	"net/http"

	"schoolsite-backend-go/internal/services"
)

type UserCreateRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone"`
	RoleID   *int64  `json:"role_id" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone"`
	RoleID   *int64  `json:"role_id" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Accounts.List(r.Context(), page, r.URL.Query().Get("search"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Users retrieved successfully", items, page, total)
}

func (s *Server) ListDeletedUsers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Accounts.ListDeleted(r.Context(), page)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Deleted users retrieved successfully", items, page, total)
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	account, err := s.Accounts.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "User retrieved successfully", account)
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := s.Accounts.Create(r.Context(), services.AccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "User created successfully", account)
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req UserUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := s.Accounts.Update(r.Context(), id, services.AccountUpdate{
		Email:    req.Email,
		FullName: &req.FullName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "User updated successfully", account)
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if identity, _ := IdentityFromContext(r.Context()); identity.ID == id {
		WriteError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}
	if err := s.Accounts.SoftDelete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "User deleted successfully", nil)
}

func (s *Server) RestoreUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	account, err := s.Accounts.Restore(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "User restored successfully", account)
}

func (s *Server) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.Accounts.SetPassword(r.Context(), id, req.NewPassword); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Password reset successfully", nil)
}
