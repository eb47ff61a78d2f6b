package httpapi

import (
	"net/http"

	"schoolsite-backend-go/internal/services"
)

type RoleRequest struct {
	DisplayName string  `json:"display_name" validate:"required,max=50"`
	Descrip     *string `json:"descrip"`
}

func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.Roles.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Roles retrieved successfully", roles)
}

func (s *Server) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	role, err := s.Roles.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Role retrieved successfully", role)
}

func (s *Server) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, err := s.Roles.Create(r.Context(), services.RoleInput{DisplayName: req.DisplayName, Descrip: req.Descrip})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Role created successfully", role)
}

func (s *Server) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req RoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, err := s.Roles.Update(r.Context(), id, services.RoleInput{DisplayName: req.DisplayName, Descrip: req.Descrip})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Role updated successfully", role)
}

func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Roles.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Role deleted successfully", nil)
}
