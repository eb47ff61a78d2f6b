package httpapi

import "net/http"

type SubjectRequest struct {
	SubjectName string `json:"subject_name" validate:"required,max=100"`
}

func (s *Server) ListSubjects(w http.ResponseWriter, r *http.Request) {
	items, err := s.Subjects.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Subjects retrieved successfully", items)
}

func (s *Server) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := s.Subjects.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Subject retrieved successfully", item)
}

func (s *Server) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req SubjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := s.Subjects.Create(r.Context(), req.SubjectName)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Subject created successfully", item)
}

func (s *Server) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req SubjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := s.Subjects.Update(r.Context(), id, req.SubjectName)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Subject updated successfully", item)
}

func (s *Server) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Subjects.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Subject deleted successfully", nil)
}
