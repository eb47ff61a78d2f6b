package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schoolsite-backend-go/internal/services"
)

type StudentRequest struct {
	NISN     *string  `json:"nisn" validate:"omitempty,max=20"`
	Name     string   `json:"name" validate:"required,max=100"`
	Class    string   `json:"class" validate:"required,max=20"`
	Gender   string   `json:"gender" validate:"required,oneof=L P"`
	ScoreUTS *float64 `json:"score_uts" validate:"omitempty,min=0,max=100"`
	ScoreUAS *float64 `json:"score_uas" validate:"omitempty,min=0,max=100"`
}

func (req StudentRequest) input() services.StudentInput {
	return services.StudentInput{
		NISN:      req.NISN,
		Name:      req.Name,
		ClassName: req.Class,
		Gender:    req.Gender,
		ScoreUTS:  req.ScoreUTS,
		ScoreUAS:  req.ScoreUAS,
	}
}

func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Students.List(r.Context(), page, r.URL.Query().Get("class"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Students retrieved successfully", items, page, total)
}

func (s *Server) ListDeletedStudents(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Students.ListDeleted(r.Context(), page)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Deleted students retrieved successfully", items, page, total)
}

func (s *Server) StudentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Students.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Student statistics retrieved successfully", stats)
}

func (s *Server) StudentsByClass(w http.ResponseWriter, r *http.Request) {
	items, err := s.Students.ByClass(r.Context(), chi.URLParam(r, "className"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Students retrieved successfully", items)
}

func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	student, err := s.Students.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Student retrieved successfully", student)
}

func (s *Server) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	student, err := s.Students.Create(r.Context(), req.input())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Student created successfully", student)
}

func (s *Server) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req StudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	student, err := s.Students.Update(r.Context(), id, req.input())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Student updated successfully", student)
}

func (s *Server) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Students.SoftDelete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Student deleted successfully", nil)
}

func (s *Server) RestoreStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	student, err := s.Students.Restore(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Student restored successfully", student)
}
