package httpapi

import (
	"net/http"

	"schoolsite-backend-go/internal/services"
)

type TeacherForm struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	NIP       *string `json:"nip" validate:"omitempty,max=30"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	SubjectID *string `json:"subject_id" validate:"omitempty,numeric"`
	ClassName *string `json:"class_name" validate:"omitempty,max=50"`
	Bio       *string `json:"bio"`
	JoinDate  *string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  *string `json:"is_active" validate:"omitempty,boolean"`
}

// TeacherCreateForm requires a name on top of the shared field rules.
type TeacherCreateForm struct {
	TeacherForm
	Name string `json:"name" validate:"required,max=100"`
}

func teacherFormFrom(r *http.Request) TeacherForm {
	return TeacherForm{
		Name:      formString(r, "name"),
		NIP:       formString(r, "nip"),
		Email:     nonEmpty(formString(r, "email")),
		Phone:     formString(r, "phone"),
		SubjectID: nonEmpty(formString(r, "subject_id")),
		ClassName: formString(r, "class_name"),
		Bio:       formString(r, "bio"),
		JoinDate:  nonEmpty(formString(r, "join_date")),
		IsActive:  nonEmpty(formString(r, "is_active")),
	}
}

func (f TeacherForm) fields() (services.TeacherFields, error) {
	subjectID, err := optionalInt64("subject_id", f.SubjectID)
	if err != nil {
		return services.TeacherFields{}, err
	}
	joinDate, err := optionalDate("join_date", f.JoinDate)
	if err != nil {
		return services.TeacherFields{}, err
	}
	isActive, err := optionalBool("is_active", f.IsActive)
	if err != nil {
		return services.TeacherFields{}, err
	}
	return services.TeacherFields{
		NIP:       nonEmpty(f.NIP),
		Name:      f.Name,
		SubjectID: subjectID,
		ClassName: nonEmpty(f.ClassName),
		Email:     f.Email,
		Phone:     nonEmpty(f.Phone),
		Bio:       nonEmpty(f.Bio),
		JoinDate:  joinDate,
		IsActive:  isActive,
	}, nil
}

func (s *Server) ListTeachers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Teachers.List(r.Context(), page, r.URL.Query().Get("search"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Teachers retrieved successfully", items, page, total)
}

func (s *Server) ListDeletedTeachers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Teachers.ListDeleted(r.Context(), page)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Deleted teachers retrieved successfully", items, page, total)
}

func (s *Server) GetTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	teacher, err := s.Teachers.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Teacher retrieved successfully", teacher)
}

func (s *Server) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, s.Config.Upload.MaxBytes); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	form := TeacherCreateForm{TeacherForm: teacherFormFrom(r), Name: formValue(r, "name")}
	if !checkValid(w, form) {
		return
	}
	fields, err := form.fields()
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	photo, err := s.saveUpload(r, "photo", services.DirTeachers)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	fields.Name = &form.Name
	fields.Photo = photo
	if identity, ok := IdentityFromContext(r.Context()); ok {
		fields.UserID = &identity.ID
	}
	teacher, err := s.Teachers.Create(r.Context(), fields)
	if err != nil {
		_ = s.Media.Remove(r.Context(), photo)
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Teacher created successfully", teacher)
}

func (s *Server) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := parseForm(w, r, s.Config.Upload.MaxBytes); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	form := teacherFormFrom(r)
	if !checkValid(w, form) {
		return
	}
	fields, err := form.fields()
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	current, err := s.Teachers.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	photo, err := s.saveUpload(r, "photo", services.DirTeachers)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	fields.Photo = photo
	teacher, err := s.Teachers.Update(r.Context(), id, fields)
	if err != nil {
		_ = s.Media.Remove(r.Context(), photo)
		WriteServiceError(w, r, err)
		return
	}
	if photo != nil {
		_ = s.Media.Remove(r.Context(), current.Photo)
	}
	WriteOK(w, http.StatusOK, "Teacher updated successfully", teacher)
}

func (s *Server) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Teachers.SoftDelete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Teacher deleted successfully", nil)
}

func (s *Server) RestoreTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	teacher, err := s.Teachers.Restore(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Teacher restored successfully", teacher)
}
