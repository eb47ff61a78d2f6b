package httpapi

import (
	"net/http"

	"schoolsite-backend-go/internal/services"
)

type ProfileForm struct {
	SchoolName    *string `json:"school_name" validate:"omitempty,max=200"`
	NPSN          *string `json:"npsn" validate:"omitempty,max=20"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Website       *string `json:"website" validate:"omitempty,url"`
	Accreditation *string `json:"accreditation" validate:"omitempty,max=10"`
	PrincipalName *string `json:"principal_name"`
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Profiles.Get(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// SaveProfile creates the school profile or updates the submitted fields.
// logo and principal_photo are optional file parts.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, s.Config.Upload.MaxBytes*2); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	form := ProfileForm{
		SchoolName:    formString(r, "school_name"),
		NPSN:          formString(r, "npsn"),
		Address:       formString(r, "address"),
		Phone:         formString(r, "phone"),
		Email:         nonEmpty(formString(r, "email")),
		Website:       nonEmpty(formString(r, "website")),
		Accreditation: formString(r, "accreditation"),
		PrincipalName: formString(r, "principal_name"),
	}
	if !checkValid(w, form) {
		return
	}
	logo, err := s.saveUpload(r, "logo", services.DirProfile)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	photo, err := s.saveUpload(r, "principal_photo", services.DirProfile)
	if err != nil {
		_ = s.Media.Remove(r.Context(), logo)
		WriteServiceError(w, r, err)
		return
	}
	var previous *services.ProfileFields
	if current, err := s.Profiles.Get(r.Context()); err == nil {
		previous = &services.ProfileFields{Logo: current.Logo, PrincipalPhoto: current.PrincipalPhoto}
	}
	profile, created, err := s.Profiles.Save(r.Context(), services.ProfileFields{
		SchoolName:     form.SchoolName,
		NPSN:           form.NPSN,
		Address:        form.Address,
		Phone:          form.Phone,
		Email:          form.Email,
		Website:        form.Website,
		Logo:           logo,
		Accreditation:  form.Accreditation,
		PrincipalName:  form.PrincipalName,
		PrincipalPhoto: photo,
	})
	if err != nil {
		_ = s.Media.Remove(r.Context(), logo)
		_ = s.Media.Remove(r.Context(), photo)
		WriteServiceError(w, r, err)
		return
	}
	if previous != nil {
		if logo != nil {
			_ = s.Media.Remove(r.Context(), previous.Logo)
		}
		if photo != nil {
			_ = s.Media.Remove(r.Context(), previous.PrincipalPhoto)
		}
	}
	if created {
		WriteOK(w, http.StatusCreated, "Profile created successfully", profile)
		return
	}
	WriteOK(w, http.StatusOK, "Profile updated successfully", profile)
}
