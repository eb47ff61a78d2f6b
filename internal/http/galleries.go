package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schoolsite-backend-go/internal/services"
)

type GalleryForm struct {
	Title  *string `json:"title" validate:"omitempty,max=255"`
	Slug   *string `json:"slug" validate:"omitempty,max=255"`
	Descr  *string `json:"descr"`
	Status *string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type GalleryCreateForm struct {
	GalleryForm
	Title string `json:"title" validate:"required,max=255"`
}

func galleryFormFrom(r *http.Request) GalleryForm {
	return GalleryForm{
		Title:  formString(r, "title"),
		Slug:   formString(r, "slug"),
		Descr:  formString(r, "descr"),
		Status: nonEmpty(formString(r, "status")),
	}
}

func (s *Server) ListGalleries(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Galleries.List(r.Context(), page, !CurrentIsAdmin(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Galleries retrieved successfully", items, page, total)
}

func (s *Server) ListPublishedGalleries(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Galleries.List(r.Context(), page, true)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Published galleries retrieved successfully", items, page, total)
}

func (s *Server) ListDeletedGalleries(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Galleries.ListDeleted(r.Context(), page)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Deleted galleries retrieved successfully", items, page, total)
}

func (s *Server) GetGallery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	gallery, err := s.Galleries.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Gallery retrieved successfully", gallery)
}

func (s *Server) GetGalleryBySlug(w http.ResponseWriter, r *http.Request) {
	gallery, err := s.Galleries.GetBySlug(r.Context(), chi.URLParam(r, "slug"), !CurrentIsAdmin(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Gallery retrieved successfully", gallery)
}

// galleryMedia stores the optional img and video parts.
func (s *Server) galleryMedia(r *http.Request) (img, video *string, err error) {
	if img, err = s.saveUpload(r, "img", services.DirGalleries); err != nil {
		return nil, nil, err
	}
	if video, err = s.saveUpload(r, "video", services.DirGalleries); err != nil {
		_ = s.Media.Remove(r.Context(), img)
		return nil, nil, err
	}
	return img, video, nil
}

func (s *Server) CreateGallery(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, s.Config.Upload.MaxBytes*2); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	form := GalleryCreateForm{GalleryForm: galleryFormFrom(r), Title: formValue(r, "title")}
	if !checkValid(w, form) {
		return
	}
	img, video, err := s.galleryMedia(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	gallery, err := s.Galleries.Create(r.Context(), services.GalleryFields{
		Title:  &form.Title,
		Slug:   form.Slug,
		Descr:  nonEmpty(form.Descr),
		Img:    img,
		Video:  video,
		Status: form.Status,
	})
	if err != nil {
		_ = s.Media.Remove(r.Context(), img)
		_ = s.Media.Remove(r.Context(), video)
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Gallery created successfully", gallery)
}

func (s *Server) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := parseForm(w, r, s.Config.Upload.MaxBytes*2); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	form := galleryFormFrom(r)
	if !checkValid(w, form) {
		return
	}
	current, err := s.Galleries.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	img, video, err := s.galleryMedia(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	gallery, err := s.Galleries.Update(r.Context(), id, services.GalleryFields{
		Title:  form.Title,
		Slug:   form.Slug,
		Descr:  form.Descr,
		Img:    img,
		Video:  video,
		Status: form.Status,
	})
	if err != nil {
		_ = s.Media.Remove(r.Context(), img)
		_ = s.Media.Remove(r.Context(), video)
		WriteServiceError(w, r, err)
		return
	}
	if img != nil {
		_ = s.Media.Remove(r.Context(), current.Img)
	}
	if video != nil {
		_ = s.Media.Remove(r.Context(), current.Video)
	}
	WriteOK(w, http.StatusOK, "Gallery updated successfully", gallery)
}

func (s *Server) UpdateGalleryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gallery, err := s.Galleries.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Gallery status updated successfully", gallery)
}

func (s *Server) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Galleries.SoftDelete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Gallery deleted successfully", nil)
}

func (s *Server) RestoreGallery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	gallery, err := s.Galleries.Restore(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Gallery restored successfully", gallery)
}
