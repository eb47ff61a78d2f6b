package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schoolsite-backend-go/internal/services"
)

type PostCreateRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type PostUpdateRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Status  *string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	q := r.URL.Query()
	query := services.PostQuery{PublishedOnly: !CurrentIsAdmin(r), Search: q.Get("search")}
	if !query.PublishedOnly && services.ValidStatus(q.Get("status")) {
		query.Status = q.Get("status")
	}
	items, total, err := s.Posts.List(r.Context(), page, query)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Posts retrieved successfully", items, page, total)
}

func (s *Server) ListDeletedPosts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := s.Posts.ListDeleted(r.Context(), page)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WritePage(w, "Deleted posts retrieved successfully", items, page, total)
}

func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	post, err := s.Posts.Get(r.Context(), id, !CurrentIsAdmin(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post retrieved successfully", post)
}

func (s *Server) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := s.Posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"), !CurrentIsAdmin(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post retrieved successfully", post)
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := services.PostInput{Title: req.Title, Content: req.Content, Status: req.Status}
	if identity, ok := IdentityFromContext(r.Context()); ok {
		in.AuthorID = &identity.ID
	}
	post, err := s.Posts.Create(r.Context(), in)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusCreated, "Post created successfully", post)
}

func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req PostUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	post, err := s.Posts.Update(r.Context(), id, services.PostUpdate{Title: req.Title, Content: req.Content, Status: req.Status})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post updated successfully", post)
}

func (s *Server) UpdatePostStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	post, err := s.Posts.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post status updated successfully", post)
}

func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Posts.SoftDelete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post deleted successfully", nil)
}

func (s *Server) RestorePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	post, err := s.Posts.Restore(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteOK(w, http.StatusOK, "Post restored successfully", post)
}
