package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const postColumns = `p.id, p.author_id, a.full_name AS author_name, p.title, p.slug, p.content, p.status,
p.created_at, p.updated_at, p.deleted_at`

func ValidStatus(status string) bool {
	switch status {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return true
	}
	return false
}

type PostInput struct {
	AuthorID *int64
	Title    string
	Content  string
	Status   string
}

type PostUpdate struct {
	Title   *string
	Content *string
	Status  *string
}

// PostQuery selects which alive posts a listing may return. PublishedOnly
// wins over Status.
type PostQuery struct {
	PublishedOnly bool
	Status        string
	Search        string
}

type Posts struct {
	DB      *sqlx.DB
	records Collection[models.Post]
}

func NewPosts(db *sqlx.DB) *Posts {
	return &Posts{
		DB: db,
		records: Collection[models.Post]{
			DB:           db,
			Table:        "posts",
			Alias:        "p",
			Noun:         "Post",
			Columns:      postColumns,
			Joins:        "LEFT JOIN users a ON a.id = p.author_id",
			AliveOrder:   "p.created_at DESC",
			DeletedOrder: "p.deleted_at DESC",
		},
	}
}

func (q PostQuery) filter() Filter {
	clauses := []string{}
	args := []interface{}{}
	switch {
	case q.PublishedOnly:
		clauses = append(clauses, "p.status = ?")
		args = append(args, models.StatusPublished)
	case q.Status != "":
		clauses = append(clauses, "p.status = ?")
		args = append(args, q.Status)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := containsPattern(search)
		clauses = append(clauses, `(lower(p.title) LIKE ? ESCAPE '\' OR lower(p.content) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	return Filter{Where: strings.Join(clauses, " AND "), Args: args}
}

func (s *Posts) List(ctx context.Context, page Page, q PostQuery) ([]models.Post, int, error) {
	return s.records.List(ctx, Alive, page, q.filter())
}

func (s *Posts) ListDeleted(ctx context.Context, page Page) ([]models.Post, int, error) {
	return s.records.List(ctx, Deleted, page, Filter{})
}

func (s *Posts) Get(ctx context.Context, id int64, publishedOnly bool) (models.Post, error) {
	f := PostQuery{PublishedOnly: publishedOnly}.filter()
	f.Where = joinWhere("p.id = ?", f.Where)
	f.Args = append([]interface{}{id}, f.Args...)
	return s.records.FindOne(ctx, Alive, f)
}

func (s *Posts) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (models.Post, error) {
	f := PostQuery{PublishedOnly: publishedOnly}.filter()
	f.Where = joinWhere("p.slug = ?", f.Where)
	f.Args = append([]interface{}{slug}, f.Args...)
	return s.records.FindOne(ctx, Alive, f)
}

func (s *Posts) slugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return s.records.Exists(ctx, Alive, Where("p.slug = ? AND p.id <> ?", slug, exceptID))
}

func (s *Posts) Create(ctx context.Context, in PostInput) (models.Post, error) {
	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !ValidStatus(status) {
		return models.Post{}, ErrValidation("Invalid status")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Post{}, ErrValidation("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return models.Post{}, ErrValidation("Content is required")
	}
	slug, err := uniqueSlug(ctx, Slugify(title), 0, s.slugTaken)
	if err != nil {
		return models.Post{}, err
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO posts (author_id, title, slug, content, status, created_at, updated_at)
VALUES (?,?,?,?,?,?,?)
RETURNING id
`, in.AuthorID, title, slug, in.Content, status, now, now)
	if err != nil {
		return models.Post{}, conflictOr(err, "Slug already exists")
	}
	return s.Get(ctx, id, false)
}

// Update applies the set fields. A changed title regenerates the slug.
func (s *Posts) Update(ctx context.Context, id int64, in PostUpdate) (models.Post, error) {
	current, err := s.Get(ctx, id, false)
	if err != nil {
		return models.Post{}, err
	}
	title, slug := current.Title, current.Slug
	if in.Title != nil && strings.TrimSpace(*in.Title) != current.Title {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return models.Post{}, ErrValidation("Title is required")
		}
		if slug, err = uniqueSlug(ctx, Slugify(title), id, s.slugTaken); err != nil {
			return models.Post{}, err
		}
	}
	content := current.Content
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return models.Post{}, ErrValidation("Content is required")
		}
		content = *in.Content
	}
	status := current.Status
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return models.Post{}, ErrValidation("Invalid status")
		}
		status = *in.Status
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE posts SET title = ?, slug = ?, content = ?, status = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
`, title, slug, content, status, time.Now().UTC(), id)
	if err != nil {
		return models.Post{}, conflictOr(err, "Slug already exists")
	}
	if n == 0 {
		return models.Post{}, ErrNotFound("Post not found")
	}
	return s.Get(ctx, id, false)
}

func (s *Posts) SetStatus(ctx context.Context, id int64, status string) (models.Post, error) {
	return s.Update(ctx, id, PostUpdate{Status: &status})
}

func (s *Posts) SoftDelete(ctx context.Context, id int64) error {
	return s.records.SoftDelete(ctx, id)
}

func (s *Posts) Restore(ctx context.Context, id int64) (models.Post, error) {
	return s.records.Restore(ctx, id)
}

func joinWhere(first, rest string) string {
	if rest == "" {
		return first
	}
	return first + " AND " + rest
}
