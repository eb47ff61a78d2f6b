package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const galleryColumns = `g.id, g.title, g.slug, g.descr, g.img, g.video, g.status, g.created_at, g.updated_at, g.deleted_at`

// GalleryFields carries gallery columns. On update a nil field keeps the
// stored value.
type GalleryFields struct {
	Title  *string
	Slug   *string
	Descr  *string
	Img    *string
	Video  *string
	Status *string
}

type Galleries struct {
	DB      *sqlx.DB
	records Collection[models.Gallery]
}

func NewGalleries(db *sqlx.DB) *Galleries {
	return &Galleries{
		DB: db,
		records: Collection[models.Gallery]{
			DB:           db,
			Table:        "galleries",
			Alias:        "g",
			Noun:         "Gallery",
			Columns:      galleryColumns,
			AliveOrder:   "g.created_at DESC",
			DeletedOrder: "g.deleted_at DESC",
		},
	}
}

func publishedFilter(alias string, publishedOnly bool) Filter {
	if !publishedOnly {
		return Filter{}
	}
	return Where(alias+".status = ?", models.StatusPublished)
}

func (s *Galleries) List(ctx context.Context, page Page, publishedOnly bool) ([]models.Gallery, int, error) {
	return s.records.List(ctx, Alive, page, publishedFilter("g", publishedOnly))
}

func (s *Galleries) ListDeleted(ctx context.Context, page Page) ([]models.Gallery, int, error) {
	return s.records.List(ctx, Deleted, page, Filter{})
}

func (s *Galleries) Get(ctx context.Context, id int64) (models.Gallery, error) {
	return s.records.Get(ctx, Alive, id)
}

func (s *Galleries) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (models.Gallery, error) {
	f := publishedFilter("g", publishedOnly)
	f.Where = joinWhere("g.slug = ?", f.Where)
	f.Args = append([]interface{}{slug}, f.Args...)
	return s.records.FindOne(ctx, Alive, f)
}

func (s *Galleries) slugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return s.records.Exists(ctx, Alive, Where("g.slug = ? AND g.id <> ?", slug, exceptID))
}

// resolveSlug uses an explicit slug as given, rejecting it when taken, and
// otherwise derives a free one from the title.
func (s *Galleries) resolveSlug(ctx context.Context, explicit *string, title string, exceptID int64) (string, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		slug := Slugify(*explicit)
		taken, err := s.slugTaken(ctx, slug, exceptID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrConflict("Slug already exists")
		}
		return slug, nil
	}
	return uniqueSlug(ctx, Slugify(title), exceptID, s.slugTaken)
}

func (s *Galleries) Create(ctx context.Context, in GalleryFields) (models.Gallery, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return models.Gallery{}, ErrValidation("Title is required")
	}
	title := strings.TrimSpace(*in.Title)
	status := models.StatusDraft
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	if !ValidStatus(status) {
		return models.Gallery{}, ErrValidation("Invalid status")
	}
	slug, err := s.resolveSlug(ctx, in.Slug, title, 0)
	if err != nil {
		return models.Gallery{}, err
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO galleries (title, slug, descr, img, video, status, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?)
RETURNING id
`, title, slug, in.Descr, in.Img, in.Video, status, now, now)
	if err != nil {
		return models.Gallery{}, conflictOr(err, "Slug already exists")
	}
	return s.Get(ctx, id)
}

func (s *Galleries) Update(ctx context.Context, id int64, in GalleryFields) (models.Gallery, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Gallery{}, err
	}
	title := current.Title
	if in.Title != nil {
		if title = strings.TrimSpace(*in.Title); title == "" {
			return models.Gallery{}, ErrValidation("Title is required")
		}
	}
	slug := current.Slug
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" && Slugify(*in.Slug) != current.Slug {
		if slug, err = s.resolveSlug(ctx, in.Slug, title, id); err != nil {
			return models.Gallery{}, err
		}
	}
	status := current.Status
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return models.Gallery{}, ErrValidation("Invalid status")
		}
		status = *in.Status
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE galleries SET title = ?, slug = ?, descr = ?, img = ?, video = ?, status = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
`, title, slug, pick(in.Descr, current.Descr), pick(in.Img, current.Img), pick(in.Video, current.Video),
		status, time.Now().UTC(), id)
	if err != nil {
		return models.Gallery{}, conflictOr(err, "Slug already exists")
	}
	if n == 0 {
		return models.Gallery{}, ErrNotFound("Gallery not found")
	}
	return s.Get(ctx, id)
}

func (s *Galleries) SetStatus(ctx context.Context, id int64, status string) (models.Gallery, error) {
	return s.Update(ctx, id, GalleryFields{Status: &status})
}

func (s *Galleries) SoftDelete(ctx context.Context, id int64) error {
	return s.records.SoftDelete(ctx, id)
}

func (s *Galleries) Restore(ctx context.Context, id int64) (models.Gallery, error) {
	return s.records.Restore(ctx, id)
}
