package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const subjectColumns = `s.id, s.subject_name, s.created_at, s.updated_at`

type Subjects struct {
	DB *sqlx.DB
}

func NewSubjects(db *sqlx.DB) *Subjects {
	return &Subjects{DB: db}
}

func (s *Subjects) List(ctx context.Context) ([]models.Subject, error) {
	items := []models.Subject{}
	err := s.DB.SelectContext(ctx, &items, `SELECT `+subjectColumns+` FROM subjects s ORDER BY s.subject_name, s.id`)
	return items, err
}

func (s *Subjects) Get(ctx context.Context, id int64) (models.Subject, error) {
	var item models.Subject
	err := s.DB.GetContext(ctx, &item, s.DB.Rebind(`SELECT `+subjectColumns+` FROM subjects s WHERE s.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return item, ErrNotFound("Subject not found")
	}
	return item, err
}

func (s *Subjects) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM subjects WHERE id = ?)`), id)
	return exists, err
}

func (s *Subjects) nameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM subjects WHERE subject_name = ? AND id <> ?)`), name, exceptID)
	return exists, err
}

func (s *Subjects) Create(ctx context.Context, name string) (models.Subject, error) {
	name = strings.TrimSpace(name)
	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return models.Subject{}, err
	}
	if taken {
		return models.Subject{}, ErrConflict("Subject already exists")
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO subjects (subject_name, created_at, updated_at) VALUES (?,?,?) RETURNING id
`, name, now, now)
	if err != nil {
		return models.Subject{}, conflictOr(err, "Subject already exists")
	}
	return s.Get(ctx, id)
}

func (s *Subjects) Update(ctx context.Context, id int64, name string) (models.Subject, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Subject{}, err
	}
	name = strings.TrimSpace(name)
	taken, err := s.nameTaken(ctx, name, id)
	if err != nil {
		return models.Subject{}, err
	}
	if taken {
		return models.Subject{}, ErrConflict("Subject already exists")
	}
	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`UPDATE subjects SET subject_name = ?, updated_at = ? WHERE id = ?`),
		name, time.Now().UTC(), id)
	if err != nil {
		return models.Subject{}, conflictOr(err, "Subject already exists")
	}
	return s.Get(ctx, id)
}

func (s *Subjects) Delete(ctx context.Context, id int64) error {
	n, err := execAffected(ctx, s.DB, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("Subject not found")
	}
	return nil
}
