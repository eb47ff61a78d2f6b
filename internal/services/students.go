package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const studentColumns = `st.id, st.nisn, st.name, st.class_name, st.gender, st.score_uts, st.score_uas,
st.created_at, st.updated_at, st.deleted_at`

const (
	GenderMale   = "L"
	GenderFemale = "P"
)

type StudentInput struct {
	NISN      *string
	Name      string
	ClassName string
	Gender    string
	ScoreUTS  *float64
	ScoreUAS  *float64
}

type Students struct {
	DB      *sqlx.DB
	records Collection[models.Student]
}

func NewStudents(db *sqlx.DB) *Students {
	return &Students{
		DB: db,
		records: Collection[models.Student]{
			DB:           db,
			Table:        "students",
			Alias:        "st",
			Noun:         "Student",
			Columns:      studentColumns,
			AliveOrder:   "st.class_name ASC, st.name ASC",
			DeletedOrder: "st.deleted_at DESC",
		},
	}
}

// List pages through alive students ordered by class then name. A non-empty
// className restricts the page to that class.
func (s *Students) List(ctx context.Context, page Page, className string) ([]models.Student, int, error) {
	filter := Filter{}
	if className = strings.TrimSpace(className); className != "" {
		filter = Where("st.class_name = ?", className)
	}
	return s.records.List(ctx, Alive, page, filter)
}

func (s *Students) ListDeleted(ctx context.Context, page Page) ([]models.Student, int, error) {
	return s.records.List(ctx, Deleted, page, Filter{})
}

func (s *Students) ByClass(ctx context.Context, className string) ([]models.Student, error) {
	filter := Where("st.class_name = ?", strings.TrimSpace(className))
	filter.OrderBy = "st.name ASC"
	return s.records.All(ctx, Alive, filter)
}

func (s *Students) Get(ctx context.Context, id int64) (models.Student, error) {
	return s.records.Get(ctx, Alive, id)
}

// Stats aggregates alive students per class.
func (s *Students) Stats(ctx context.Context) ([]models.ClassStats, error) {
	stats := []models.ClassStats{}
	err := s.DB.SelectContext(ctx, &stats, `
SELECT st.class_name,
       count(*) AS total_students,
       ROUND(AVG(st.score_uts), 2) AS avg_uts,
       ROUND(AVG(st.score_uas), 2) AS avg_uas,
       SUM(CASE WHEN st.gender = 'L' THEN 1 ELSE 0 END) AS male_count,
       SUM(CASE WHEN st.gender = 'P' THEN 1 ELSE 0 END) AS female_count
FROM students st
WHERE st.deleted_at IS NULL
GROUP BY st.class_name
ORDER BY st.class_name
`)
	return stats, err
}

func (s *Students) nisnTaken(ctx context.Context, nisn string, exceptID int64) (bool, error) {
	return s.records.Exists(ctx, Alive, Where("st.nisn = ? AND st.id <> ?", nisn, exceptID))
}

func (s *Students) checkNISN(ctx context.Context, nisn *string, exceptID int64) (*string, error) {
	if nisn == nil || strings.TrimSpace(*nisn) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*nisn)
	taken, err := s.nisnTaken(ctx, value, exceptID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict("NISN already exists")
	}
	return &value, nil
}

func (s *Students) Create(ctx context.Context, in StudentInput) (models.Student, error) {
	nisn, err := s.checkNISN(ctx, in.NISN, 0)
	if err != nil {
		return models.Student{}, err
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO students (nisn, name, class_name, gender, score_uts, score_uas, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?)
RETURNING id
`, nisn, strings.TrimSpace(in.Name), strings.TrimSpace(in.ClassName), in.Gender, in.ScoreUTS, in.ScoreUAS, now, now)
	if err != nil {
		return models.Student{}, conflictOr(err, "NISN already exists")
	}
	return s.Get(ctx, id)
}

func (s *Students) Update(ctx context.Context, id int64, in StudentInput) (models.Student, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Student{}, err
	}
	nisn, err := s.checkNISN(ctx, in.NISN, id)
	if err != nil {
		return models.Student{}, err
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE students
SET nisn = ?, name = ?, class_name = ?, gender = ?, score_uts = ?, score_uas = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
`, nisn, strings.TrimSpace(in.Name), strings.TrimSpace(in.ClassName), in.Gender, in.ScoreUTS, in.ScoreUAS,
		time.Now().UTC(), id)
	if err != nil {
		return models.Student{}, conflictOr(err, "NISN already exists")
	}
	if n == 0 {
		return models.Student{}, ErrNotFound("Student not found")
	}
	return s.Get(ctx, id)
}

func (s *Students) SoftDelete(ctx context.Context, id int64) error {
	return s.records.SoftDelete(ctx, id)
}

func (s *Students) Restore(ctx context.Context, id int64) (models.Student, error) {
	return s.records.Restore(ctx, id)
}
