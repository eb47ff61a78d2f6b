package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const teacherColumns = `t.id, t.user_id, u.username, t.nip, t.name, t.photo, t.subject_id, s.subject_name,
t.class_name, t.email, t.phone, t.bio, t.join_date, t.is_active, t.created_at, t.updated_at, t.deleted_at`

// TeacherFields carries teacher columns. On update a nil field keeps the
// stored value.
type TeacherFields struct {
	UserID    *int64
	NIP       *string
	Name      *string
	Photo     *string
	SubjectID *int64
	ClassName *string
	Email     *string
	Phone     *string
	Bio       *string
	JoinDate  *time.Time
	IsActive  *bool
}

type Teachers struct {
	DB       *sqlx.DB
	Subjects *Subjects
	records  Collection[models.Teacher]
}

func NewTeachers(db *sqlx.DB) *Teachers {
	return &Teachers{
		DB:       db,
		Subjects: NewSubjects(db),
		records: Collection[models.Teacher]{
			DB:           db,
			Table:        "teachers",
			Alias:        "t",
			Noun:         "Teacher",
			Columns:      teacherColumns,
			Joins:        "LEFT JOIN subjects s ON s.id = t.subject_id LEFT JOIN users u ON u.id = t.user_id",
			AliveOrder:   "t.created_at DESC",
			DeletedOrder: "t.deleted_at DESC",
		},
	}
}

func (s *Teachers) List(ctx context.Context, page Page, search string) ([]models.Teacher, int, error) {
	filter := Filter{}
	if search = strings.TrimSpace(search); search != "" {
		pattern := containsPattern(search)
		filter = Where(`lower(t.name) LIKE ? ESCAPE '\' OR lower(COALESCE(t.nip, '')) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	return s.records.List(ctx, Alive, page, filter)
}

func (s *Teachers) ListDeleted(ctx context.Context, page Page) ([]models.Teacher, int, error) {
	return s.records.List(ctx, Deleted, page, Filter{})
}

func (s *Teachers) Get(ctx context.Context, id int64) (models.Teacher, error) {
	return s.records.Get(ctx, Alive, id)
}

func (s *Teachers) checkSubject(ctx context.Context, subjectID *int64) error {
	if subjectID == nil {
		return nil
	}
	ok, err := s.Subjects.Exists(ctx, *subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrValidation("Subject not found")
	}
	return nil
}

func (s *Teachers) Create(ctx context.Context, in TeacherFields) (models.Teacher, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return models.Teacher{}, ErrValidation("Name is required")
	}
	if err := s.checkSubject(ctx, in.SubjectID); err != nil {
		return models.Teacher{}, err
	}
	now := time.Now().UTC()
	joinDate := in.JoinDate
	if joinDate == nil {
		today := now.Truncate(24 * time.Hour)
		joinDate = &today
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO teachers (user_id, nip, name, photo, subject_id, class_name, email, phone, bio, join_date, is_active, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
RETURNING id
`, in.UserID, in.NIP, strings.TrimSpace(*in.Name), in.Photo, in.SubjectID, in.ClassName, normalizeEmail(in.Email),
		in.Phone, in.Bio, *joinDate, active, now, now)
	if err != nil {
		return models.Teacher{}, err
	}
	return s.Get(ctx, id)
}

func (s *Teachers) Update(ctx context.Context, id int64, in TeacherFields) (models.Teacher, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Teacher{}, err
	}
	if err := s.checkSubject(ctx, in.SubjectID); err != nil {
		return models.Teacher{}, err
	}
	name := current.Name
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return models.Teacher{}, ErrValidation("Name is required")
		}
		name = strings.TrimSpace(*in.Name)
	}
	email := current.Email
	if in.Email != nil {
		email = normalizeEmail(in.Email)
	}
	active := current.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE teachers
SET nip = ?, name = ?, photo = ?, subject_id = ?, class_name = ?, email = ?, phone = ?, bio = ?,
    join_date = ?, is_active = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
`, pick(in.NIP, current.NIP), name, pick(in.Photo, current.Photo), pick(in.SubjectID, current.SubjectID),
		pick(in.ClassName, current.ClassName), email, pick(in.Phone, current.Phone), pick(in.Bio, current.Bio),
		pick(in.JoinDate, current.JoinDate), active, time.Now().UTC(), id)
	if err != nil {
		return models.Teacher{}, err
	}
	if n == 0 {
		return models.Teacher{}, ErrNotFound("Teacher not found")
	}
	return s.Get(ctx, id)
}

func (s *Teachers) SoftDelete(ctx context.Context, id int64) error {
	return s.records.SoftDelete(ctx, id)
}

func (s *Teachers) Restore(ctx context.Context, id int64) (models.Teacher, error) {
	return s.records.Restore(ctx, id)
}

// pick returns next when it is set and current otherwise.
func pick[T any](next, current *T) *T {
	if next != nil {
		return next
	}
	return current
}
