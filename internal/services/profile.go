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

const profileColumns = `id, school_name, npsn, address, phone, email, website, logo, accreditation,
principal_name, principal_photo, created_at, updated_at`

type ProfileFields struct {
	SchoolName     *string
	NPSN           *string
	Address        *string
	Phone          *string
	Email          *string
	Website        *string
	Logo           *string
	Accreditation  *string
	PrincipalName  *string
	PrincipalPhoto *string
}

// Profiles stores the single school profile row.
type Profiles struct {
	DB *sqlx.DB
}

func NewProfiles(db *sqlx.DB) *Profiles {
	return &Profiles{DB: db}
}

func (s *Profiles) Get(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	err := s.DB.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM profiles ORDER BY id LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, ErrNotFound("Profile not found")
	}
	return profile, err
}

// Save creates the profile on first use and updates the set fields after
// that. It reports whether the row was created.
func (s *Profiles) Save(ctx context.Context, in ProfileFields) (models.Profile, bool, error) {
	current, err := s.Get(ctx)
	now := time.Now().UTC()
	if IsStatus(err, 404) {
		if in.SchoolName == nil || strings.TrimSpace(*in.SchoolName) == "" {
			return models.Profile{}, false, ErrValidation("School name is required")
		}
		_, err := insertReturningID(ctx, s.DB, `
INSERT INTO profiles (school_name, npsn, address, phone, email, website, logo, accreditation,
                      principal_name, principal_photo, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
RETURNING id
`, strings.TrimSpace(*in.SchoolName), in.NPSN, in.Address, in.Phone, normalizeEmail(in.Email), in.Website, in.Logo,
			in.Accreditation, in.PrincipalName, in.PrincipalPhoto, now, now)
		if err != nil {
			return models.Profile{}, false, err
		}
		created, err := s.Get(ctx)
		return created, true, err
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	name := current.SchoolName
	if in.SchoolName != nil && strings.TrimSpace(*in.SchoolName) != "" {
		name = strings.TrimSpace(*in.SchoolName)
	}
	email := current.Email
	if in.Email != nil {
		email = normalizeEmail(in.Email)
	}
	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
UPDATE profiles
SET school_name = ?, npsn = ?, address = ?, phone = ?, email = ?, website = ?, logo = ?, accreditation = ?,
    principal_name = ?, principal_photo = ?, updated_at = ?
WHERE id = ?
`), name, pick(in.NPSN, current.NPSN), pick(in.Address, current.Address), pick(in.Phone, current.Phone), email,
		pick(in.Website, current.Website), pick(in.Logo, current.Logo), pick(in.Accreditation, current.Accreditation),
		pick(in.PrincipalName, current.PrincipalName), pick(in.PrincipalPhoto, current.PrincipalPhoto), now, current.ID)
	if err != nil {
		return models.Profile{}, false, err
	}
	updated, err := s.Get(ctx)
	return updated, false, err
}
