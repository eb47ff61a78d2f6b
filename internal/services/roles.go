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

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"

	// DefaultRole is assigned to accounts created without an explicit role.
	DefaultRole = RoleEditor
)

// AdminRoles may manage every resource.
var AdminRoles = []string{RoleAdmin, RoleSuperAdmin}

var defaultRoles = []struct {
	name, descrip string
}{
	{RoleAdmin, "Administrator"},
	{RoleSuperAdmin, "Super administrator"},
	{RoleEditor, "Content editor"},
	{RoleViewer, "Read-only access"},
}

func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

const roleColumns = `r.id, r.display_name, r.descrip, r.created_at, r.updated_at`

type RoleInput struct {
	DisplayName string
	Descrip     *string
}

type Roles struct {
	DB *sqlx.DB
}

func NewRoles(db *sqlx.DB) *Roles {
	return &Roles{DB: db}
}

// EnsureDefaults creates the built-in roles that are missing, matched by
// display name.
func (s *Roles) EnsureDefaults(ctx context.Context) error {
	for _, role := range defaultRoles {
		if err := s.ensure(ctx, role.name, role.descrip); err != nil {
			return err
		}
	}
	return nil
}

func (s *Roles) ensure(ctx context.Context, name, descrip string) error {
	var exists bool
	if err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM roles WHERE display_name = ?)`), name); err != nil {
		return err
	}
	if exists {
		return nil
	}
	now := time.Now().UTC()
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
INSERT INTO roles (display_name, descrip, created_at, updated_at)
VALUES (?,?,?,?)
`), name, descrip, now, now)
	if IsUniqueViolation(err) {
		return nil
	}
	return err
}

func (s *Roles) List(ctx context.Context) ([]models.Role, error) {
	roles := []models.Role{}
	err := s.DB.SelectContext(ctx, &roles, `SELECT `+roleColumns+` FROM roles r ORDER BY r.id`)
	return roles, err
}

func (s *Roles) Get(ctx context.Context, id int64) (models.Role, error) {
	var role models.Role
	err := s.DB.GetContext(ctx, &role, s.DB.Rebind(`SELECT `+roleColumns+` FROM roles r WHERE r.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return role, ErrNotFound("Role not found")
	}
	return role, err
}

// IDByName returns the id of the role with the given display name, or nil
// when no such role exists.
func (s *Roles) IDByName(ctx context.Context, name string) (*int64, error) {
	var id int64
	err := s.DB.GetContext(ctx, &id, s.DB.Rebind(`SELECT id FROM roles WHERE display_name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Roles) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM roles WHERE id = ?)`), id)
	return exists, err
}

func (s *Roles) nameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM roles WHERE display_name = ? AND id <> ?)`), name, exceptID)
	return exists, err
}

func (s *Roles) Create(ctx context.Context, in RoleInput) (models.Role, error) {
	name := strings.TrimSpace(in.DisplayName)
	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return models.Role{}, err
	}
	if taken {
		return models.Role{}, ErrConflict("Role already exists")
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO roles (display_name, descrip, created_at, updated_at)
VALUES (?,?,?,?)
RETURNING id
`, name, in.Descrip, now, now)
	if err != nil {
		return models.Role{}, conflictOr(err, "Role already exists")
	}
	return s.Get(ctx, id)
}

func (s *Roles) Update(ctx context.Context, id int64, in RoleInput) (models.Role, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Role{}, err
	}
	name := strings.TrimSpace(in.DisplayName)
	taken, err := s.nameTaken(ctx, name, id)
	if err != nil {
		return models.Role{}, err
	}
	if taken {
		return models.Role{}, ErrConflict("Role already exists")
	}
	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
UPDATE roles SET display_name = ?, descrip = ?, updated_at = ? WHERE id = ?
`), name, in.Descrip, time.Now().UTC(), id)
	if err != nil {
		return models.Role{}, conflictOr(err, "Role already exists")
	}
	return s.Get(ctx, id)
}

func (s *Roles) Delete(ctx context.Context, id int64) error {
	n, err := execAffected(ctx, s.DB, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("Role not found")
	}
	return nil
}
