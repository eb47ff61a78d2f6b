package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/models"
)

const accountColumns = `u.id, u.username, u.email, u.password_hash, u.full_name, u.phone, u.role_id,
r.display_name AS role, u.is_active, u.last_login, u.created_at, u.updated_at, u.deleted_at`

type AccountInput struct {
	Username string
	Email    *string
	Password string
	FullName string
	Phone    *string
	RoleID   *int64
	IsActive *bool
}

// AccountUpdate leaves a column untouched when its field is nil. The
// username is immutable.
type AccountUpdate struct {
	Email    *string
	FullName *string
	Phone    *string
	RoleID   *int64
	IsActive *bool
}

type Accounts struct {
	DB      *sqlx.DB
	Roles   *Roles
	records Collection[models.Account]
}

func NewAccounts(db *sqlx.DB) *Accounts {
	return &Accounts{
		DB:    db,
		Roles: NewRoles(db),
		records: Collection[models.Account]{
			DB:           db,
			Table:        "users",
			Alias:        "u",
			Noun:         "User",
			Columns:      accountColumns,
			Joins:        "LEFT JOIN roles r ON r.id = u.role_id",
			AliveOrder:   "u.created_at DESC",
			DeletedOrder: "u.deleted_at DESC",
		},
	}
}

func (s *Accounts) Get(ctx context.Context, id int64) (models.Account, error) {
	return s.records.Get(ctx, Alive, id)
}

func (s *Accounts) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return s.records.FindOne(ctx, Alive, Where("u.username = ?", username))
}

// List pages through alive accounts. A non-empty search matches username,
// email and full name case-insensitively.
func (s *Accounts) List(ctx context.Context, page Page, search string) ([]models.Account, int, error) {
	filter := Filter{}
	if search = strings.TrimSpace(search); search != "" {
		pattern := containsPattern(search)
		filter = Where(`lower(u.username) LIKE ? ESCAPE '\' OR lower(COALESCE(u.email, '')) LIKE ? ESCAPE '\' OR lower(u.full_name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern)
	}
	return s.records.List(ctx, Alive, page, filter)
}

func (s *Accounts) ListDeleted(ctx context.Context, page Page) ([]models.Account, int, error) {
	return s.records.List(ctx, Deleted, page, Filter{})
}

func (s *Accounts) usernameTaken(ctx context.Context, username string) (bool, error) {
	return s.records.Exists(ctx, Alive, Where("u.username = ?", username))
}

func (s *Accounts) emailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	return s.records.Exists(ctx, Alive, Where("u.email = ? AND u.id <> ?", email, exceptID))
}

func (s *Accounts) checkRole(ctx context.Context, roleID *int64) error {
	if roleID == nil {
		return nil
	}
	ok, err := s.Roles.Exists(ctx, *roleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrValidation("Role not found")
	}
	return nil
}

func (s *Accounts) Create(ctx context.Context, in AccountInput) (models.Account, error) {
	username := strings.TrimSpace(in.Username)
	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return models.Account{}, err
	}
	if taken {
		return models.Account{}, ErrConflict("Username already exists")
	}
	email := normalizeEmail(in.Email)
	if email != nil {
		taken, err := s.emailTaken(ctx, *email, 0)
		if err != nil {
			return models.Account{}, err
		}
		if taken {
			return models.Account{}, ErrConflict("Email already exists")
		}
	}
	roleID := in.RoleID
	if roleID == nil {
		if roleID, err = s.Roles.IDByName(ctx, DefaultRole); err != nil {
			return models.Account{}, err
		}
	} else if err := s.checkRole(ctx, roleID); err != nil {
		return models.Account{}, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.Account{}, err
	}
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.DB, `
INSERT INTO users (username, email, password_hash, full_name, phone, role_id, is_active, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?)
RETURNING id
`, username, email, hash, strings.TrimSpace(in.FullName), in.Phone, roleID, active, now, now)
	if err != nil {
		return models.Account{}, conflictOr(err, "Username or email already exists")
	}
	return s.Get(ctx, id)
}

func (s *Accounts) Update(ctx context.Context, id int64, in AccountUpdate) (models.Account, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	email := current.Email
	if in.Email != nil {
		email = normalizeEmail(in.Email)
		if email != nil {
			taken, err := s.emailTaken(ctx, *email, id)
			if err != nil {
				return models.Account{}, err
			}
			if taken {
				return models.Account{}, ErrConflict("Email already exists")
			}
		}
	}
	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return models.Account{}, err
	}
	fullName := current.FullName
	if in.FullName != nil {
		fullName = strings.TrimSpace(*in.FullName)
	}
	phone := current.Phone
	if in.Phone != nil {
		phone = in.Phone
	}
	roleID := current.RoleID
	if in.RoleID != nil {
		roleID = in.RoleID
	}
	active := current.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE users
SET email = ?, full_name = ?, phone = ?, role_id = ?, is_active = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
`, email, fullName, phone, roleID, active, time.Now().UTC(), id)
	if err != nil {
		return models.Account{}, conflictOr(err, "Email already exists")
	}
	if n == 0 {
		return models.Account{}, ErrNotFound("User not found")
	}
	return s.Get(ctx, id)
}

func (s *Accounts) SetPassword(ctx context.Context, id int64, raw string) error {
	hash, err := HashPassword(raw)
	if err != nil {
		return err
	}
	n, err := execAffected(ctx, s.DB, `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL
`, hash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("User not found")
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Accounts) ChangePassword(ctx context.Context, id int64, current, next string) error {
	account, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, account.PasswordHash) {
		return ErrBadRequest("Current password is incorrect")
	}
	return s.SetPassword(ctx, id, next)
}

func (s *Accounts) SetLastLogin(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`), time.Now().UTC(), id)
	return err
}

// Authenticate checks credentials against alive accounts. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Accounts) Authenticate(ctx context.Context, username, password string) (models.Account, error) {
	account, err := s.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if IsStatus(err, 404) {
			return models.Account{}, ErrUnauthorized("Invalid username or password")
		}
		return models.Account{}, err
	}
	if !VerifyPassword(password, account.PasswordHash) {
		return models.Account{}, ErrUnauthorized("Invalid username or password")
	}
	if !account.IsActive {
		return models.Account{}, ErrForbidden("User account is inactive")
	}
	return account, nil
}

func (s *Accounts) SoftDelete(ctx context.Context, id int64) error {
	return s.records.SoftDelete(ctx, id)
}

func (s *Accounts) Restore(ctx context.Context, id int64) (models.Account, error) {
	return s.records.Restore(ctx, id)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
