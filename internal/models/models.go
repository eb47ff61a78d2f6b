package models

import "time"

type Account struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        *string    `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Phone        *string    `db:"phone" json:"phone"`
	RoleID       *int64     `db:"role_id" json:"role_id"`
	Role         *string    `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// RoleName returns the display name of the account's role, or "" when the
// account has none.
func (a Account) RoleName() string {
	if a.Role == nil {
		return ""
	}
	return *a.Role
}

type Role struct {
	ID          int64     `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Descrip     *string   `db:"descrip" json:"descrip"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Subject struct {
	ID          int64     `db:"id" json:"id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Teacher struct {
	ID          int64      `db:"id" json:"id"`
	UserID      *int64     `db:"user_id" json:"user_id"`
	Username    *string    `db:"username" json:"username"`
	NIP         *string    `db:"nip" json:"nip"`
	Name        string     `db:"name" json:"name"`
	Photo       *string    `db:"photo" json:"photo"`
	SubjectID   *int64     `db:"subject_id" json:"subject_id"`
	SubjectName *string    `db:"subject_name" json:"subject_name"`
	ClassName   *string    `db:"class_name" json:"class_name"`
	Email       *string    `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone"`
	Bio         *string    `db:"bio" json:"bio"`
	JoinDate    *time.Time `db:"join_date" json:"join_date"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

type Student struct {
	ID        int64      `db:"id" json:"id"`
	NISN      *string    `db:"nisn" json:"nisn"`
	Name      string     `db:"name" json:"name"`
	ClassName string     `db:"class_name" json:"class"`
	Gender    string     `db:"gender" json:"gender"`
	ScoreUTS  *float64   `db:"score_uts" json:"score_uts"`
	ScoreUAS  *float64   `db:"score_uas" json:"score_uas"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// ClassStats aggregates the alive students of one class.
type ClassStats struct {
	ClassName     string   `db:"class_name" json:"class"`
	TotalStudents int      `db:"total_students" json:"total_students"`
	AvgUTS        *float64 `db:"avg_uts" json:"avg_uts"`
	AvgUAS        *float64 `db:"avg_uas" json:"avg_uas"`
	MaleCount     int      `db:"male_count" json:"male_count"`
	FemaleCount   int      `db:"female_count" json:"female_count"`
}

type Post struct {
	ID         int64      `db:"id" json:"id"`
	AuthorID   *int64     `db:"author_id" json:"author_id"`
	AuthorName *string    `db:"author_name" json:"author_name"`
	Title      string     `db:"title" json:"title"`
	Slug       string     `db:"slug" json:"slug"`
	Content    string     `db:"content" json:"content"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

type Gallery struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Slug      string     `db:"slug" json:"slug"`
	Descr     *string    `db:"descr" json:"descr"`
	Img       *string    `db:"img" json:"img"`
	Video     *string    `db:"video" json:"video"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

type Profile struct {
	ID             int64     `db:"id" json:"id"`
	SchoolName     string    `db:"school_name" json:"school_name"`
	NPSN           *string   `db:"npsn" json:"npsn"`
	Address        *string   `db:"address" json:"address"`
	Phone          *string   `db:"phone" json:"phone"`
	Email          *string   `db:"email" json:"email"`
	Website        *string   `db:"website" json:"website"`
	Logo           *string   `db:"logo" json:"logo"`
	Accreditation  *string   `db:"accreditation" json:"accreditation"`
	PrincipalName  *string   `db:"principal_name" json:"principal_name"`
	PrincipalPhoto *string   `db:"principal_photo" json:"principal_photo"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Publication states shared by posts and galleries.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)
