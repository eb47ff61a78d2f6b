package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// schema mirrors the Postgres migrations closely enough for the stores: same
// columns, same partial unique indexes on the alive set.
const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE roles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  display_name TEXT NOT NULL UNIQUE,
  descrip TEXT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);

CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  email TEXT NULL,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone TEXT NULL,
  role_id INTEGER NULL REFERENCES roles(id) ON DELETE SET NULL,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  last_login TIMESTAMP NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP NULL
);
CREATE UNIQUE INDEX uq_users_username_alive ON users(username) WHERE deleted_at IS NULL;
CREATE UNIQUE INDEX uq_users_email_alive ON users(email) WHERE deleted_at IS NULL AND email IS NOT NULL;

CREATE TABLE subjects (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  subject_name TEXT NOT NULL UNIQUE,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);

CREATE TABLE teachers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  nip TEXT NULL,
  name TEXT NOT NULL,
  photo TEXT NULL,
  subject_id INTEGER NULL REFERENCES subjects(id) ON DELETE SET NULL,
  class_name TEXT NULL,
  email TEXT NULL,
  phone TEXT NULL,
  bio TEXT NULL,
  join_date DATE NULL,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP NULL
);

CREATE TABLE students (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nisn TEXT NULL,
  name TEXT NOT NULL,
  class_name TEXT NOT NULL,
  gender TEXT NOT NULL CHECK (gender IN ('L', 'P')),
  score_uts REAL NULL,
  score_uas REAL NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP NULL
);
CREATE UNIQUE INDEX uq_students_nisn_alive ON students(nisn) WHERE deleted_at IS NULL AND nisn IS NOT NULL;

CREATE TABLE posts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  author_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL,
  content TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP NULL
);
CREATE UNIQUE INDEX uq_posts_slug_alive ON posts(slug) WHERE deleted_at IS NULL;

CREATE TABLE galleries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  slug TEXT NOT NULL,
  descr TEXT NULL,
  img TEXT NULL,
  video TEXT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP NULL
);
CREATE UNIQUE INDEX uq_galleries_slug_alive ON galleries(slug) WHERE deleted_at IS NULL;

CREATE TABLE profiles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  school_name TEXT NOT NULL,
  npsn TEXT NULL,
  address TEXT NULL,
  phone TEXT NULL,
  email TEXT NULL,
  website TEXT NULL,
  logo TEXT NULL,
  accreditation TEXT NULL,
  principal_name TEXT NULL,
  principal_photo TEXT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`

// NewDB returns an in-memory SQLite database with the application schema.
// Statements written with ? placeholders run unchanged through Rebind.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	db := sqlx.NewDb(raw, "sqlite3")
	_, err = db.Exec(schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// InsertRole adds a role row with the given id and display name.
func InsertRole(t testing.TB, db *sqlx.DB, id int64, name string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO roles (id, display_name, created_at, updated_at) VALUES (?,?,?,?)`, id, name, now, now)
	require.NoError(t, err)
}

// SeedRoles inserts admin(1), superadmin(2), editor(3) and viewer(4).
func SeedRoles(t testing.TB, db *sqlx.DB) {
	t.Helper()
	for i, name := range []string{"admin", "superadmin", "editor", "viewer"} {
		InsertRole(t, db, int64(i+1), name)
	}
}

// InsertAccount adds a user row directly and returns its id. passwordHash is
// stored verbatim.
func InsertAccount(t testing.TB, db *sqlx.DB, username, passwordHash string, roleID *int64, active bool) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.QueryRowx(`
INSERT INTO users (username, password_hash, full_name, role_id, is_active, created_at, updated_at)
VALUES (?,?,?,?,?,?,?)
RETURNING id
`, username, passwordHash, username, roleID, active, now, now).Scan(&id)
	require.NoError(t, err)
	return id
}

func Int64(v int64) *int64 {
	return &v
}

func String(v string) *string {
	return &v
}
