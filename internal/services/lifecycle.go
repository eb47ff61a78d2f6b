package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Visibility partitions a soft-deletable table by its deleted_at column.
type Visibility int

const (
	Alive Visibility = iota
	Deleted
)

func (v Visibility) predicate(alias string) string {
	if v == Deleted {
		return alias + ".deleted_at IS NOT NULL"
	}
	return alias + ".deleted_at IS NULL"
}

// Filter narrows a query with an extra predicate written with ? placeholders.
// The predicate may only reference the collection's own alias so the count
// query can run without joins.
type Filter struct {
	Where   string
	Args    []interface{}
	OrderBy string
}

func Where(clause string, args ...interface{}) Filter {
	return Filter{Where: clause, Args: args}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase substring pattern for LIKE ... ESCAPE '\'.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// Collection implements the soft-delete lifecycle for one table. Every read
// is scoped to a Visibility and every mutation is conditional on the row
// currently being in the expected set.
type Collection[T any] struct {
	DB           *sqlx.DB
	Table        string
	Alias        string
	Noun         string
	Columns      string
	Joins        string
	AliveOrder   string
	DeletedOrder string
	Now          func() time.Time
}

func (c Collection[T]) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

func (c Collection[T]) notFound(vis Visibility) error {
	if vis == Deleted {
		return ErrNotFound(c.Noun + " not found in deleted list")
	}
	return ErrNotFound(c.Noun + " not found")
}

func (c Collection[T]) where(vis Visibility, f Filter) string {
	clause := " WHERE " + vis.predicate(c.Alias)
	if strings.TrimSpace(f.Where) != "" {
		clause += " AND (" + f.Where + ")"
	}
	return clause
}

func (c Collection[T]) order(vis Visibility, f Filter) string {
	order := f.OrderBy
	if order == "" {
		order = c.AliveOrder
		if vis == Deleted {
			order = c.DeletedOrder
		}
	}
	return " ORDER BY " + order + ", " + c.Alias + ".id DESC"
}

func (c Collection[T]) selectFrom() string {
	query := "SELECT " + c.Columns + " FROM " + c.Table + " " + c.Alias
	if c.Joins != "" {
		query += " " + c.Joins
	}
	return query
}

func (c Collection[T]) Get(ctx context.Context, vis Visibility, id int64) (T, error) {
	return c.FindOne(ctx, vis, Where(c.Alias+".id = ?", id))
}

func (c Collection[T]) FindOne(ctx context.Context, vis Visibility, f Filter) (T, error) {
	var item T
	query := c.selectFrom() + c.where(vis, f) + c.order(vis, f) + " LIMIT 1"
	if err := c.DB.GetContext(ctx, &item, c.DB.Rebind(query), f.Args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, c.notFound(vis)
		}
		return item, err
	}
	return item, nil
}

func (c Collection[T]) Exists(ctx context.Context, vis Visibility, f Filter) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM " + c.Table + " " + c.Alias + c.where(vis, f) + ")"
	err := c.DB.GetContext(ctx, &exists, c.DB.Rebind(query), f.Args...)
	return exists, err
}

func (c Collection[T]) Count(ctx context.Context, vis Visibility, f Filter) (int, error) {
	var total int
	query := "SELECT count(*) FROM " + c.Table + " " + c.Alias + c.where(vis, f)
	err := c.DB.GetContext(ctx, &total, c.DB.Rebind(query), f.Args...)
	return total, err
}

// List returns one page of the visibility set together with the total size
// of the set under the same filter.
func (c Collection[T]) List(ctx context.Context, vis Visibility, page Page, f Filter) ([]T, int, error) {
	total, err := c.Count(ctx, vis, f)
	if err != nil {
		return nil, 0, err
	}
	items := []T{}
	query := c.selectFrom() + c.where(vis, f) + c.order(vis, f) + " LIMIT ? OFFSET ?"
	args := append(append([]interface{}{}, f.Args...), page.Size, page.Offset())
	if err := c.DB.SelectContext(ctx, &items, c.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c Collection[T]) All(ctx context.Context, vis Visibility, f Filter) ([]T, error) {
	items := []T{}
	query := c.selectFrom() + c.where(vis, f) + c.order(vis, f)
	if err := c.DB.SelectContext(ctx, &items, c.DB.Rebind(query), f.Args...); err != nil {
		return nil, err
	}
	return items, nil
}

// SoftDelete moves an alive row to the deleted set. A row that is missing or
// already deleted yields NotFound.
func (c Collection[T]) SoftDelete(ctx context.Context, id int64) error {
	now := c.now()
	query := "UPDATE " + c.Table + " SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL"
	res, err := c.DB.ExecContext(ctx, c.DB.Rebind(query), now, now, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return c.notFound(Alive)
	}
	return nil
}

// Restore moves a deleted row back to the alive set and returns it. Rows that
// are not currently deleted yield NotFound; a row whose unique values were
// reclaimed while it was deleted yields Conflict.
func (c Collection[T]) Restore(ctx context.Context, id int64) (T, error) {
	var zero T
	query := "UPDATE " + c.Table + " SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL"
	res, err := c.DB.ExecContext(ctx, c.DB.Rebind(query), c.now(), id)
	if err != nil {
		return zero, conflictOr(err, c.Noun+" cannot be restored because its unique values are in use")
	}
	if n, err := res.RowsAffected(); err != nil {
		return zero, err
	} else if n == 0 {
		return zero, c.notFound(Deleted)
	}
	return c.Get(ctx, Alive, id)
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	var id int64
	err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(&id)
	return id, err
}

func execAffected(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
