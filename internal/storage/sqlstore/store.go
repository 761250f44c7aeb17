// Package sqlstore implements storage.Repository on database/sql for both
// SQLite and PostgreSQL. Dialect differences are limited to bind parameter
// placeholders, which squirrel rewrites.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/storage"
)

// Dialect selects the placeholder style for generated SQL.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) placeholders() squirrel.PlaceholderFormat {
	if d == Postgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Store struct {
	db   *sql.DB
	q    queryer
	sb   squirrel.StatementBuilderType
	inTx bool
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db: db,
		q:  db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(dialect.placeholders()),
	}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// WithTx runs fn inside a transaction. Nested calls join the outer transaction.
func (s *Store) WithTx(fn func(storage.Repository) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Store{db: s.db, q: tx, sb: s.sb, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// atomically runs fn in a transaction unless the store is already inside one.
func (s *Store) atomically(fn func(*Store) error) error {
	return s.WithTx(func(r storage.Repository) error {
		return fn(r.(*Store))
	})
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func (s *Store) exec(b sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.q.Exec(query, args...)
}

// execOne runs b and returns storage.ErrNotFound when no row was affected.
func (s *Store) execOne(b sqlizer) error {
	res, err := s.exec(b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) query(b sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.q.Query(query, args...)
}

func (s *Store) queryRow(b sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.q.QueryRow(query, args...), nil
}

// notFound maps sql.ErrNoRows onto the storage sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
