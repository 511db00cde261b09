// internal/store/sqlite.go
//
// SQLite-backed check history.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Recording checks and listing the most recent ones.

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeLayout is fixed-width so checked_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqlStore is a Store over a *sql.DB.
type sqlStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the SQLite database at dsn,
// applies migrations, and returns a Store. ":memory:" is accepted.
func OpenSQLite(dsn string) (Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrationsFS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlStore{db: db}, nil
}

// openDB ensures the parent directory exists, then opens dsn with a busy
// timeout and WAL journaling. The pool is capped at one connection so an
// in-memory database is shared by every query.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every migrations/*.sql file in lexical order, each inside
// its own transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		name := path.Base(f)

		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// Record inserts c.
func (s *sqlStore) Record(ctx context.Context, c Check) error {
	c = prepare(c)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO checks (id, caller, raw, word, version, outcome, checked_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.User, c.Raw, c.Word, c.Version, c.Outcome, c.At.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns the newest checks first; a non-positive limit means 20.
func (s *sqlStore) Recent(ctx context.Context, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, caller, raw, word, version, outcome, checked_at
        FROM checks
        ORDER BY checked_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Check, 0, limit)
	for rows.Next() {
		var c Check
		var at string
		if err := rows.Scan(&c.ID, &c.User, &c.Raw, &c.Word, &c.Version, &c.Outcome, &at); err != nil {
			return nil, err
		}
		if c.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("check %s: parse checked_at: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *sqlStore) Close() error { return s.db.Close() }
