// Package store keeps a library of named schemes in a SQLite database. Each
// entry holds the scheme's .esch text.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
)

// ErrNotFound is returned when no entry has the requested name
var ErrNotFound = errors.New("scheme not found")

const schema = `
CREATE TABLE IF NOT EXISTS schemes (
    name       TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    elements   INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// Entry describes one stored scheme
type Entry struct {
	Name      string
	Elements  int
	Size      int
	UpdatedAt time.Time
}

// Store is a scheme library backed by *sql.DB
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the library at dbPath and applies the
// schema
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already open database. Call Init before use.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Init creates the schema if it does not exist
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores t under name, replacing any previous entry
func (s *Store) Put(ctx context.Context, name string, t *electron.Tree) error {
	if name == "" {
		return fmt.Errorf("put: empty name")
	}
	var buf bytes.Buffer
	if err := scheme.Write(&buf, t); err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO schemes (name, body, elements, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            body = excluded.body,
            elements = excluded.elements,
            updated_at = excluded.updated_at
    `, name, buf.String(), t.Len(), s.now().Unix())
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	return nil
}

// Get loads the scheme stored under name
func (s *Store) Get(ctx context.Context, name string) (*electron.Tree, error) {
	row := s.db.QueryRowContext(ctx, `SELECT body FROM schemes WHERE name = ?`, name)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("get %q: %w", name, err)
	}

	t, err := scheme.Parse(bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}
	return t, nil
}

// List returns every entry ordered by name
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, elements, length(body), updated_at
        FROM schemes
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.Name, &e.Elements, &e.Size, &updated); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		e.UpdatedAt = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entries, nil
}

// Delete removes the entry stored under name
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schemes WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	return nil
}
