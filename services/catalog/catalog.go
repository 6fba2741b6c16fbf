// Package catalog keeps an SQLite index of collected recordings.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS recordings (
		id         TEXT PRIMARY KEY,
		class      TEXT NOT NULL,
		path       TEXT NOT NULL UNIQUE,
		rows       INTEGER NOT NULL,
		source     TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS recordings_class ON recordings(class);`,
}

// Recording is one collected CSV file.
type Recording struct {
	ID        uuid.UUID
	Class     string
	Path      string
	Rows      int
	Source    string // serial port name or "simulation"
	CreatedAt time.Time
}

// ClassCount is the number of recordings and rows for one class.
type ClassCount struct {
	Class      string
	Recordings int
	Rows       int
}

// Catalog wraps the database handle.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at path.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("catalog schema: %w", err)
		}
	}
	return &Catalog{db: db}, nil
}

// Close releases the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add inserts rec, assigning an ID and timestamp when unset.
func (c *Catalog) Add(rec *Recording) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := c.db.Exec(
		`INSERT INTO recordings(id, class, path, rows, source, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Class, rec.Path, rec.Rows, rec.Source, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("catalog add %s: %w", rec.Path, err)
	}
	return nil
}

// List returns recordings, oldest first, optionally restricted to class.
func (c *Catalog) List(class string) ([]Recording, error) {
	q := `SELECT id, class, path, rows, source, created_at FROM recordings`
	var args []any
	if class != "" {
		q += ` WHERE class = ?`
		args = append(args, class)
	}
	q += ` ORDER BY created_at, path`

	rs, err := c.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rs.Close()

	var out []Recording
	for rs.Next() {
		var (
			rec Recording
			id  string
			ns  int64
		)
		if err := rs.Scan(&id, &rec.Class, &rec.Path, &rec.Rows, &rec.Source, &ns); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("catalog id %q: %w", id, err)
		}
		rec.CreatedAt = time.Unix(0, ns)
		out = append(out, rec)
	}
	return out, rs.Err()
}

// CountByClass summarises recordings per class, sorted by class name.
func (c *Catalog) CountByClass() ([]ClassCount, error) {
	rs, err := c.db.Query(
		`SELECT class, COUNT(*), COALESCE(SUM(rows), 0) FROM recordings GROUP BY class ORDER BY class`)
	if err != nil {
		return nil, fmt.Errorf("catalog count: %w", err)
	}
	defer rs.Close()

	var out []ClassCount
	for rs.Next() {
		var cc ClassCount
		if err := rs.Scan(&cc.Class, &cc.Recordings, &cc.Rows); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		out = append(out, cc)
	}
	return out, rs.Err()
}
