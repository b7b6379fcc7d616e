// Package sqlstore implements roadmap.Store on a SQL database.
//
// Each project document is kept as one JSON row, so the document contract
// stays the same as the file backend. SQLite (pure Go, modernc.org/sqlite)
// is the default; PostgreSQL is available through lib/pq. Queries are
// written with ? placeholders and rebound per driver by sqlx.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sqlx.Open

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database.
type Config struct {
	Driver string
	DSN    string
}

// Store is a roadmap.Store backed by a `projects` table.
type Store struct {
	db *sqlx.DB
}

var _ roadmap.Store = (*Store)(nil)

// New opens the database, applies driver settings and runs migrations.
func New(cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("sqlstore: sqlite requires a database path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o700); err != nil {
			return nil, fmt.Errorf("sqlstore: create data dir: %w", err)
		}
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("sqlstore: postgres requires a DSN")
		}
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q: must be one of: sqlite, postgres", cfg.Driver)
	}

	db, err := openDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		pragmas := []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA foreign_keys = ON",
		}
		for _, p := range pragmas {
			if _, err := db.Exec(p); err != nil {
				db.Close()
				return nil, fmt.Errorf("sqlstore: pragma %q: %w", p, err)
			}
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	return err
}

// Read loads one document; (nil, nil) if the row does not exist.
func (s *Store) Read(id string) (*roadmap.ProjectData, error) {
	var body string
	err := s.db.Get(&body, s.db.Rebind(`SELECT body FROM projects WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project %q: %w", id, err)
	}
	return decode(id, body)
}

// Write upserts the document row.
func (s *Store) Write(doc *roadmap.ProjectData) error {
	if doc.Project.ID == "" {
		return roadmap.Validationf("project ID is required")
	}
	doc.Normalize()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling project %q: %w", doc.Project.ID, err)
	}

	_, err = s.db.Exec(s.db.Rebind(`
		INSERT INTO projects (id, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`),
		doc.Project.ID, string(body), doc.Project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("writing project %q: %w", doc.Project.ID, err)
	}
	return nil
}

// Delete removes the document row.
func (s *Store) Delete(id string) (bool, error) {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("deleting project %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting project %q: %w", id, err)
	}
	return n > 0, nil
}

type projectRow struct {
	ID   string `db:"id"`
	Body string `db:"body"`
}

// ListAll returns every row that decodes, ordered by ID.
func (s *Store) ListAll() ([]*roadmap.ProjectData, error) {
	var rows []projectRow
	if err := s.db.Select(&rows, `SELECT id, body FROM projects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	result := make([]*roadmap.ProjectData, 0, len(rows))
	for _, row := range rows {
		doc, err := decode(row.ID, row.Body)
		if err != nil {
			log.Printf("WARNING: skipping unreadable project row %s: %v", row.ID, err)
			continue
		}
		result = append(result, doc)
	}
	return result, nil
}

func decode(id, body string) (*roadmap.ProjectData, error) {
	var doc roadmap.ProjectData
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("parsing project %q: %w", id, err)
	}
	doc.Normalize()
	return &doc, nil
}
