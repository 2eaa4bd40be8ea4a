// Package history persists a record of executed requests for the CLI.
// The library core never touches it; recording is a tool concern and can
// be disabled entirely by configuration.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DbFileName is the default filename for the sqlite request history.
const DbFileName = "netkit.db"

const table = "request_history"

// Record is one executed request: what was sent, how it was classified,
// and how long it took.
type Record struct {
	ID         int64
	Method     string
	URL        string
	Outcome    string // "ok" or the taxonomy kind string
	DurationMS int64
	RanAt      string
}

// Store persists request records in a SQL database. Placeholder style and
// schema DDL differ per driver; everything else is shared.
type Store struct {
	DB     *sql.DB
	driver string
}

// OpenSQLite opens (and initializes) the sqlite history at the given path.
func OpenSQLite(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	st := &Store{DB: db, driver: "sqlite"}
	if err := st.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

// OpenPostgres opens (and initializes) the history in a PostgreSQL
// database reachable via the pgx stdlib driver.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	st := &Store{DB: db, driver: "pgx"}
	if err := st.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// EnsureSchema creates the history table when absent.
func (s *Store) EnsureSchema() error {
	idCol := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "pgx" {
		idCol = "id BIGSERIAL PRIMARY KEY"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		%s,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		outcome TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		ran_at TEXT NOT NULL
	)`, table, idCol)
	_, err := s.DB.Exec(ddl)
	return err
}

// Record appends one request record. RanAt is stamped here when empty.
func (s *Store) Record(rec Record) error {
	if rec.RanAt == "" {
		rec.RanAt = time.Now().UTC().Format(time.RFC3339)
	}
	q := fmt.Sprintf(
		`INSERT INTO %s(method, url, outcome, duration_ms, ran_at) VALUES(%s)`,
		table, s.placeholders(5),
	)
	_, err := s.DB.Exec(q, rec.Method, rec.URL, rec.Outcome, rec.DurationMS, rec.RanAt)
	return err
}

// List returns the most recent records, newest first. limit <= 0 means a
// default of 20.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	q := fmt.Sprintf(
		`SELECT id, method, url, outcome, duration_ms, ran_at FROM %s ORDER BY id DESC LIMIT %s`,
		table, s.placeholder(1),
	)
	rows, err := s.DB.Query(q, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Method, &r.URL, &r.Outcome, &r.DurationMS, &r.RanAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// placeholder returns the driver-specific parameter marker for position i.
func (s *Store) placeholder(i int) string {
	if s.driver == "pgx" {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// placeholders returns a comma-joined marker list for n parameters.
func (s *Store) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}
