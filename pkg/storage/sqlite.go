package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/halwes/gridcal/pkg/calendar"
)

// SQLite persists the event list in a single-table SQLite database. Like
// the JSON backend it rewrites the whole list on save; the table carries a
// position column so insertion order survives the round trip.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// DELETE journal mode for immediate writes; the list must be durable
	// before the next cold load reads it back.
	connStr := dbPath + "?_journal_mode=DELETE&_synchronous=FULL"
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Force single connection to avoid pooling issues
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		color TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all events back in insertion order. Rows that fail to decode
// are logged and skipped rather than failing the whole load.
func (s *SQLite) Load() ([]*calendar.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, date, start_time, end_time, color
		FROM events ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*calendar.Event
	for rows.Next() {
		var r record
		var description, color sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &description, &r.Date, &r.StartTime, &r.EndTime, &color); err != nil {
			return nil, err
		}
		r.Description = description.String
		r.Color = color.String

		e, err := r.toEvent()
		if err != nil {
			log.WithError(err).WithField("id", r.ID).Warn("skipping event with bad date")
			continue
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Save replaces the table contents with the given list.
func (s *SQLite) Save(events []*calendar.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	for i, e := range events {
		r := toRecord(e)
		_, err := tx.Exec(`
			INSERT INTO events (position, id, title, description, date, start_time, end_time, color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Title, r.Description, r.Date, r.StartTime, r.EndTime, r.Color)
		if err != nil {
			return fmt.Errorf("failed to insert event %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
