package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS candidate_ids (
	id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS candidate_people (
	id     TEXT PRIMARY KEY,
	record TEXT NOT NULL
);
`

const jobDescriptionSlot = "job-description"

// SQLite is a Store backed by a local sqlite file. Records in the detail map
// are stored JSON-serialized, one row per candidate.
type SQLite struct {
	db *sql.DB

	// mergeMu serializes detail-map merges on top of the per-merge
	// transaction, so concurrent worker flushes apply one at a time.
	mergeMu sync.Mutex
}

func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", path, err)
	}

	// The sqlite driver does not support concurrent writers on one
	// connection pool well; a single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) JobDescription() (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, jobDescriptionSlot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return value, nil
}

func (s *SQLite) SetJobDescription(text string) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		jobDescriptionSlot, text,
	)
	if err != nil {
		return fmt.Errorf("set job description: %w", err)
	}
	return nil
}

func (s *SQLite) ReadIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM candidate_ids ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read candidate ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLite) AddIDs(ids []string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO candidate_ids (id) VALUES (?)`, id); err != nil {
			return 0, fmt.Errorf("add candidate id %q: %w", id, err)
		}
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM candidate_ids`).Scan(&count); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLite) ClearIDs() error {
	_, err := s.db.Exec(`DELETE FROM candidate_ids`)
	return err
}

func (s *SQLite) ReadPeople() (map[string]any, error) {
	rows, err := s.db.Query(`SELECT id, record FROM candidate_people`)
	if err != nil {
		return nil, fmt.Errorf("read candidate people: %w", err)
	}
	defer rows.Close()

	people := make(map[string]any)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var record any
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			// An unreadable row is treated as absent rather than
			// failing the whole read.
			continue
		}
		people[id] = record
	}
	return people, rows.Err()
}

// MergePeople upserts every key of add inside a single transaction. The
// transaction plus mergeMu gives the same guarantee as reading the whole map,
// applying the additions and writing the whole map back: no concurrent merge
// can lose another's keys.
func (s *SQLite) MergePeople(add map[string]any) (int, error) {
	s.mergeMu.Lock()
	defer s.mergeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for id, record := range add {
		if id == "" {
			continue
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return 0, fmt.Errorf("encode record %q: %w", id, err)
		}
		_, err = tx.Exec(
			`INSERT INTO candidate_people (id, record) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET record = excluded.record`,
			id, string(raw),
		)
		if err != nil {
			return 0, fmt.Errorf("merge record %q: %w", id, err)
		}
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM candidate_people`).Scan(&count); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLite) ClearPeople() error {
	_, err := s.db.Exec(`DELETE FROM candidate_people`)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
