// Package storage provides SQLite-based persistence for save slots and
// archived run results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveEntry is one save slot. Data holds the encoded game save and is left
// empty by ListSaves.
type SaveEntry struct {
	Slot     string
	Version  int
	Scenario string // Catalog facility the game was opened from
	Tick     int
	Label    string // Human-readable summary, e.g. facility and in-game date
	Data     []byte
	SavedAt  time.Time
}

// RunResult is the archived outcome of a finished playthrough.
type RunResult struct {
	ID          int64
	RunID       string
	Slot        string
	Region      string
	Facility    string
	Days        int
	Valuation   float64
	CreditScore float64
	Insolvent   bool
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			scenario TEXT NOT NULL DEFAULT '',
			tick INTEGER NOT NULL DEFAULT 0,
			label TEXT NOT NULL DEFAULT '',
			payload BLOB NOT NULL,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			slot TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL,
			facility TEXT NOT NULL,
			days INTEGER NOT NULL DEFAULT 0,
			valuation REAL NOT NULL DEFAULT 0,
			credit_score REAL NOT NULL DEFAULT 0,
			insolvent INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(valuation DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes a slot, replacing any previous save in it.
func (s *Store) SaveGame(e SaveEntry) error {
	if e.Slot == "" {
		return fmt.Errorf("storage: cannot save game: empty slot")
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, version, scenario, tick, label, payload, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   version = excluded.version,
		   scenario = excluded.scenario,
		   tick = excluded.tick,
		   label = excluded.label,
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		e.Slot, e.Version, e.Scenario, e.Tick, e.Label, e.Data, e.SavedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame reads a slot. Returns nil, nil if the slot is empty.
func (s *Store) LoadGame(slot string) (*SaveEntry, error) {
	var e SaveEntry
	var savedAt int64
	err := s.db.QueryRow(
		`SELECT slot, version, scenario, tick, label, payload, saved_at
		 FROM saves
		 WHERE slot = ?`,
		slot,
	).Scan(&e.Slot, &e.Version, &e.Scenario, &e.Tick, &e.Label, &e.Data, &savedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	e.SavedAt = time.UnixMilli(savedAt)
	return &e, nil
}

// DeleteGame removes a slot. Deleting an empty slot is not an error.
func (s *Store) DeleteGame(slot string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete game: %w", err)
	}
	return nil
}

// ListSaves returns every slot without payloads, most recent first.
func (s *Store) ListSaves() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT slot, version, scenario, tick, label, saved_at
		 FROM saves
		 ORDER BY saved_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var savedAt int64
		if err := rows.Scan(&e.Slot, &e.Version, &e.Scenario, &e.Tick, &e.Label, &savedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.SavedAt = time.UnixMilli(savedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecordRun archives a finished playthrough and returns its run ID.
// A fresh UUID is assigned when r.RunID is empty.
func (s *Store) RecordRun(r RunResult) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	insolvent := 0
	if r.Insolvent {
		insolvent = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, slot, region, facility, days, valuation, credit_score, insolvent)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Slot, r.Region, r.Facility, r.Days, r.Valuation, r.CreditScore, insolvent,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record run: %w", err)
	}
	return r.RunID, nil
}

// TopRuns retrieves the best N runs by valuation.
func (s *Store) TopRuns(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, slot, region, facility, days, valuation, credit_score, insolvent, created_at
		 FROM runs
		 ORDER BY valuation DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// RunByID retrieves a run by its run ID.
// Returns nil, nil if no such run exists.
func (s *Store) RunByID(runID string) (*RunResult, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, slot, region, facility, days, valuation, credit_score, insolvent, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunResult, error) {
	var r RunResult
	var insolvent int
	var createdAt any
	err := row.Scan(&r.ID, &r.RunID, &r.Slot, &r.Region, &r.Facility, &r.Days,
		&r.Valuation, &r.CreditScore, &insolvent, &createdAt)
	if err == sql.ErrNoRows {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Insolvent = insolvent != 0

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
