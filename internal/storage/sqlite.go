// Package storage provides SQLite-based persistence for run journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
	"github.com/vovakirdan/sushi-tower/internal/replay"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run journals.
type Store struct {
	db *sql.DB
}

// RunSummary is a journal row without its taps, for listings.
type RunSummary struct {
	ID        string
	Variant   string
	Seed      int64
	Score     int
	Ticks     int
	Taps      int
	Finished  bool
	Reason    string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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

	// SQLite allows a single writer; SSH sessions share this store
	db.SetMaxOpenConns(1)

	// Test connection
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			rules TEXT NOT NULL,
			taps TEXT NOT NULL,
			tap_count INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
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

// SaveRun stores a journal. The rules are kept as YAML so a run can be
// replayed even after the defaults change.
func (s *Store) SaveRun(j replay.Journal) error {
	rules, err := config.MarshalSushi(config.FromRules(j.Rules))
	if err != nil {
		return fmt.Errorf("storage: cannot encode rules: %w", err)
	}

	reason := ""
	if j.Finished {
		reason = j.Reason.String()
	}
	created := j.StartedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, variant, seed, rules, taps, tap_count, score, ticks, finished, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Variant, j.Seed, string(rules), replay.EncodeTaps(j.Taps), len(j.Taps),
		j.Score, j.Ticks, j.Finished, reason, created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// LoadRun returns the full journal for an ID.
func (s *Store) LoadRun(id string) (replay.Journal, error) {
	var (
		j         replay.Journal
		rulesYAML string
		taps      string
		reason    string
		createdAt any
	)

	err := s.db.QueryRow(
		`SELECT id, variant, seed, rules, taps, score, ticks, finished, reason, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&j.ID, &j.Variant, &j.Seed, &rulesYAML, &taps, &j.Score, &j.Ticks, &j.Finished, &reason, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Journal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return replay.Journal{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	cfg, err := config.ParseSushi([]byte(rulesYAML))
	if err != nil {
		return replay.Journal{}, fmt.Errorf("storage: run %s has bad rules: %w", id, err)
	}
	j.Rules = cfg.Rules()

	if j.Taps, err = replay.DecodeTaps(taps); err != nil {
		return replay.Journal{}, fmt.Errorf("storage: run %s: %w", id, err)
	}
	if reason == core.ReasonStarved.String() {
		j.Reason = core.ReasonStarved
	}
	j.StartedAt = parseTime(createdAt)

	return j, nil
}

// RecentRuns lists the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, score, ticks, tap_count, finished, reason, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Seed, &r.Score, &r.Ticks, &r.Taps, &r.Finished, &r.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ResolveID expands a unique ID prefix, as shown in listings, to a full
// run ID.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.Query(
		`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("storage: id prefix %q is ambiguous", prefix)
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
