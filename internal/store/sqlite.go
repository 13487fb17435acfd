package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kbretey/humoral/internal/antibody"
)

// SQLiteRunStore implements RunStore on a SQLite database file.
type SQLiteRunStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteRunStore opens (creating if needed) the run database at
// path, along with its parent directory.
func NewSQLiteRunStore(path string) (*SQLiteRunStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRunStore{db: db}, nil
}

// SaveRun records a run row. The parameter bundle is stored as JSON.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}

	params, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, created_at, days, dt, params) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Days, run.Dt, string(params))
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun returns a run by ID, or nil if not found.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, days, dt, params FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, days, dt, params FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// SaveSnapshots records one day of repertoire state inside a single
// transaction.
func (s *SQLiteRunStore) SaveSnapshots(ctx context.Context, runID string, day int, states []antibody.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshots
		(run_id, day, seq, antibody_type, variant, capacity, concentration, antigen_count, antigen_present)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for seq, st := range states {
		present := 0
		if st.AntigenPresent {
			present = 1
		}
		if _, err := stmt.ExecContext(ctx, runID, day, seq,
			st.Type.String(), st.Variant, st.Capacity, st.Concentration, st.AntigenCount, present); err != nil {
			return fmt.Errorf("inserting snapshot %s day %d seq %d: %w", runID, day, seq, err)
		}
	}

	return tx.Commit()
}

// GetSnapshots returns all snapshots for a run ordered by day and
// sequence.
func (s *SQLiteRunStore) GetSnapshots(ctx context.Context, runID string) ([]DaySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT day, antibody_type, variant, capacity, concentration, antigen_count, antigen_present
		FROM snapshots WHERE run_id = ? ORDER BY day, seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots for %s: %w", runID, err)
	}
	defer rows.Close()

	var snaps []DaySnapshot
	for rows.Next() {
		var (
			ds      DaySnapshot
			typ     string
			present int
		)
		if err := rows.Scan(&ds.Day, &typ, &ds.State.Variant, &ds.State.Capacity,
			&ds.State.Concentration, &ds.State.AntigenCount, &present); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		parsed, err := antibody.ParseType(typ)
		if err != nil {
			return nil, fmt.Errorf("snapshot for %s day %d: %w", runID, ds.Day, err)
		}
		ds.RunID = runID
		ds.State.Type = parsed
		ds.State.AntigenPresent = present != 0
		snaps = append(snaps, ds)
	}
	return snaps, rows.Err()
}

// Close closes the database.
func (s *SQLiteRunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		createdAt string
		params    string
	)
	if err := row.Scan(&run.ID, &run.Name, &createdAt, &run.Days, &run.Dt, &params); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return nil, fmt.Errorf("unmarshaling params: %w", err)
	}
	return &run, nil
}
