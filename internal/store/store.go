// Package store persists simulation runs and their per-day antibody
// snapshots. The SQLite implementation is the durable store; the
// in-memory implementation backs tests.
package store

import (
	"context"
	"time"

	"github.com/kbretey/humoral/internal/antibody"
)

// Run is the record of one completed or in-progress simulation run.
type Run struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Days      int             `json:"days"`
	Dt        float64         `json:"dt"`
	Params    antibody.Params `json:"params"`
}

// DaySnapshot is one antibody's state at the end of one simulated day.
type DaySnapshot struct {
	RunID string            `json:"run_id"`
	Day   int               `json:"day"`
	State antibody.Snapshot `json:"state"`
}

// RunStore persists runs and their snapshots.
type RunStore interface {
	// SaveRun records a run. Run IDs are unique; saving an existing ID
	// is an error.
	SaveRun(ctx context.Context, run Run) error

	// GetRun returns a run by ID, or nil if not found.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]Run, error)

	// SaveSnapshots records the repertoire state for one day of a run.
	SaveSnapshots(ctx context.Context, runID string, day int, states []antibody.Snapshot) error

	// GetSnapshots returns all snapshots for a run ordered by day, then
	// by the repertoire's stable antibody order.
	GetSnapshots(ctx context.Context, runID string) ([]DaySnapshot, error)

	// Close releases the store's resources.
	Close() error
}
