package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbretey/humoral/internal/antibody"
)

// InMemoryRunStore implements RunStore for tests and development.
type InMemoryRunStore struct {
	mu    sync.RWMutex
	runs  map[string]Run
	snaps map[string][]DaySnapshot
}

// NewInMemoryRunStore creates an empty in-memory store.
func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runs:  make(map[string]Run),
		snaps: make(map[string][]DaySnapshot),
	}
}

// SaveRun records a run.
func (s *InMemoryRunStore) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run already exists: %s", run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

// GetRun returns a run by ID, or nil if not found.
func (s *InMemoryRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, nil
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *InMemoryRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// SaveSnapshots records one day of repertoire state.
func (s *InMemoryRunStore) SaveSnapshots(ctx context.Context, runID string, day int, states []antibody.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range states {
		s.snaps[runID] = append(s.snaps[runID], DaySnapshot{RunID: runID, Day: day, State: st})
	}
	return nil
}

// GetSnapshots returns all snapshots for a run in insertion order,
// which matches day-then-sequence order for a well-behaved caller.
func (s *InMemoryRunStore) GetSnapshots(ctx context.Context, runID string) ([]DaySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DaySnapshot, len(s.snaps[runID]))
	copy(out, s.snaps[runID])
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryRunStore) Close() error {
	return nil
}
