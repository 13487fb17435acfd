package simulation

import (
	"testing"

	"github.com/kbretey/humoral/internal/antibody"
)

// AssertCapacityBounded fails if any recorded capacity leaves [0, 1].
func AssertCapacityBounded(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, ds := range result.Days {
		for _, s := range ds.States {
			if s.Capacity < 0 || s.Capacity > 1 {
				t.Errorf("day %d: %s/%d capacity %v outside [0, 1]",
					ds.Day, s.Type, s.Variant, s.Capacity)
			}
		}
	}
}

// AssertConcentrationWithinCapacity fails if any non-CSP concentration
// exceeds its capacity. CSP is exempt: boosts push it above capacity on
// purpose and it drains back on the day constant.
func AssertConcentrationWithinCapacity(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, ds := range result.Days {
		for _, s := range ds.States {
			if s.Type == antibody.TypeCSP {
				continue
			}
			if s.Concentration > s.Capacity {
				t.Errorf("day %d: %s/%d concentration %v above capacity %v",
					ds.Day, s.Type, s.Variant, s.Concentration, s.Capacity)
			}
		}
	}
}

// AssertCapacityIncreased fails unless capacity on toDay is strictly
// above capacity on fromDay.
func AssertCapacityIncreased(t *testing.T, result SimulationResult, typ antibody.Type, variant, fromDay, toDay int) {
	t.Helper()
	from := snapshotAt(t, result, typ, variant, fromDay)
	to := snapshotAt(t, result, typ, variant, toDay)
	if to.Capacity <= from.Capacity {
		t.Errorf("%s/%d capacity did not grow between day %d and %d: %v -> %v",
			typ, variant, fromDay, toDay, from.Capacity, to.Capacity)
	}
}

// AssertCapacityDecreased fails unless capacity on toDay is strictly
// below capacity on fromDay.
func AssertCapacityDecreased(t *testing.T, result SimulationResult, typ antibody.Type, variant, fromDay, toDay int) {
	t.Helper()
	from := snapshotAt(t, result, typ, variant, fromDay)
	to := snapshotAt(t, result, typ, variant, toDay)
	if to.Capacity >= from.Capacity {
		t.Errorf("%s/%d capacity did not decay between day %d and %d: %v -> %v",
			typ, variant, fromDay, toDay, from.Capacity, to.Capacity)
	}
}

// AssertCapacityNear fails unless capacity on the given day is within
// tol of want.
func AssertCapacityNear(t *testing.T, result SimulationResult, typ antibody.Type, variant, day int, want, tol float64) {
	t.Helper()
	s := snapshotAt(t, result, typ, variant, day)
	if diff := s.Capacity - want; diff > tol || diff < -tol {
		t.Errorf("%s/%d day %d capacity = %v, want %v ± %v",
			typ, variant, day, s.Capacity, want, tol)
	}
}

// AssertSecreting fails unless the antibody is releasing on the given
// day: concentration positive and tracking capacity.
func AssertSecreting(t *testing.T, result SimulationResult, typ antibody.Type, variant, day int) {
	t.Helper()
	s := snapshotAt(t, result, typ, variant, day)
	if s.Concentration <= 0 {
		t.Errorf("%s/%d day %d: concentration %v, want positive while secreting",
			typ, variant, day, s.Concentration)
	}
}

// AssertNotSecreting fails unless the antibody's concentration is zero
// on the given day.
func AssertNotSecreting(t *testing.T, result SimulationResult, typ antibody.Type, variant, day int) {
	t.Helper()
	s := snapshotAt(t, result, typ, variant, day)
	if s.Concentration != 0 {
		t.Errorf("%s/%d day %d: concentration %v, want 0 below release threshold",
			typ, variant, day, s.Concentration)
	}
}

func snapshotAt(t *testing.T, result SimulationResult, typ antibody.Type, variant, day int) antibody.Snapshot {
	t.Helper()
	if day < 0 || day >= len(result.Days) {
		t.Fatalf("day %d outside recorded trajectory of %d days", day, len(result.Days))
	}
	s, ok := result.Days[day].Find(typ, variant)
	if !ok {
		t.Fatalf("%s/%d not present on day %d", typ, variant, day)
	}
	return s
}
