package simulation

import (
	"testing"

	"github.com/kbretey/humoral/internal/antibody"
)

// CapacitySeries extracts one antibody's capacity over the whole run.
// Days before the antibody exists report zero.
func CapacitySeries(result SimulationResult, typ antibody.Type, variant int) []float64 {
	series := make([]float64, len(result.Days))
	for i, ds := range result.Days {
		if s, ok := ds.Find(typ, variant); ok {
			series[i] = s.Capacity
		}
	}
	return series
}

// ConcentrationSeries extracts one antibody's concentration over the
// whole run.
func ConcentrationSeries(result SimulationResult, typ antibody.Type, variant int) []float64 {
	series := make([]float64, len(result.Days))
	for i, ds := range result.Days {
		if s, ok := ds.Find(typ, variant); ok {
			series[i] = s.Concentration
		}
	}
	return series
}

// PeakCapacity returns the highest capacity the antibody reached and
// the day it happened.
func PeakCapacity(result SimulationResult, typ antibody.Type, variant int) (float64, int) {
	best, bestDay := 0.0, -1
	for _, ds := range result.Days {
		if s, ok := ds.Find(typ, variant); ok && s.Capacity > best {
			best, bestDay = s.Capacity, ds.Day
		}
	}
	return best, bestDay
}

// LogTrajectory writes a sampled capacity/concentration trace to the
// test log, every `every` days plus the final day.
func LogTrajectory(t *testing.T, result SimulationResult, typ antibody.Type, variant, every int) {
	t.Helper()
	for i, ds := range result.Days {
		if i%every != 0 && i != len(result.Days)-1 {
			continue
		}
		if s, ok := ds.Find(typ, variant); ok {
			t.Logf("day %3d: %s/%d capacity=%.4f concentration=%.4f antigen=%v",
				ds.Day, typ, variant, s.Capacity, s.Concentration, s.AntigenPresent)
		}
	}
}
