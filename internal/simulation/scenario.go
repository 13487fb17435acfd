package simulation

import (
	"github.com/kbretey/humoral/internal/antibody"
	"github.com/kbretey/humoral/internal/repertoire"
)

// ExposureSpec applies a fixed antigen count on every day of a range.
type ExposureSpec struct {
	Family       antibody.Type
	Variant      int
	FromDay      int
	ToDay        int
	AntigenCount int64
}

// ChallengeSpec drives the CSP response at an explicit growth rate on
// every day of a range.
type ChallengeSpec struct {
	FromDay    int
	ToDay      int
	GrowthRate float64
}

// Scenario describes a multi-day dynamics experiment over one host.
type Scenario struct {
	Name string

	// Days is the number of simulated days; Dt defaults to 1.
	Days int
	Dt   float64

	// NaiveCapacity seeds antibodies created on first exposure.
	NaiveCapacity float64

	// InvMicrolitersBlood converts antigen counts to densities.
	// Defaults to 2e-7 (adult blood volume).
	InvMicrolitersBlood float64

	// Params overrides the default parameter bundle when non-nil.
	Params *antibody.Params

	Exposures  []ExposureSpec
	Challenges []ChallengeSpec

	// BeforeDay runs at the start of each day, before exposures. Tests
	// use it to inject boosts or inspect mid-run state.
	BeforeDay func(day int, rep *repertoire.Repertoire)
}

// DayState is the repertoire state at the end of one day.
type DayState struct {
	Day      int
	States   []antibody.Snapshot
	Cytokine float64
}

// SimulationResult collects the full trajectory of a scenario run.
type SimulationResult struct {
	Days []DayState
}

// Find returns the snapshot of one antibody on one day, and whether it
// existed yet.
func (ds DayState) Find(typ antibody.Type, variant int) (antibody.Snapshot, bool) {
	for _, s := range ds.States {
		if s.Type == typ && s.Variant == variant {
			return s, true
		}
	}
	return antibody.Snapshot{}, false
}
