package simulation

import (
	"math"
	"testing"

	"github.com/kbretey/humoral/internal/antibody"
	"github.com/kbretey/humoral/internal/repertoire"
)

// Runner executes dynamics scenarios against a real repertoire,
// recording the full per-day trajectory for assertions.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected trajectory.
func (r *Runner) Run(sc Scenario) SimulationResult {
	r.t.Helper()

	params := antibody.DefaultParams()
	if sc.Params != nil {
		params = *sc.Params
	}
	if err := params.Validate(); err != nil {
		r.t.Fatalf("Run(%s): invalid params: %v", sc.Name, err)
	}

	dt := sc.Dt
	if dt == 0 {
		dt = 1
	}
	inv := sc.InvMicrolitersBlood
	if inv == 0 {
		inv = 2e-7
	}
	stepsPerDay := int(math.Round(1 / dt))

	rep := repertoire.New(sc.NaiveCapacity)
	result := SimulationResult{Days: make([]DayState, 0, sc.Days)}

	for day := 0; day < sc.Days; day++ {
		if sc.BeforeDay != nil {
			sc.BeforeDay(day, rep)
		}

		for step := 0; step < stepsPerDay; step++ {
			rep.BeginStep()
			for _, ex := range sc.Exposures {
				if day >= ex.FromDay && day <= ex.ToDay {
					rep.Expose(ex.Family, ex.Variant, ex.AntigenCount)
				}
			}
			for _, ch := range sc.Challenges {
				if day >= ch.FromDay && day <= ch.ToDay {
					rep.ChallengeCSP(dt, ch.GrowthRate)
				}
			}
			rep.Update(dt, params, inv)
		}

		result.Days = append(result.Days, DayState{
			Day:      day,
			States:   rep.Snapshot(),
			Cytokine: rep.CytokineStimulation(inv),
		})
	}

	return result
}
