// Package scenario defines YAML exposure timelines for the simulation
// engine: which antigen families a host encounters, on which days, and
// which interventions (sporozoite challenges, vaccine boosts) apply.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kbretey/humoral/internal/antibody"
)

// DefaultInvMicrolitersBlood is the inverse adult blood volume used to
// convert antigen counts to densities when a scenario does not set its
// own (5e6 microliters of blood).
const DefaultInvMicrolitersBlood = 2e-7

// Scenario is one host's exposure timeline over a fixed horizon of
// simulated days.
type Scenario struct {
	// Name labels the scenario in stores and logs.
	Name string `json:"name" yaml:"name"`

	// Days is the simulation horizon. The day loop runs days/dt steps.
	Days int `json:"days" yaml:"days"`

	// Dt is the timestep in days. Defaults to 1.
	Dt float64 `json:"dt" yaml:"dt"`

	// NaiveCapacity is the initial capacity for antibodies created on
	// first exposure.
	NaiveCapacity float64 `json:"naive_capacity" yaml:"naive_capacity"`

	// InvMicrolitersBlood converts antigen counts to per-microliter
	// densities for the stimulation signal. Defaults to an adult blood
	// volume.
	InvMicrolitersBlood float64 `json:"inv_microliters_blood" yaml:"inv_microliters_blood"`

	// Exposures are antigen pulses applied on every step of a day range.
	Exposures []Exposure `json:"exposures" yaml:"exposures"`

	// Challenges drive the CSP response at an explicit growth rate.
	Challenges []Challenge `json:"challenges,omitempty" yaml:"challenges,omitempty"`

	// Boosts override an antibody's concentration on a single day.
	Boosts []Boost `json:"boosts,omitempty" yaml:"boosts,omitempty"`
}

// Exposure applies a fixed antigen count per step across [FromDay, ToDay].
type Exposure struct {
	Family       antibody.Type `json:"family" yaml:"family"`
	Variant      int           `json:"variant" yaml:"variant"`
	FromDay      int           `json:"from_day" yaml:"from_day"`
	ToDay        int           `json:"to_day" yaml:"to_day"`
	AntigenCount int64         `json:"antigen_count" yaml:"antigen_count"`
}

// ActiveOn reports whether the exposure applies on the given day.
func (e Exposure) ActiveOn(day int) bool {
	return day >= e.FromDay && day <= e.ToDay
}

// Challenge grows the CSP response at GrowthRate on every step across
// [FromDay, ToDay], the sporozoite-challenge path.
type Challenge struct {
	FromDay    int     `json:"from_day" yaml:"from_day"`
	ToDay      int     `json:"to_day" yaml:"to_day"`
	GrowthRate float64 `json:"growth_rate" yaml:"growth_rate"`
}

// ActiveOn reports whether the challenge applies on the given day.
func (c Challenge) ActiveOn(day int) bool {
	return day >= c.FromDay && day <= c.ToDay
}

// Boost sets an antibody's concentration to Concentration at the start
// of Day. Values above capacity are deliberate (vaccine boost).
type Boost struct {
	Family        antibody.Type `json:"family" yaml:"family"`
	Variant       int           `json:"variant" yaml:"variant"`
	Day           int           `json:"day" yaml:"day"`
	Concentration float64       `json:"concentration" yaml:"concentration"`
}

// Load reads a scenario from a YAML file, applies defaults, and
// validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	sc.ApplyDefaults()

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	return &sc, nil
}

// ApplyDefaults fills zero-valued tunables with their defaults.
func (s *Scenario) ApplyDefaults() {
	if s.Dt == 0 {
		s.Dt = 1
	}
	if s.InvMicrolitersBlood == 0 {
		s.InvMicrolitersBlood = DefaultInvMicrolitersBlood
	}
}

// Validate checks the timeline for contradictions before a run starts.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", s.Days)
	}
	if s.Dt <= 0 || s.Dt > 1 {
		return fmt.Errorf("dt must be in (0, 1], got %v", s.Dt)
	}
	if s.NaiveCapacity < 0 || s.NaiveCapacity > 1 {
		return fmt.Errorf("naive_capacity must be in [0, 1], got %v", s.NaiveCapacity)
	}
	if s.InvMicrolitersBlood <= 0 {
		return fmt.Errorf("inv_microliters_blood must be positive, got %v", s.InvMicrolitersBlood)
	}

	for i, e := range s.Exposures {
		if _, err := antibody.ParseType(string(e.Family)); err != nil {
			return fmt.Errorf("exposure %d: %w", i, err)
		}
		if e.Variant < 0 {
			return fmt.Errorf("exposure %d: variant must be non-negative, got %d", i, e.Variant)
		}
		if err := validDayRange(e.FromDay, e.ToDay, s.Days); err != nil {
			return fmt.Errorf("exposure %d: %w", i, err)
		}
		if e.AntigenCount <= 0 {
			return fmt.Errorf("exposure %d: antigen_count must be positive, got %d", i, e.AntigenCount)
		}
	}

	for i, c := range s.Challenges {
		if err := validDayRange(c.FromDay, c.ToDay, s.Days); err != nil {
			return fmt.Errorf("challenge %d: %w", i, err)
		}
		if c.GrowthRate <= 0 {
			return fmt.Errorf("challenge %d: growth_rate must be positive, got %v", i, c.GrowthRate)
		}
	}

	for i, b := range s.Boosts {
		if _, err := antibody.ParseType(string(b.Family)); err != nil {
			return fmt.Errorf("boost %d: %w", i, err)
		}
		if b.Day < 0 || b.Day >= s.Days {
			return fmt.Errorf("boost %d: day %d outside [0, %d)", i, b.Day, s.Days)
		}
		if b.Concentration <= 0 {
			return fmt.Errorf("boost %d: concentration must be positive, got %v", i, b.Concentration)
		}
	}

	return nil
}

func validDayRange(from, to, days int) error {
	if from < 0 || to >= days || from > to {
		return fmt.Errorf("day range [%d, %d] outside [0, %d)", from, to, days)
	}
	return nil
}
