// Package repertoire manages the set of antibodies a single host has
// acquired. It owns the per-timestep call sequence over every antibody
// and creates new instances on first exposure; it never couples one
// antibody's update to another's state.
package repertoire

import (
	"fmt"
	"sort"

	"github.com/kbretey/humoral/internal/antibody"
)

// Key identifies one antibody within a repertoire.
type Key struct {
	Type    antibody.Type
	Variant int
}

// Repertoire is one host's acquired immune responses, keyed by antigen
// family and variant. Not safe for concurrent use; each host's
// repertoire is updated by a single goroutine per timestep.
type Repertoire struct {
	naiveCapacity float64
	antibodies    map[Key]*antibody.Antibody
}

// New creates an empty repertoire. First exposures create antibodies
// at naiveCapacity with zero concentration.
func New(naiveCapacity float64) *Repertoire {
	return &Repertoire{
		naiveCapacity: naiveCapacity,
		antibodies:    make(map[Key]*antibody.Antibody),
	}
}

// Len returns the number of distinct antibody responses.
func (r *Repertoire) Len() int {
	return len(r.antibodies)
}

// Get returns the antibody for the given family and variant, or nil if
// the host has never been exposed to it.
func (r *Repertoire) Get(typ antibody.Type, variant int) *antibody.Antibody {
	return r.antibodies[Key{Type: typ, Variant: variant}]
}

// All returns every antibody in stable order: canonical type order,
// then ascending variant. Persistence and aggregation iterate through
// this so output is deterministic run to run.
func (r *Repertoire) All() []*antibody.Antibody {
	keys := make([]Key, 0, len(r.antibodies))
	for k := range r.antibodies {
		keys = append(keys, k)
	}
	order := make(map[antibody.Type]int, len(antibody.Types()))
	for i, typ := range antibody.Types() {
		order[typ] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return order[keys[i].Type] < order[keys[j].Type]
		}
		return keys[i].Variant < keys[j].Variant
	})

	out := make([]*antibody.Antibody, len(keys))
	for i, k := range keys {
		out[i] = r.antibodies[k]
	}
	return out
}

// BeginStep clears every antibody's antigen counters. Call once at the
// start of each timestep, before exposures are registered.
func (r *Repertoire) BeginStep() {
	for _, a := range r.antibodies {
		a.ResetCounters()
	}
}

// Expose registers count antigen units against the given family and
// variant, creating the antibody at the naive capacity on first
// contact. A non-positive count still creates the instance but leaves
// its counters untouched, matching IncreaseAntigenCount.
func (r *Repertoire) Expose(typ antibody.Type, variant int, count int64) *antibody.Antibody {
	a := r.ensure(typ, variant)
	a.IncreaseAntigenCount(count)
	return a
}

// ChallengeCSP grows the CSP response at an explicit rate, the
// sporozoite-challenge and vaccination path. The CSP antibody is
// created on first challenge.
func (r *Repertoire) ChallengeCSP(dt, growthRate float64) {
	a := r.ensure(antibody.TypeCSP, 0)
	a.UpdateCapacityFromRate(dt, growthRate)
}

// BoostConcentration overrides an antibody's concentration directly,
// creating it first if needed. Vaccine boosts use this to push CSP
// concentration above capacity; the value is not clamped.
func (r *Repertoire) BoostConcentration(typ antibody.Type, variant int, value float64) {
	r.ensure(typ, variant).SetConcentration(value)
}

// Update runs one timestep of immune dynamics over every antibody:
// decay, then antigen-driven capacity growth, then release. Exposures
// registered since BeginStep feed the growth laws.
func (r *Repertoire) Update(dt float64, p antibody.Params, invMicrolitersBlood float64) {
	for _, a := range r.antibodies {
		a.Decay(dt, p)
		a.UpdateCapacity(dt, p, invMicrolitersBlood)
		a.UpdateConcentration(dt, p)
	}
}

// CytokineStimulation sums the innate inflammatory signal over the
// whole repertoire. Read-only.
func (r *Repertoire) CytokineStimulation(invMicrolitersBlood float64) float64 {
	total := 0.0
	for _, a := range r.antibodies {
		total += a.StimulateCytokines(invMicrolitersBlood)
	}
	return total
}

// Snapshot captures every antibody's state in stable order.
func (r *Repertoire) Snapshot() []antibody.Snapshot {
	all := r.All()
	out := make([]antibody.Snapshot, len(all))
	for i, a := range all {
		out[i] = a.Snapshot()
	}
	return out
}

// FromSnapshot rebuilds a repertoire from persisted antibody states.
// Duplicate (type, variant) pairs are rejected; individual states are
// restored verbatim through antibody.FromSnapshot.
func FromSnapshot(naiveCapacity float64, snaps []antibody.Snapshot) (*Repertoire, error) {
	r := New(naiveCapacity)
	for _, s := range snaps {
		a, err := antibody.FromSnapshot(s)
		if err != nil {
			return nil, fmt.Errorf("restoring antibody %s/%d: %w", s.Type, s.Variant, err)
		}
		k := Key{Type: a.Type(), Variant: a.Variant()}
		if _, exists := r.antibodies[k]; exists {
			return nil, fmt.Errorf("duplicate antibody %s/%d in snapshot", s.Type, s.Variant)
		}
		r.antibodies[k] = a
	}
	return r, nil
}

func (r *Repertoire) ensure(typ antibody.Type, variant int) *antibody.Antibody {
	k := Key{Type: typ, Variant: variant}
	a, ok := r.antibodies[k]
	if !ok {
		a = antibody.New(typ, variant, r.naiveCapacity, 0)
		r.antibodies[k] = a
	}
	return a
}
