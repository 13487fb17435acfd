package antibody

import "github.com/kbretey/humoral/internal/sigmoid"

// Hard-coded law constants. These are fixed points of the model, not
// tunables; everything host-specific lives in Params.
const (
	// NonTrivialConcentration is the level below which concentration
	// decay is skipped entirely. Sub-threshold responses stay frozen
	// rather than shrinking forever toward zero.
	NonTrivialConcentration = 1e-7

	// TwentyDayDecayRate is the per-day fractional concentration decay
	// applied in the absence of antigen (a twenty day time constant).
	TwentyDayDecayRate = 0.05

	// ProliferationThreshold is the capacity above which B cells switch
	// into the rapid proliferation regime.
	ProliferationThreshold = 0.4

	// ProliferationRate is the per-day rate of the rapid proliferation
	// term (1 - capacity) * ProliferationRate * dt.
	ProliferationRate = 0.33

	// ReleaseThreshold is the capacity above which antibodies are
	// released into circulation.
	ReleaseThreshold = 0.3

	// ReleaseRate scales how fast concentration is pulled up toward
	// capacity once release has started.
	ReleaseRate = 4
)

// lawSet bundles the three update laws for one antibody type. Laws are
// free functions over explicit state so each variant law reads as a
// single formula; the table below is the only place types are mapped
// to behavior.
type lawSet struct {
	decay   func(a *Antibody, dt float64, p Params)
	grow    func(a *Antibody, dt float64, p Params, invMicrolitersBlood float64)
	release func(a *Antibody, dt float64, p Params)
}

var laws = map[Type]lawSet{
	TypeCSP:         {decay: decayCSP, grow: growBase, release: releaseCSP},
	TypeMSP1:        {decay: decayBase, grow: growBase, release: releaseBase},
	TypePfEMP1Minor: {decay: decayBase, grow: growPfEMP1Minor, release: releaseBase},
	TypePfEMP1Major: {decay: decayBase, grow: growPfEMP1Major, release: releaseBase},
}

// Decay applies the no-antigen decay law for this antibody's type over
// a timestep of dt days. Concentration decays on the twenty day
// constant once above the triviality threshold, and capacity relaxes
// toward the host's memory level. dt of zero leaves state unchanged.
func (a *Antibody) Decay(dt float64, p Params) {
	laws[a.typ].decay(a, dt, p)
}

// UpdateCapacity applies the antigen-driven capacity growth law for
// this antibody's type. Stimulation is the accumulated antigen count
// converted to a per-microliter density via invMicrolitersBlood and
// passed through a saturating sigmoid. Capacity stays in [0, 1].
func (a *Antibody) UpdateCapacity(dt float64, p Params, invMicrolitersBlood float64) {
	laws[a.typ].grow(a, dt, p, invMicrolitersBlood)
}

// UpdateCapacityFromRate grows capacity at an explicit rate with no
// antigen dependence. Sporozoite challenges drive the CSP response
// through this law; intervention-style forcing of other types uses it
// too.
func (a *Antibody) UpdateCapacityFromRate(dt, growthRate float64) {
	a.capacity += growthRate * dt * (1 - a.capacity)
	if a.capacity > 1 {
		a.capacity = 1
	}
}

// UpdateConcentration applies the release law for this antibody's
// type: once capacity exceeds the release threshold, concentration is
// pulled toward capacity.
func (a *Antibody) UpdateConcentration(dt float64, p Params) {
	laws[a.typ].release(a, dt, p)
}

func decayBase(a *Antibody, dt float64, p Params) {
	if a.concentration > NonTrivialConcentration {
		a.concentration -= a.concentration * TwentyDayDecayRate * dt
	}
	// capacity relaxes toward the memory level, dropping below the
	// proliferation threshold in ~120 days from saturation
	if a.capacity > p.MemoryLevel {
		a.capacity -= (a.capacity - p.MemoryLevel) * p.HyperimmuneDecayRate * dt
	}
}

// decayCSP lets boosted concentrations above capacity drain on the CSP
// day constant before the base law takes over.
func decayCSP(a *Antibody, dt float64, p Params) {
	if a.concentration > a.capacity {
		a.concentration -= a.concentration * dt / p.CSPDecayDays
		return
	}
	decayBase(a, dt, p)
}

func growBase(a *Antibody, dt float64, p Params, invMicrolitersBlood float64) {
	stim := float64(a.antigenCount) * invMicrolitersBlood
	a.capacity += p.MSP1GrowthRate * dt * (1 - a.capacity) * sigmoid.Basic(p.StimulationC50, stim)

	// rapid B cell proliferation above a threshold given stimulation
	if a.capacity > ProliferationThreshold {
		a.capacity += (1 - a.capacity) * ProliferationRate * dt
	}

	if a.capacity > 1 {
		a.capacity = 1
	}
}

// growPfEMP1Minor grows at a fraction of the specific rate and sees a
// minimum stimulation floor even at zero antigen. Below the
// proliferation threshold the sigmoid term applies; above it only the
// proliferation term does.
func growPfEMP1Minor(a *Antibody, dt float64, p Params, invMicrolitersBlood float64) {
	minStim := p.StimulationC50 * p.MinimumAdaptedResponse
	rate := p.CapacityGrowthRate * p.NonSpecificGrowth

	if a.capacity <= ProliferationThreshold {
		stim := float64(a.antigenCount)*invMicrolitersBlood + minStim
		a.capacity += rate * dt * (1 - a.capacity) * sigmoid.Basic(p.StimulationC50, stim)
	} else {
		a.capacity += (1 - a.capacity) * ProliferationRate * dt
	}

	if a.capacity > 1 {
		a.capacity = 1
	}
}

// growPfEMP1Major is the full-rate variant-specific law. The clamp
// sits inside the pre-threshold branch only; the proliferation term is
// trusted to stay in range at simulation timesteps.
func growPfEMP1Major(a *Antibody, dt float64, p Params, invMicrolitersBlood float64) {
	minStim := p.StimulationC50 * p.MinimumAdaptedResponse

	if a.capacity <= ProliferationThreshold {
		stim := float64(a.antigenCount)*invMicrolitersBlood + minStim
		a.capacity += p.CapacityGrowthRate * dt * (1 - a.capacity) * sigmoid.Basic(p.StimulationC50, stim)

		if a.capacity > 1 {
			a.capacity = 1
		}
	} else {
		a.capacity += (1 - a.capacity) * ProliferationRate * dt
	}
}

func releaseBase(a *Antibody, dt float64, p Params) {
	// antibodies released after capacity passes the release threshold
	if a.capacity > ReleaseThreshold {
		a.concentration += (a.capacity - a.concentration) * ReleaseRate * dt
	}

	if a.concentration > a.capacity {
		a.concentration = a.capacity
	}
}

// releaseCSP decays boosted concentrations above capacity instead of
// clamping them, so a vaccine boost drains on the CSP day constant
// rather than snapping back to capacity.
func releaseCSP(a *Antibody, dt float64, p Params) {
	if a.concentration > a.capacity {
		a.concentration -= a.concentration * dt / p.CSPDecayDays
		return
	}
	releaseBase(a, dt, p)
}
