// Package antibody models the state and update laws of a single
// adaptive immune response against one malaria antigen variant.
//
// An Antibody tracks two continuous quantities on a normalized [0, 1]
// scale: capacity (the B-cell population able to produce the antibody)
// and concentration (circulating antibody level). Antigen counters
// accumulate within a timestep and drive capacity growth through a
// saturating stimulation curve. Which growth and decay laws apply is
// decided by the antibody's Type; callers never branch on type
// themselves.
package antibody

// Antibody is the per-variant immune state. Fields are unexported so
// every mutation flows through the update laws; use New or a typed
// constructor to create one and FromSnapshot to restore persisted
// state.
type Antibody struct {
	typ            Type
	variant        int
	capacity       float64
	concentration  float64
	antigenCount   int64
	antigenPresent bool
}

// New creates an antibody of the given type against the given variant
// index. Capacity and concentration are taken as-is; the repertoire
// passes its configured naive capacity for first exposures. New panics
// on an unknown type: the type set is closed and an invalid value is a
// programming error, not an input error.
func New(typ Type, variant int, capacity, concentration float64) *Antibody {
	if !typ.valid() {
		panic("antibody: unknown type " + string(typ))
	}
	return &Antibody{
		typ:           typ,
		variant:       variant,
		capacity:      capacity,
		concentration: concentration,
	}
}

// NewCSP creates a circumsporozoite antibody. CSP responses are not
// variant-specific, so the variant index is fixed at zero.
func NewCSP(capacity, concentration float64) *Antibody {
	return New(TypeCSP, 0, capacity, concentration)
}

// NewMSP1 creates a merozoite surface protein 1 antibody.
func NewMSP1(variant int, capacity, concentration float64) *Antibody {
	return New(TypeMSP1, variant, capacity, concentration)
}

// NewPfEMP1Minor creates an antibody against minor PfEMP1 epitopes of
// the given variant.
func NewPfEMP1Minor(variant int, capacity, concentration float64) *Antibody {
	return New(TypePfEMP1Minor, variant, capacity, concentration)
}

// NewPfEMP1Major creates an antibody against the major PfEMP1 surface
// antigen of the given variant.
func NewPfEMP1Major(variant int, capacity, concentration float64) *Antibody {
	return New(TypePfEMP1Major, variant, capacity, concentration)
}

// Type returns the antigen family this antibody responds to.
func (a *Antibody) Type() Type {
	return a.typ
}

// Variant returns the antigen variant index within the family.
func (a *Antibody) Variant() int {
	return a.variant
}

// Capacity returns the current antibody capacity.
func (a *Antibody) Capacity() float64 {
	return a.capacity
}

// Concentration returns the current antibody concentration.
func (a *Antibody) Concentration() float64 {
	return a.concentration
}

// AntigenCount returns the antigen accumulated in the current timestep.
func (a *Antibody) AntigenCount() int64 {
	return a.antigenCount
}

// AntigenPresent reports whether any antigen was registered in the
// current timestep.
func (a *Antibody) AntigenPresent() bool {
	return a.antigenPresent
}

// SetCapacity overwrites capacity without clamping. Trusted callers
// only: boosts and state restoration set values the update laws would
// never produce, and validating here would mask those flows.
func (a *Antibody) SetCapacity(c float64) {
	a.capacity = c
}

// SetConcentration overwrites concentration without clamping. Vaccine
// boosts deliberately push concentration above capacity.
func (a *Antibody) SetConcentration(c float64) {
	a.concentration = c
}

// ResetCounters clears the accumulated antigen count and presence flag.
// The repertoire calls this at the start of every timestep before new
// exposures are registered.
func (a *Antibody) ResetCounters() {
	a.antigenCount = 0
	a.antigenPresent = false
}

// IncreaseAntigenCount adds newly encountered antigen to the current
// timestep's counter and marks antigen as present. Zero or negative
// counts are ignored and do not set the presence flag.
func (a *Antibody) IncreaseAntigenCount(n int64) {
	if n <= 0 {
		return
	}
	a.antigenCount += n
	a.antigenPresent = true
}

// StimulateCytokines returns this antibody's contribution to the
// innate inflammatory signal: antigen density scaled by how much of
// the response is still unneutralized. A fully saturated response
// (concentration 1) contributes nothing regardless of antigen load.
func (a *Antibody) StimulateCytokines(invMicrolitersBlood float64) float64 {
	return (1 - a.concentration) * float64(a.antigenCount) * invMicrolitersBlood
}
