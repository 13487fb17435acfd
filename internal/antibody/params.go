package antibody

import "fmt"

// Params holds the host-level tunables shared by every antibody in a
// repertoire. Values are read-only during an update; pass by value.
type Params struct {
	// MemoryLevel is the capacity floor that immune memory decays
	// toward after exposure ends.
	MemoryLevel float64 `json:"memory_level" yaml:"memory_level" env:"HUMORAL_MEMORY_LEVEL"`

	// HyperimmuneDecayRate is the per-day rate at which capacity above
	// MemoryLevel relaxes back down toward it.
	HyperimmuneDecayRate float64 `json:"hyperimmune_decay_rate" yaml:"hyperimmune_decay_rate" env:"HUMORAL_HYPERIMMUNE_DECAY_RATE"`

	// MSP1GrowthRate is the per-day capacity growth rate for the base
	// law used by MSP1 (and CSP when driven through the antigen path).
	MSP1GrowthRate float64 `json:"msp1_growth_rate" yaml:"msp1_growth_rate" env:"HUMORAL_MSP1_GROWTH_RATE"`

	// StimulationC50 is the antigen density giving half-maximal
	// stimulation in the capacity sigmoid.
	StimulationC50 float64 `json:"stimulation_c50" yaml:"stimulation_c50" env:"HUMORAL_STIMULATION_C50"`

	// CSPDecayDays is the day constant for draining boosted CSP
	// concentrations that sit above capacity.
	CSPDecayDays float64 `json:"csp_decay_days" yaml:"csp_decay_days" env:"HUMORAL_CSP_DECAY_DAYS"`

	// CapacityGrowthRate is the per-day variant-specific growth rate
	// used by the PfEMP1 laws.
	CapacityGrowthRate float64 `json:"capacity_growth_rate" yaml:"capacity_growth_rate" env:"HUMORAL_CAPACITY_GROWTH_RATE"`

	// NonSpecificGrowth is the fraction of CapacityGrowthRate granted
	// to minor-epitope responses.
	NonSpecificGrowth float64 `json:"non_specific_growth" yaml:"non_specific_growth" env:"HUMORAL_NON_SPECIFIC_GROWTH"`

	// MinimumAdaptedResponse is the baseline stimulation floor for
	// PfEMP1 responses, as a fraction of StimulationC50.
	MinimumAdaptedResponse float64 `json:"minimum_adapted_response" yaml:"minimum_adapted_response" env:"HUMORAL_MINIMUM_ADAPTED_RESPONSE"`
}

// DefaultParams returns the reference calibration. MemoryLevel and
// HyperimmuneDecayRate are tuned so saturated capacity drops below the
// proliferation threshold roughly 120 days after exposure ends.
func DefaultParams() Params {
	return Params{
		MemoryLevel:            0.34,
		HyperimmuneDecayRate:   0.0165,
		MSP1GrowthRate:         0.02,
		StimulationC50:         30,
		CSPDecayDays:           90,
		CapacityGrowthRate:     0.09,
		NonSpecificGrowth:      0.5,
		MinimumAdaptedResponse: 0.05,
	}
}

// Validate checks that all parameters are in their legal ranges.
func (p Params) Validate() error {
	if p.MemoryLevel < 0 || p.MemoryLevel >= 1 {
		return fmt.Errorf("memory_level must be in [0, 1), got %v", p.MemoryLevel)
	}
	if p.HyperimmuneDecayRate <= 0 || p.HyperimmuneDecayRate > 1 {
		return fmt.Errorf("hyperimmune_decay_rate must be in (0, 1], got %v", p.HyperimmuneDecayRate)
	}
	if p.MSP1GrowthRate <= 0 {
		return fmt.Errorf("msp1_growth_rate must be positive, got %v", p.MSP1GrowthRate)
	}
	if p.StimulationC50 <= 0 {
		return fmt.Errorf("stimulation_c50 must be positive, got %v", p.StimulationC50)
	}
	if p.CSPDecayDays < 1 {
		return fmt.Errorf("csp_decay_days must be at least 1, got %v", p.CSPDecayDays)
	}
	if p.CapacityGrowthRate <= 0 {
		return fmt.Errorf("capacity_growth_rate must be positive, got %v", p.CapacityGrowthRate)
	}
	if p.NonSpecificGrowth <= 0 || p.NonSpecificGrowth > 1 {
		return fmt.Errorf("non_specific_growth must be in (0, 1], got %v", p.NonSpecificGrowth)
	}
	if p.MinimumAdaptedResponse < 0 || p.MinimumAdaptedResponse > 1 {
		return fmt.Errorf("minimum_adapted_response must be in [0, 1], got %v", p.MinimumAdaptedResponse)
	}
	return nil
}
