package antibody

// Stage is a reporting label for where a response sits relative to the
// two capacity thresholds. Stages never feed back into the update
// laws; they exist for logs, traces, and CLI output.
type Stage string

const (
	// StageNaive: capacity at or below the release threshold, no
	// meaningful antibody secretion yet.
	StageNaive Stage = "naive"

	// StageSecreting: antibodies are being released but B cells have
	// not switched into rapid proliferation.
	StageSecreting Stage = "secreting"

	// StageProliferating: capacity above the proliferation threshold,
	// the rapid B cell expansion regime.
	StageProliferating Stage = "proliferating"
)

// Stage classifies the antibody's current capacity. Boundaries mirror
// the strict comparisons in the update laws: capacity exactly at a
// threshold belongs to the lower stage.
func (a *Antibody) Stage() Stage {
	return StageFor(a.capacity)
}

// StageFor classifies a raw capacity value. Snapshot consumers use this
// to label persisted states without rebuilding an Antibody.
func StageFor(capacity float64) Stage {
	switch {
	case capacity > ProliferationThreshold:
		return StageProliferating
	case capacity > ReleaseThreshold:
		return StageSecreting
	default:
		return StageNaive
	}
}
