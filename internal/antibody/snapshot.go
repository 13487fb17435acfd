package antibody

import "encoding/json"

// Snapshot is the serializable form of an antibody's full state. Field
// names are the persistence contract shared by the run store, JSONL
// export, and trace logs.
type Snapshot struct {
	Type           Type    `json:"type"`
	Variant        int     `json:"variant"`
	Capacity       float64 `json:"capacity"`
	Concentration  float64 `json:"concentration"`
	AntigenCount   int64   `json:"antigen_count"`
	AntigenPresent bool    `json:"antigen_present"`
}

// Snapshot captures the antibody's current state.
func (a *Antibody) Snapshot() Snapshot {
	return Snapshot{
		Type:           a.typ,
		Variant:        a.variant,
		Capacity:       a.capacity,
		Concentration:  a.concentration,
		AntigenCount:   a.antigenCount,
		AntigenPresent: a.antigenPresent,
	}
}

// FromSnapshot reconstructs an antibody from persisted state. Values
// are assigned verbatim with no clamping or re-validation, so states
// the laws permit only transiently (a boosted CSP concentration above
// capacity) survive a save/load cycle. Only the type is checked.
func FromSnapshot(s Snapshot) (*Antibody, error) {
	if _, err := ParseType(string(s.Type)); err != nil {
		return nil, err
	}
	return &Antibody{
		typ:            s.Type,
		variant:        s.Variant,
		capacity:       s.Capacity,
		concentration:  s.Concentration,
		antigenCount:   s.AntigenCount,
		antigenPresent: s.AntigenPresent,
	}, nil
}

// MarshalJSON serializes the antibody through its Snapshot form.
func (a *Antibody) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Snapshot())
}

// UnmarshalJSON restores the antibody from its Snapshot form.
func (a *Antibody) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*a = *restored
	return nil
}
