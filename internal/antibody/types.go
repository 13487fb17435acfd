package antibody

import "fmt"

// Type identifies the antigen family an antibody responds to. The set
// is closed: every family carries its own update laws and adding one
// means adding a law set, not just a constant.
type Type string

const (
	// TypeCSP targets the circumsporozoite protein presented during the
	// pre-erythrocytic stage. Its concentration may exceed capacity after
	// a vaccine boost and decays on a configurable day constant.
	TypeCSP Type = "csp"

	// TypeMSP1 targets merozoite surface protein 1 and follows the base
	// laws with the MSP1-specific growth rate.
	TypeMSP1 Type = "msp1"

	// TypePfEMP1Minor targets minor (non-dominant) PfEMP1 surface
	// epitopes. Growth is scaled down by the non-specific growth
	// fraction and offset by a minimum adapted stimulation floor.
	TypePfEMP1Minor Type = "pfemp1-minor"

	// TypePfEMP1Major targets major PfEMP1 variant surface antigens,
	// the primary drivers of variant-specific immunity.
	TypePfEMP1Major Type = "pfemp1-major"
)

// Types returns all antibody types in canonical order. The order is
// stable and shared by repertoire iteration and persistence.
func Types() []Type {
	return []Type{TypeCSP, TypeMSP1, TypePfEMP1Minor, TypePfEMP1Major}
}

// ParseType converts a string token into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.valid() {
		return "", fmt.Errorf("unknown antibody type: %q", s)
	}
	return t, nil
}

// String returns the wire token for the type.
func (t Type) String() string {
	return string(t)
}

func (t Type) valid() bool {
	switch t {
	case TypeCSP, TypeMSP1, TypePfEMP1Minor, TypePfEMP1Major:
		return true
	}
	return false
}
