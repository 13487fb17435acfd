package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbretey/humoral/internal/antibody"
)

func validScenario() Scenario {
	return Scenario{
		Name:                "primary-infection",
		Days:                120,
		Dt:                  1,
		NaiveCapacity:       0.1,
		InvMicrolitersBlood: 2e-7,
		Exposures: []Exposure{
			{Family: antibody.TypeMSP1, Variant: 0, FromDay: 0, ToDay: 30, AntigenCount: 100000},
			{Family: antibody.TypePfEMP1Major, Variant: 3, FromDay: 5, ToDay: 40, AntigenCount: 50000},
		},
		Challenges: []Challenge{
			{FromDay: 0, ToDay: 10, GrowthRate: 0.05},
		},
		Boosts: []Boost{
			{Family: antibody.TypeCSP, Variant: 0, Day: 60, Concentration: 1.2},
		},
	}
}

func TestValidateAcceptsWellFormedScenario(t *testing.T) {
	sc := validScenario()
	if err := sc.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"empty name", func(s *Scenario) { s.Name = "" }},
		{"zero days", func(s *Scenario) { s.Days = 0 }},
		{"zero dt", func(s *Scenario) { s.Dt = 0 }},
		{"dt above one", func(s *Scenario) { s.Dt = 2 }},
		{"naive capacity above one", func(s *Scenario) { s.NaiveCapacity = 1.5 }},
		{"zero blood volume factor", func(s *Scenario) { s.InvMicrolitersBlood = 0 }},
		{"unknown exposure family", func(s *Scenario) { s.Exposures[0].Family = "ama1" }},
		{"negative variant", func(s *Scenario) { s.Exposures[0].Variant = -1 }},
		{"exposure past horizon", func(s *Scenario) { s.Exposures[0].ToDay = 120 }},
		{"inverted exposure range", func(s *Scenario) { s.Exposures[0].FromDay = 31 }},
		{"zero antigen count", func(s *Scenario) { s.Exposures[0].AntigenCount = 0 }},
		{"zero challenge rate", func(s *Scenario) { s.Challenges[0].GrowthRate = 0 }},
		{"boost past horizon", func(s *Scenario) { s.Boosts[0].Day = 120 }},
		{"zero boost concentration", func(s *Scenario) { s.Boosts[0].Concentration = 0 }},
	}
	for _, tt := range tests {
		sc := validScenario()
		tt.mutate(&sc)
		if err := sc.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	sc := Scenario{Name: "defaults", Days: 10}
	sc.ApplyDefaults()
	if sc.Dt != 1 {
		t.Errorf("Dt = %v, want default 1", sc.Dt)
	}
	if sc.InvMicrolitersBlood != DefaultInvMicrolitersBlood {
		t.Errorf("InvMicrolitersBlood = %v, want default %v", sc.InvMicrolitersBlood, DefaultInvMicrolitersBlood)
	}
}

func TestExposureActiveOn(t *testing.T) {
	e := Exposure{FromDay: 5, ToDay: 10}
	for day, want := range map[int]bool{4: false, 5: true, 10: true, 11: false} {
		if got := e.ActiveOn(day); got != want {
			t.Errorf("ActiveOn(%d) = %v, want %v", day, got, want)
		}
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `name: vaccine-boost
days: 90
naive_capacity: 0.1
exposures:
  - family: pfemp1-major
    variant: 2
    from_day: 0
    to_day: 20
    antigen_count: 80000
boosts:
  - family: csp
    day: 30
    concentration: 1.2
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "vaccine-boost" || sc.Days != 90 {
		t.Errorf("loaded %q/%d days, want vaccine-boost/90", sc.Name, sc.Days)
	}
	if sc.Dt != 1 {
		t.Errorf("Dt = %v, want defaulted 1", sc.Dt)
	}
	if len(sc.Exposures) != 1 || sc.Exposures[0].Family != antibody.TypePfEMP1Major {
		t.Errorf("exposures = %+v, want one pfemp1-major entry", sc.Exposures)
	}
	if len(sc.Boosts) != 1 || sc.Boosts[0].Concentration != 1.2 {
		t.Errorf("boosts = %+v, want one csp boost at 1.2", sc.Boosts)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: broken\ndays: -5\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a scenario with negative days")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file returned nil error")
	}
}
