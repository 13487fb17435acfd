package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/kbretey/humoral/internal/antibody"
	"github.com/kbretey/humoral/internal/scenario"
	"github.com/kbretey/humoral/internal/store"
)

func infectionScenario() *scenario.Scenario {
	sc := &scenario.Scenario{
		Name:          "engine-test",
		Days:          60,
		NaiveCapacity: 0.1,
		Exposures: []scenario.Exposure{
			{Family: antibody.TypeMSP1, Variant: 0, FromDay: 0, ToDay: 29, AntigenCount: 1000000000},
			{Family: antibody.TypePfEMP1Major, Variant: 1, FromDay: 0, ToDay: 29, AntigenCount: 1000000000},
		},
	}
	sc.ApplyDefaults()
	return sc
}

func TestRunRecordsRunAndSnapshots(t *testing.T) {
	ctx := context.Background()
	s := store.NewInMemoryRunStore()
	e := New(antibody.DefaultParams(), s, nil, nil)

	res, err := e.Run(ctx, infectionScenario())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Run.ID == "" {
		t.Fatal("result has empty run ID")
	}

	run, err := s.GetRun(ctx, res.Run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run == nil || run.Name != "engine-test" {
		t.Fatalf("stored run = %+v, want engine-test", run)
	}

	// Two antibodies exist from day 0, so every day stores two rows.
	snaps, err := s.GetSnapshots(ctx, res.Run.ID)
	if err != nil {
		t.Fatalf("GetSnapshots: %v", err)
	}
	if want := 60 * 2; len(snaps) != want {
		t.Errorf("stored %d snapshot rows, want %d", len(snaps), want)
	}
	if snaps[len(snaps)-1].Day != 59 {
		t.Errorf("last snapshot day = %d, want 59", snaps[len(snaps)-1].Day)
	}
}

func TestRunGrowsAndReleasesUnderExposure(t *testing.T) {
	s := store.NewInMemoryRunStore()
	e := New(antibody.DefaultParams(), s, nil, nil)

	res, err := e.Run(context.Background(), infectionScenario())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, f := range res.Final {
		if f.Capacity <= 0.1 {
			t.Errorf("%s/%d: capacity %v did not grow past naive level", f.Type, f.Variant, f.Capacity)
		}
		if f.Capacity > 1 {
			t.Errorf("%s/%d: capacity %v above 1", f.Type, f.Variant, f.Capacity)
		}
		if f.Concentration > f.Capacity {
			t.Errorf("%s/%d: concentration %v above capacity %v", f.Type, f.Variant, f.Concentration, f.Capacity)
		}
	}

	peak := res.Peaks[antibody.TypePfEMP1Major]
	if peak.Concentration <= 0 {
		t.Errorf("pfemp1-major peak concentration = %v, want positive", peak.Concentration)
	}
	if peak.Capacity < res.Final[len(res.Final)-1].Capacity {
		t.Errorf("peak capacity %v below a recorded capacity", peak.Capacity)
	}
}

// After a CSP vaccine boost, the stored trajectory must show
// concentration above capacity on the boost day and then drain on the
// CSP day constant, never snapping back to capacity.
func TestRunCSPBoostDrainsGradually(t *testing.T) {
	ctx := context.Background()
	sc := &scenario.Scenario{
		Name:          "csp-boost",
		Days:          40,
		NaiveCapacity: 0.1,
		Boosts: []scenario.Boost{
			{Family: antibody.TypeCSP, Variant: 0, Day: 10, Concentration: 1.2},
		},
	}
	sc.ApplyDefaults()

	s := store.NewInMemoryRunStore()
	e := New(antibody.DefaultParams(), s, nil, nil)
	res, err := e.Run(ctx, sc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	snaps, err := s.GetSnapshots(ctx, res.Run.ID)
	if err != nil {
		t.Fatalf("GetSnapshots: %v", err)
	}

	// One CSP antibody only; snapshot index == day.
	if snaps[9].State.Concentration != 0 {
		t.Errorf("day 9 concentration = %v, want 0 before boost", snaps[9].State.Concentration)
	}
	prev := 1.2
	for day := 10; day < 40; day++ {
		c := snaps[day].State.Concentration
		if c >= prev {
			t.Fatalf("day %d: boosted concentration did not decrease: %v -> %v", day, prev, c)
		}
		if c <= snaps[day].State.Capacity {
			break // drained back under capacity, base law takes over
		}
		prev = c
	}
	if snaps[10].State.Concentration <= snaps[10].State.Capacity {
		t.Errorf("day 10 concentration %v not above capacity %v right after boost",
			snaps[10].State.Concentration, snaps[10].State.Capacity)
	}
}

func TestRunSubDayTimestep(t *testing.T) {
	sc := infectionScenario()
	sc.Dt = 0.25

	s := store.NewInMemoryRunStore()
	e := New(antibody.DefaultParams(), s, nil, nil)
	res, err := e.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Snapshots are per day regardless of step subdivision.
	snaps, err := s.GetSnapshots(context.Background(), res.Run.ID)
	if err != nil {
		t.Fatalf("GetSnapshots: %v", err)
	}
	if want := 60 * 2; len(snaps) != want {
		t.Errorf("stored %d snapshot rows, want %d", len(snaps), want)
	}
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	e := New(antibody.DefaultParams(), store.NewInMemoryRunStore(), nil, nil)
	_, err := e.Run(context.Background(), &scenario.Scenario{Name: "bad", Days: -1})
	if err == nil {
		t.Fatal("Run accepted an invalid scenario")
	}
	if !strings.Contains(err.Error(), "invalid scenario") {
		t.Errorf("error = %v, want invalid scenario wrap", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(antibody.DefaultParams(), store.NewInMemoryRunStore(), nil, nil)
	if _, err := e.Run(ctx, infectionScenario()); err == nil {
		t.Fatal("Run with cancelled context returned nil error")
	}
}
