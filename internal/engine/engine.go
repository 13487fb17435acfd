// Package engine executes exposure scenarios: it drives the per-day
// immune update loop over a host repertoire, records per-day snapshots
// to the run store, and reports per-family peaks.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kbretey/humoral/internal/antibody"
	"github.com/kbretey/humoral/internal/logging"
	"github.com/kbretey/humoral/internal/repertoire"
	"github.com/kbretey/humoral/internal/scenario"
	"github.com/kbretey/humoral/internal/store"
)

// Engine wires the parameter bundle, run store, and loggers into a
// scenario runner. One engine can execute many runs.
type Engine struct {
	params antibody.Params
	store  store.RunStore
	logger *slog.Logger
	trace  *logging.TraceLogger
}

// Peak is the highest capacity and concentration any antibody of a
// family reached during a run.
type Peak struct {
	Capacity      float64 `json:"capacity"`
	Concentration float64 `json:"concentration"`
}

// Result summarizes a completed run.
type Result struct {
	Run   store.Run              `json:"run"`
	Final []antibody.Snapshot    `json:"final"`
	Peaks map[antibody.Type]Peak `json:"peaks"`
}

// New creates an engine. The trace logger may be nil; the slog logger
// defaults to a discard logger when nil.
func New(params antibody.Params, rs store.RunStore, logger *slog.Logger, trace *logging.TraceLogger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{params: params, store: rs, logger: logger, trace: trace}
}

// Run executes a scenario day by day. Each day runs 1/dt steps of
// BeginStep, boosts and exposures and challenges, then the decay,
// growth, release sequence; the repertoire state is snapshotted to the
// store at the end of every day. Cancels between days on ctx.
func (e *Engine) Run(ctx context.Context, sc *scenario.Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	run := store.Run{
		ID:        ulid.Make().String(),
		Name:      sc.Name,
		CreatedAt: time.Now().UTC(),
		Days:      sc.Days,
		Dt:        sc.Dt,
		Params:    e.params,
	}
	if err := e.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}

	e.logger.Info("run started",
		"run_id", run.ID, "scenario", sc.Name, "days", sc.Days, "dt", sc.Dt)

	rep := repertoire.New(sc.NaiveCapacity)
	peaks := make(map[antibody.Type]Peak)
	stepsPerDay := int(math.Round(1 / sc.Dt))

	for day := 0; day < sc.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s cancelled at day %d: %w", run.ID, day, err)
		}

		for step := 0; step < stepsPerDay; step++ {
			rep.BeginStep()

			if step == 0 {
				for _, b := range sc.Boosts {
					if b.Day == day {
						rep.BoostConcentration(b.Family, b.Variant, b.Concentration)
						e.logger.Debug("concentration boost",
							"run_id", run.ID, "day", day, "family", b.Family, "variant", b.Variant, "value", b.Concentration)
					}
				}
			}

			for _, ex := range sc.Exposures {
				if ex.ActiveOn(day) {
					rep.Expose(ex.Family, ex.Variant, ex.AntigenCount)
				}
			}
			for _, ch := range sc.Challenges {
				if ch.ActiveOn(day) {
					rep.ChallengeCSP(sc.Dt, ch.GrowthRate)
				}
			}

			rep.Update(sc.Dt, e.params, sc.InvMicrolitersBlood)
		}

		snaps := rep.Snapshot()
		if err := e.store.SaveSnapshots(ctx, run.ID, day, snaps); err != nil {
			return nil, fmt.Errorf("saving day %d snapshots: %w", day, err)
		}
		e.traceDay(run.ID, day, snaps)

		for _, s := range snaps {
			p := peaks[s.Type]
			if s.Capacity > p.Capacity {
				p.Capacity = s.Capacity
			}
			if s.Concentration > p.Concentration {
				p.Concentration = s.Concentration
			}
			peaks[s.Type] = p
		}
	}

	final := rep.Snapshot()
	e.logger.Info("run complete",
		"run_id", run.ID, "scenario", sc.Name, "antibodies", len(final),
		"cytokine_signal", rep.CytokineStimulation(sc.InvMicrolitersBlood))

	return &Result{Run: run, Final: final, Peaks: peaks}, nil
}

// traceDay writes one JSONL event per antibody per day. Nil-safe via
// the trace logger.
func (e *Engine) traceDay(runID string, day int, snaps []antibody.Snapshot) {
	if e.trace == nil {
		return
	}
	for _, s := range snaps {
		e.trace.Log(map[string]any{
			"run_id":          runID,
			"day":             day,
			"family":          s.Type.String(),
			"variant":         s.Variant,
			"stage":           string(antibody.StageFor(s.Capacity)),
			"capacity":        s.Capacity,
			"concentration":   s.Concentration,
			"antigen_count":   s.AntigenCount,
			"antigen_present": s.AntigenPresent,
		})
	}
}
