package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kbretey/humoral/internal/antibody"
	"github.com/kbretey/humoral/internal/engine"
	"github.com/kbretey/humoral/internal/logging"
	"github.com/kbretey/humoral/internal/scenario"
	"github.com/kbretey/humoral/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute an exposure scenario and record it",
		Long: `Run loads a scenario file, executes the day-by-day immune update
loop against a fresh host repertoire, and records per-day snapshots to
the run database. The run ID is printed on completion and can be used
with 'humoral runs export'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			sc, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading scenario: %w", err)
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			trace := logging.NewTraceLogger(cfg.Logging.TraceDir, cfg.Logging.Level)
			defer trace.Close()

			rs, err := store.NewSQLiteRunStore(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("opening run store: %w", err)
			}
			defer rs.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			e := engine.New(cfg.Params, rs, logger, trace)
			res, err := e.Run(ctx, sc)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s complete: %q, %d days (dt=%g)\n", res.Run.ID, res.Run.Name, res.Run.Days, res.Run.Dt)
			fmt.Fprintf(out, "\nFinal repertoire (%d antibodies):\n", len(res.Final))
			for _, s := range res.Final {
				fmt.Fprintf(out, "  %-14s variant %-3d %-13s capacity %.4f  concentration %.4f\n",
					s.Type, s.Variant, antibody.StageFor(s.Capacity), s.Capacity, s.Concentration)
			}
			if len(res.Peaks) > 0 {
				fmt.Fprintf(out, "\nPer-family peaks:\n")
				for _, typ := range peakOrder(res) {
					p := res.Peaks[typ]
					fmt.Fprintf(out, "  %-14s capacity %.4f  concentration %.4f\n", typ, p.Capacity, p.Concentration)
				}
			}
			return nil
		},
	}
	return cmd
}

// peakOrder returns the families with recorded peaks in canonical type
// order, so output is stable run to run.
func peakOrder(res *engine.Result) []antibody.Type {
	var out []antibody.Type
	for _, typ := range antibody.Types() {
		if _, ok := res.Peaks[typ]; ok {
			out = append(out, typ)
		}
	}
	return out
}
