package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbretey/humoral/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			rs, err := store.NewSQLiteRunStore(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("opening run store: %w", err)
			}
			defer rs.Close()

			runs, err := rs.ListRuns(context.Background())
			if err != nil {
				return err
			}

			if jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-24s %s  %d days (dt=%g)\n",
					r.ID, r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Days, r.Dt)
			}
			return nil
		},
	}

	cmd.AddCommand(newRunsExportCmd())
	return cmd
}

func newRunsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a run's per-day snapshots as JSONL",
		Long: `Export streams every recorded snapshot of a run as one JSON object
per line, ordered by day then repertoire position. Output goes to
stdout unless --out is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")

			rs, err := store.NewSQLiteRunStore(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("opening run store: %w", err)
			}
			defer rs.Close()

			ctx := context.Background()
			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			n, err := store.ExportSnapshotsJSONL(ctx, rs, args[0], w)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d snapshot rows to %s\n", n, outPath)
			}
			return nil
		},
	}
	cmd.Flags().String("out", "", "Write JSONL to this file instead of stdout")
	return cmd
}
