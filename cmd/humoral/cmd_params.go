package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the effective parameter bundle",
		Long: `Params prints the immunological parameters a run would use after
applying the config file and environment overrides. Loading fails if
the effective bundle is invalid, so a clean exit doubles as
validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg.Params)
			}

			p := cfg.Params
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "memory_level:             %g\n", p.MemoryLevel)
			fmt.Fprintf(out, "hyperimmune_decay_rate:   %g\n", p.HyperimmuneDecayRate)
			fmt.Fprintf(out, "msp1_growth_rate:         %g\n", p.MSP1GrowthRate)
			fmt.Fprintf(out, "stimulation_c50:          %g\n", p.StimulationC50)
			fmt.Fprintf(out, "csp_decay_days:           %g\n", p.CSPDecayDays)
			fmt.Fprintf(out, "capacity_growth_rate:     %g\n", p.CapacityGrowthRate)
			fmt.Fprintf(out, "non_specific_growth:      %g\n", p.NonSpecificGrowth)
			fmt.Fprintf(out, "minimum_adapted_response: %g\n", p.MinimumAdaptedResponse)
			return nil
		},
	}
	return cmd
}
