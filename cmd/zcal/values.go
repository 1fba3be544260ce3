package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
)

func NewValuesCommand() *cobra.Command {
	flags := &gridFlags{}
	jsonOut := false

	cmd := &cobra.Command{
		Use:   "values",
		Short: "Show the swept value of every square",
		Long: `Show which Z offset (or nozzle temperature) each square of the grid gets, without writing any G-code.

Use this after the print to map the best-looking square back to its value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}

			layout, err := calibration.Plan(cfg)
			if err != nil {
				return err
			}

			if jsonOut {
				return printValuesJSON(cmd, cfg, layout)
			}
			printValuesTable(cmd, cfg, layout)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print machine-readable JSON")

	return cmd
}

// printValuesTable lays the squares out the way you see them standing
// in front of the printer: the highest row of the bed comes first.
func printValuesTable(cmd *cobra.Command, cfg calibration.Config, layout *calibration.Layout) {
	if cfg.Sweep == calibration.SweepTemperature {
		cmd.Println(bold("Nozzle temperature per square (bed seen from the front):"))
	} else {
		cmd.Println(bold("Z offset per square (bed seen from the front):"))
	}

	for row := cfg.Rows - 1; row >= 0; row-- {
		line := " "
		for col := 0; col < cfg.Columns; col++ {
			cell := layout.Cells[row*cfg.Columns+col]
			if cfg.Sweep == calibration.SweepTemperature {
				line += fmt.Sprintf("  %2d: %4d", cell.Index+1, cell.Temperature)
			} else {
				line += fmt.Sprintf("  %2d: %6.3f", cell.Index+1, cell.ZOffset)
			}
		}
		cmd.Println(line)
	}
}
