package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
)

func runGenerate(cmd *cobra.Command, flags *gridFlags, output string) error {
	cfg, profile, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	out := output
	if !cmd.Flags().Changed("output") {
		out = profile.OutputPath(output)
	}

	layout, err := calibration.Plan(cfg)
	if err != nil {
		return err
	}
	program, err := calibration.Generate(cfg)
	if err != nil {
		return err
	}
	if err := program.WriteFile(out); err != nil {
		return err
	}

	cmd.Println(bold("Calibration grid:"))
	cmd.Printf("  Squares: %s\n", bold("%d (%d columns x %d rows)", len(layout.Cells), cfg.Columns, cfg.Rows))
	cmd.Printf("  Square size: %s\n", bold("%.1f mm, %d layers", layout.SquareSize, cfg.LayerCount()))
	cmd.Printf("  Grid origin: %s\n", bold("(%.1f, %.1f) mm", layout.OriginX, layout.OriginY))
	switch cfg.Sweep {
	case calibration.SweepTemperature:
		cmd.Printf("  Nozzle sweep: %s\n", bold("%d to %d degrees", cfg.NozzleTemp, cfg.NozzleTempEnd))
	default:
		cmd.Printf("  Z offset sweep: %s\n", bold("%.3f to %.3f mm", cfg.ZStart, cfg.ZEnd))
	}
	cmd.Printf("  Heated bed: %s\n", bool2Text(cfg.BedTemp > 0))
	cmd.Printf("  Output: %s\n", bold("%s", out))

	logrus.Infof("successfully wrote %d lines of G-code to %s", program.Len(), out)

	return nil
}
