package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/preview"
)

func NewPreviewCommand() *cobra.Command {
	flags := &gridFlags{}
	output := ""
	scale := 4.0

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the grid layout to a PNG",
		Long: `Render the planned grid to a PNG image instead of writing G-code.

Each square is drawn where it will print, labeled with its number and swept value, so the layout and bed fit can be checked before printing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scale <= 0 {
				return fmt.Errorf("invalid scale %g: must be positive", scale)
			}

			cfg, _, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}

			layout, err := calibration.Plan(cfg)
			if err != nil {
				return err
			}

			img := preview.Render(cfg, layout, scale)
			if err := preview.WriteFile(output, img); err != nil {
				return err
			}

			logrus.Infof("successfully rendered %d squares to %s", len(layout.Cells), output)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "calibration_grid.png", "output PNG path")
	cmd.Flags().Float64Var(&scale, "scale", scale, "pixels per millimeter")

	return cmd
}
