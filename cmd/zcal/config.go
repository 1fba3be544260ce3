package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the printer profile",
		Long: `Manage the printer profile, a JSON file layered between the built-in defaults and the command-line flags.

A profile usually pins printer facts (bed size, filament diameter) so each run only needs flags for the values being tuned.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write a starter profile with every default spelled out",
			RunE: func(_ *cobra.Command, _ []string) error {
				if _, err := os.Stat(configPath); err == nil {
					return fmt.Errorf("profile %s already exists, remove it first", configPath)
				}

				if err := config.FromConfig(calibration.Default(), defaultOutput).Save(configPath); err != nil {
					return err
				}

				logrus.Infof("successfully wrote starter profile to %s", configPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the resolved configuration",
			Long:  `Show the configuration that generation would use: the built-in defaults with the profile applied on top.`,
			RunE: func(cmd *cobra.Command, _ []string) error {
				profile, err := config.Load(configPath)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile.Apply(calibration.Default()))
			},
		},
	)

	return cmd
}
