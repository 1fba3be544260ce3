package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/gcode"
)

var (
	logLevel   = "info"
	configPath = "zcal.json"
)

const defaultOutput = "z_offset_calibration.gcode"

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, calibration.ErrInvalidConfiguration) {
		fmt.Fprintln(os.Stderr, "\nError: this configuration cannot be printed")
		fmt.Fprintln(os.Stderr, "  - Check the flags you passed and the profile ("+configPath+")")
		fmt.Fprintln(os.Stderr, "  - 'zcal config show' prints the resolved configuration")
	} else if errors.Is(err, gcode.ErrWriteFailure) {
		fmt.Fprintln(os.Stderr, "\nError: the G-code file could not be written")
		fmt.Fprintln(os.Stderr, "  - Does the output directory exist? Do you have write permission there?")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	flags := &gridFlags{}
	output := defaultOutput

	cmd := &cobra.Command{
		Use:   "zcal",
		Short: "zcal generates first-layer calibration G-code for 3D printers",
		Long: `zcal prints a grid of single-wall squares, each with its own Z offset (or nozzle temperature), so the best setting can be read straight off the bed after one print.

Running zcal without a subcommand writes the G-code file.

Website: https://github.com/charlie0129/zcal
Report issues: https://github.com/charlie0129/zcal/issues`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags, output)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "printer profile path")

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput, "output G-code path")

	cmd.AddCommand(
		NewVersionCommand(),
		NewValuesCommand(),
		NewPreviewCommand(),
		NewConfigCommand(),
	)

	return cmd
}
