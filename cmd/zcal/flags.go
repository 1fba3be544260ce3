package main

import (
	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/config"
)

// gridFlags holds every grid tunable so the root, values and preview
// commands share one flag surface.
type gridFlags struct {
	bedWidth  float64
	bedDepth  float64
	bedHeight float64

	rows    int
	columns int

	sweep  string
	zStart float64
	zEnd   float64

	nozzleTemp    int
	nozzleTempEnd int
	bedTemp       int

	squareSize float64
	spacing    float64
	margin     float64
	startX     float64
	startY     float64

	squareHeight float64
	layerHeight  float64
	lineWidth    float64

	extrusionMultiplier float64
	filamentDiameter    float64

	printSpeed  float64
	travelSpeed float64
}

func (f *gridFlags) bind(cmd *cobra.Command) {
	def := calibration.Default()
	fs := cmd.Flags()

	fs.Float64Var(&f.bedWidth, "bed-width", def.BedWidth, "printable bed width in mm")
	fs.Float64Var(&f.bedDepth, "bed-depth", def.BedDepth, "printable bed depth in mm")
	fs.Float64Var(&f.bedHeight, "bed-height", def.BedHeight, "printable bed height in mm")
	fs.IntVar(&f.rows, "rows", def.Rows, "grid rows")
	fs.IntVar(&f.columns, "columns", def.Columns, "grid columns")
	fs.StringVar(&f.sweep, "sweep", string(def.Sweep), "swept parameter (zoffset or temperature)")
	fs.Float64Var(&f.zStart, "z-start", def.ZStart, "Z offset of the first square in mm")
	fs.Float64Var(&f.zEnd, "z-end", def.ZEnd, "Z offset of the last square in mm")
	fs.IntVar(&f.nozzleTemp, "nozzle-temp", def.NozzleTemp, "nozzle temperature in degrees Celsius (0 leaves the hotend alone)")
	fs.IntVar(&f.nozzleTempEnd, "nozzle-temp-end", def.NozzleTempEnd, "nozzle temperature of the last square for temperature sweeps")
	fs.IntVar(&f.bedTemp, "bed-temp", def.BedTemp, "bed temperature in degrees Celsius (0 leaves the bed alone)")
	fs.Float64Var(&f.squareSize, "square-size", def.SquareSize, "square side in mm (0 derives the largest size that fits)")
	fs.Float64Var(&f.spacing, "spacing", def.Spacing, "gap between squares in mm")
	fs.Float64Var(&f.margin, "margin", def.Margin, "bed margin for derived layouts in mm")
	fs.Float64Var(&f.startX, "start-x", def.StartX, "grid origin X in mm (negative centers the grid)")
	fs.Float64Var(&f.startY, "start-y", def.StartY, "grid origin Y in mm (negative centers the grid)")
	fs.Float64Var(&f.squareHeight, "square-height", def.SquareHeight, "square height in mm")
	fs.Float64Var(&f.layerHeight, "layer-height", def.LayerHeight, "layer height in mm")
	fs.Float64Var(&f.lineWidth, "line-width", def.LineWidth, "extrusion line width in mm")
	fs.Float64Var(&f.extrusionMultiplier, "extrusion-multiplier", def.ExtrusionMultiplier, "extrusion flow multiplier")
	fs.Float64Var(&f.filamentDiameter, "filament-diameter", def.FilamentDiameter, "filament diameter in mm")
	fs.Float64Var(&f.printSpeed, "print-speed", def.PrintSpeed, "printing speed in mm/s")
	fs.Float64Var(&f.travelSpeed, "travel-speed", def.TravelSpeed, "travel speed in mm/s")
}

// apply copies every flag the user actually set onto cfg. Untouched
// flags defer to the profile and the defaults.
func (f *gridFlags) apply(cmd *cobra.Command, cfg *calibration.Config) {
	set := func(name string, fn func()) {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}

	set("bed-width", func() { cfg.BedWidth = f.bedWidth })
	set("bed-depth", func() { cfg.BedDepth = f.bedDepth })
	set("bed-height", func() { cfg.BedHeight = f.bedHeight })
	set("rows", func() { cfg.Rows = f.rows })
	set("columns", func() { cfg.Columns = f.columns })
	set("sweep", func() { cfg.Sweep = calibration.Sweep(f.sweep) })
	set("z-start", func() { cfg.ZStart = f.zStart })
	set("z-end", func() { cfg.ZEnd = f.zEnd })
	set("nozzle-temp", func() { cfg.NozzleTemp = f.nozzleTemp })
	set("nozzle-temp-end", func() { cfg.NozzleTempEnd = f.nozzleTempEnd })
	set("bed-temp", func() { cfg.BedTemp = f.bedTemp })
	set("square-size", func() { cfg.SquareSize = f.squareSize })
	set("spacing", func() { cfg.Spacing = f.spacing })
	set("margin", func() { cfg.Margin = f.margin })
	set("start-x", func() { cfg.StartX = f.startX })
	set("start-y", func() { cfg.StartY = f.startY })
	set("square-height", func() { cfg.SquareHeight = f.squareHeight })
	set("layer-height", func() { cfg.LayerHeight = f.layerHeight })
	set("line-width", func() { cfg.LineWidth = f.lineWidth })
	set("extrusion-multiplier", func() { cfg.ExtrusionMultiplier = f.extrusionMultiplier })
	set("filament-diameter", func() { cfg.FilamentDiameter = f.filamentDiameter })
	set("print-speed", func() { cfg.PrintSpeed = f.printSpeed })
	set("travel-speed", func() { cfg.TravelSpeed = f.travelSpeed })
}

// resolveConfig layers the printer profile over the built-in defaults,
// then the command-line flags over both.
func resolveConfig(cmd *cobra.Command, f *gridFlags) (calibration.Config, *config.Profile, error) {
	profile, err := config.Load(configPath)
	if err != nil {
		return calibration.Config{}, nil, err
	}

	cfg := profile.Apply(calibration.Default())
	f.apply(cmd, &cfg)

	return cfg, profile, nil
}
