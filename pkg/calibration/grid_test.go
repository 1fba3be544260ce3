package calibration

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlanCenteredGrid(t *testing.T) {
	layout, err := Plan(Default())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	if len(layout.Cells) != 12 {
		t.Fatalf("len(Cells) = %d, want 12", len(layout.Cells))
	}
	if !almostEqual(layout.OriginX, 77.5) || !almostEqual(layout.OriginY, 90) {
		t.Errorf("origin = (%g, %g), want (77.5, 90)", layout.OriginX, layout.OriginY)
	}
	if !almostEqual(layout.Width, 95) || !almostEqual(layout.Height, 70) {
		t.Errorf("span = %gx%g, want 95x70", layout.Width, layout.Height)
	}
	if !almostEqual(layout.SquareSize, 20) {
		t.Errorf("SquareSize = %g, want 20", layout.SquareSize)
	}
	if !almostEqual(layout.PitchX, 25) || !almostEqual(layout.PitchY, 25) {
		t.Errorf("pitch = (%g, %g), want (25, 25)", layout.PitchX, layout.PitchY)
	}

	first := layout.Cells[0]
	if first.Row != 0 || first.Column != 0 || !almostEqual(first.X, 77.5) || !almostEqual(first.Y, 90) {
		t.Errorf("first cell = %+v, want row 0 col 0 at (77.5, 90)", first)
	}
	second := layout.Cells[1]
	if second.Column != 1 || !almostEqual(second.X, 102.5) || !almostEqual(second.Y, 90) {
		t.Errorf("second cell = %+v, want col 1 at (102.5, 90)", second)
	}
	last := layout.Cells[11]
	if last.Row != 2 || last.Column != 3 || !almostEqual(last.X, 152.5) || !almostEqual(last.Y, 140) {
		t.Errorf("last cell = %+v, want row 2 col 3 at (152.5, 140)", last)
	}
}

func TestPlanDerivedSquareSize(t *testing.T) {
	cfg := Default()
	cfg.SquareSize = 0
	cfg.Rows = 5
	cfg.Columns = 5

	layout, err := Plan(cfg)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	if !almostEqual(layout.PitchX, 46) || !almostEqual(layout.PitchY, 46) {
		t.Errorf("pitch = (%g, %g), want (46, 46)", layout.PitchX, layout.PitchY)
	}
	if !almostEqual(layout.SquareSize, 41) {
		t.Errorf("SquareSize = %g, want 41", layout.SquareSize)
	}
	if !almostEqual(layout.OriginX, 12.5) || !almostEqual(layout.OriginY, 12.5) {
		t.Errorf("origin = (%g, %g), want (12.5, 12.5)", layout.OriginX, layout.OriginY)
	}
	if got := layout.OriginX + layout.Width; got > cfg.BedWidth {
		t.Errorf("grid reaches %g mm on a %g mm bed", got, cfg.BedWidth)
	}
}

func TestPlanStartOverride(t *testing.T) {
	cfg := Default()
	cfg.StartX = 30
	cfg.StartY = 40

	layout, err := Plan(cfg)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if !almostEqual(layout.OriginX, 30) || !almostEqual(layout.OriginY, 40) {
		t.Errorf("origin = (%g, %g), want (30, 40)", layout.OriginX, layout.OriginY)
	}
}

func TestPlanZOffsets(t *testing.T) {
	layout, err := Plan(Default())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	cells := layout.Cells
	if got := cells[0].ZOffset; got != -0.3 {
		t.Errorf("first offset = %g, want -0.3", got)
	}
	if got := cells[len(cells)-1].ZOffset; got != 0 {
		t.Errorf("last offset = %g, want 0", got)
	}
	if got := cells[1].ZOffset; got != -0.273 {
		t.Errorf("second offset = %g, want -0.273", got)
	}
	for i := 1; i < len(cells); i++ {
		if cells[i].ZOffset <= cells[i-1].ZOffset {
			t.Errorf("offsets not increasing at %d: %g then %g", i, cells[i-1].ZOffset, cells[i].ZOffset)
		}
	}
}

func TestPlanSingleSquare(t *testing.T) {
	cfg := Default()
	cfg.Rows = 1
	cfg.Columns = 1

	layout, err := Plan(cfg)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(layout.Cells) != 1 {
		t.Fatalf("len(Cells) = %d, want 1", len(layout.Cells))
	}
	if got := layout.Cells[0].ZOffset; got != cfg.ZStart {
		t.Errorf("single-square offset = %g, want %g", got, cfg.ZStart)
	}
}

func TestPlanDescendingSweep(t *testing.T) {
	cfg := Default()
	cfg.ZStart = 0.1
	cfg.ZEnd = -0.2

	layout, err := Plan(cfg)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	cells := layout.Cells
	if cells[0].ZOffset != 0.1 || cells[len(cells)-1].ZOffset != -0.2 {
		t.Errorf("endpoints = %g and %g, want 0.1 and -0.2",
			cells[0].ZOffset, cells[len(cells)-1].ZOffset)
	}
	for i := 1; i < len(cells); i++ {
		if cells[i].ZOffset >= cells[i-1].ZOffset {
			t.Errorf("offsets not decreasing at %d: %g then %g", i, cells[i-1].ZOffset, cells[i].ZOffset)
		}
	}
}

func TestPlanTemperatureSweep(t *testing.T) {
	cfg := Default()
	cfg.Sweep = SweepTemperature
	cfg.Rows = 2
	cfg.Columns = 2
	cfg.NozzleTemp = 200
	cfg.NozzleTempEnd = 230

	layout, err := Plan(cfg)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	want := []int{200, 210, 220, 230}
	for i, cell := range layout.Cells {
		if cell.Temperature != want[i] {
			t.Errorf("cell %d temperature = %d, want %d", i, cell.Temperature, want[i])
		}
		if cell.ZOffset != cfg.ZStart {
			t.Errorf("cell %d offset = %g, want fixed %g", i, cell.ZOffset, cfg.ZStart)
		}
	}
}

func TestPlanInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"zero columns", func(c *Config) { c.Columns = 0 }},
		{"no bed", func(c *Config) { c.BedWidth = 0 }},
		{"flat bed", func(c *Config) { c.BedHeight = 0 }},
		{"zero layer height", func(c *Config) { c.LayerHeight = 0 }},
		{"square shorter than a layer", func(c *Config) { c.SquareHeight = 0.1 }},
		{"negative spacing", func(c *Config) { c.Spacing = -1 }},
		{"negative square size", func(c *Config) { c.SquareSize = -5 }},
		{"zero print speed", func(c *Config) { c.PrintSpeed = 0 }},
		{"zero extrusion multiplier", func(c *Config) { c.ExtrusionMultiplier = 0 }},
		{"grid overflows bed", func(c *Config) { c.SquareSize = 300 }},
		{"start pushes grid off bed", func(c *Config) { c.StartX = 200 }},
		{"margin eats whole bed", func(c *Config) {
			c.SquareSize = 0
			c.Margin = 124
		}},
		{"temperature sweep without end", func(c *Config) {
			c.Sweep = SweepTemperature
			c.NozzleTempEnd = 0
		}},
		{"unknown sweep", func(c *Config) { c.Sweep = "spiral" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			layout, err := Plan(cfg)
			if err == nil {
				t.Fatal("Plan() should fail")
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error %v should match ErrInvalidConfiguration", err)
			}
			if layout != nil {
				t.Errorf("layout should be nil on error, got %+v", layout)
			}
		})
	}
}
