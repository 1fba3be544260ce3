package calibration

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Validate checks that the configuration describes a printable grid.
// Every failure wraps ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Rows < 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "rows must be at least 1, got %d", c.Rows)
	}
	if c.Columns < 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "columns must be at least 1, got %d", c.Columns)
	}
	if c.BedWidth <= 0 || c.BedDepth <= 0 || c.BedHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration,
			"bed dimensions must be positive, got %gx%gx%g mm", c.BedWidth, c.BedDepth, c.BedHeight)
	}
	if c.LayerHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "layer height must be positive, got %g mm", c.LayerHeight)
	}
	if c.LineWidth <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "line width must be positive, got %g mm", c.LineWidth)
	}
	if c.SquareHeight < c.LayerHeight {
		return errors.Wrapf(ErrInvalidConfiguration,
			"square height %g mm must cover at least one %g mm layer", c.SquareHeight, c.LayerHeight)
	}
	if c.SquareSize < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "square size must not be negative, got %g mm", c.SquareSize)
	}
	if c.Spacing < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "spacing must not be negative, got %g mm", c.Spacing)
	}
	if c.Margin < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "margin must not be negative, got %g mm", c.Margin)
	}
	if c.ExtrusionMultiplier <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration,
			"extrusion multiplier must be positive, got %g", c.ExtrusionMultiplier)
	}
	if c.FilamentDiameter <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration,
			"filament diameter must be positive, got %g mm", c.FilamentDiameter)
	}
	if c.PrintSpeed <= 0 || c.TravelSpeed <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration,
			"speeds must be positive, got print %g and travel %g mm/s", c.PrintSpeed, c.TravelSpeed)
	}
	if c.NozzleTemp < 0 || c.NozzleTempEnd < 0 || c.BedTemp < 0 {
		return errors.Wrapf(ErrInvalidConfiguration,
			"temperatures must not be negative, got nozzle %d..%d and bed %d",
			c.NozzleTemp, c.NozzleTempEnd, c.BedTemp)
	}

	switch c.Sweep {
	case SweepZOffset:
	case SweepTemperature:
		if c.NozzleTemp <= 0 || c.NozzleTempEnd <= 0 {
			return errors.Wrapf(ErrInvalidConfiguration,
				"temperature sweep needs both start and end nozzle temperatures, got %d..%d",
				c.NozzleTemp, c.NozzleTempEnd)
		}
	default:
		return errors.Wrapf(ErrInvalidConfiguration, "unknown sweep mode %q", c.Sweep)
	}

	return nil
}

// Plan validates the configuration, lays the squares out on the bed and
// assigns each one its swept value.
func Plan(c Config) (*Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := c.Rows * c.Columns

	size := c.SquareSize
	var originX, originY, pitchX, pitchY float64
	if size > 0 {
		pitchX = size + c.Spacing
		pitchY = pitchX
		gridW := float64(c.Columns)*size + float64(c.Columns-1)*c.Spacing
		gridH := float64(c.Rows)*size + float64(c.Rows-1)*c.Spacing
		originX = (c.BedWidth - gridW) / 2
		originY = (c.BedDepth - gridH) / 2
		if c.StartX >= 0 {
			originX = c.StartX
		}
		if c.StartY >= 0 {
			originY = c.StartY
		}
	} else {
		// Derive the largest square that fits the usable area, then
		// center each square in its grid cell.
		pitchX = (c.BedWidth - 2*c.Margin) / float64(c.Columns)
		pitchY = (c.BedDepth - 2*c.Margin) / float64(c.Rows)
		size = math.Min(pitchX, pitchY) - c.Spacing
		if size <= 0 {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"%dx%d squares do not fit a %gx%g mm bed with %g mm margin and %g mm spacing",
				c.Columns, c.Rows, c.BedWidth, c.BedDepth, c.Margin, c.Spacing)
		}
		originX = c.Margin + (pitchX-size)/2
		originY = c.Margin + (pitchY-size)/2
	}

	width := float64(c.Columns-1)*pitchX + size
	height := float64(c.Rows-1)*pitchY + size
	if originX < 0 || originY < 0 ||
		originX+width > c.BedWidth+1e-9 || originY+height > c.BedDepth+1e-9 {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"grid spans %.1fx%.1f mm at (%.1f, %.1f) and leaves the %gx%g mm bed",
			width, height, originX, originY, c.BedWidth, c.BedDepth)
	}

	var zs, temps []float64
	switch c.Sweep {
	case SweepTemperature:
		temps = sweepValues(float64(c.NozzleTemp), float64(c.NozzleTempEnd), n)
	default:
		zs = sweepValues(c.ZStart, c.ZEnd, n)
	}

	layout := &Layout{
		OriginX:    originX,
		OriginY:    originY,
		Width:      width,
		Height:     height,
		SquareSize: size,
		PitchX:     pitchX,
		PitchY:     pitchY,
		Cells:      make([]Cell, 0, n),
	}

	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Columns; col++ {
			idx := row*c.Columns + col
			cell := Cell{
				Index:  idx,
				Row:    row,
				Column: col,
				X:      originX + float64(col)*pitchX,
				Y:      originY + float64(row)*pitchY,
			}
			if c.Sweep == SweepTemperature {
				cell.ZOffset = round3(c.ZStart)
				cell.Temperature = int(math.Round(temps[idx]))
			} else {
				cell.ZOffset = round3(zs[idx])
			}
			layout.Cells = append(layout.Cells, cell)
		}
	}

	return layout, nil
}

// sweepValues interpolates n values linearly from start to end, both
// inclusive. A single-square grid gets the start value.
func sweepValues(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// round3 rounds to three decimals and normalizes negative zero so a
// swept value never prints as -0.000.
func round3(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}
