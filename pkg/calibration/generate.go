package calibration

import (
	"math"

	"github.com/charlie0129/zcal/pkg/gcode"
)

const (
	// Feeds in mm/min. Print and travel feeds come from the
	// configuration instead.
	layerFeed     = 100
	liftFeed      = 5000
	finalLiftFeed = 1000
	retractFeed   = 2400

	// Filament pulled back at the end of the print, in mm.
	retractLength = 2.0

	// Prime line position along the left bed edge, in mm.
	primeX    = 2.0
	primeYMin = 10.0
	primeYMax = 110.0
)

// Generate plans the grid and renders the whole print as G-code. It
// performs no I/O; callers decide where the program goes.
func Generate(c Config) (*gcode.Program, error) {
	layout, err := Plan(c)
	if err != nil {
		return nil, err
	}

	em := &emitter{
		p:          gcode.NewProgram(),
		cfg:        c,
		size:       layout.SquareSize,
		perMM:      extrusionPerMM(c),
		clearZ:     travelZ(c),
		travelFeed: int(c.TravelSpeed * 60),
		printFeed:  int(c.PrintSpeed * 60),
		layers:     c.LayerCount(),
	}

	em.setup()
	em.prime()
	for _, cell := range layout.Cells {
		em.square(cell)
	}
	em.teardown()

	return em.p, nil
}

// emitter carries the mutable print state, most importantly the
// absolute filament position, across the emission phases.
type emitter struct {
	p   *gcode.Program
	cfg Config

	e          float64
	size       float64
	perMM      float64
	clearZ     float64
	travelFeed int
	printFeed  int
	layers     int
}

func (em *emitter) setup() {
	c := em.cfg
	p := em.p

	p.MillimeterUnits()
	switch c.Sweep {
	case SweepTemperature:
		p.Commentf("Nozzle Temperature Calibration G-code")
	default:
		p.Commentf("Z Offset Calibration G-code")
	}
	p.AbsolutePositioning()
	p.AbsoluteExtrusion()
	if c.NozzleTemp > 0 {
		p.SetNozzleTemperature(c.NozzleTemp)
	}
	if c.BedTemp > 0 {
		p.SetBedTemperature(c.BedTemp)
	}
	if c.NozzleTemp > 0 {
		p.WaitNozzleTemperature(c.NozzleTemp)
	}
	if c.BedTemp > 0 {
		p.WaitBedTemperature(c.BedTemp)
	}
	p.HomeAll()
	p.LiftZ(em.clearZ, liftFeed)
}

// prime draws a short line along the left bed edge so the nozzle is
// flowing before the first square. Beds too small for the line skip it.
func (em *emitter) prime() {
	c := em.cfg

	yTo := math.Min(c.BedDepth-primeYMin, primeYMax)
	if yTo <= primeYMin || primeX >= c.BedWidth {
		return
	}

	em.p.Commentf("Prime line")
	em.p.TravelTo(primeX, primeYMin, em.travelFeed)
	em.p.MoveZ(c.LayerHeight, layerFeed)
	em.e += (yTo - primeYMin) * em.perMM
	em.p.ExtrudeTo(primeX, yTo, em.e, em.printFeed)
	em.p.LiftZ(em.clearZ, liftFeed)
}

// square prints one outline square, all layers, then lifts back to the
// clearance height. Travels between squares happen at that height so
// the nozzle never drags across finished squares.
func (em *emitter) square(cell Cell) {
	c := em.cfg
	p := em.p

	switch c.Sweep {
	case SweepTemperature:
		p.Commentf("Square %d with nozzle temperature %d", cell.Index+1, cell.Temperature)
		p.SetNozzleTemperature(cell.Temperature)
		p.WaitNozzleTemperature(cell.Temperature)
	default:
		p.Commentf("Square %d with Z offset %.3f", cell.Index+1, cell.ZOffset)
	}

	p.TravelTo(cell.X, cell.Y, em.travelFeed)

	for layer := 0; layer < em.layers; layer++ {
		p.MoveZ(float64(layer+1)*c.LayerHeight+cell.ZOffset, layerFeed)
		em.extrudeTo(cell.X+em.size, cell.Y)
		em.extrudeTo(cell.X+em.size, cell.Y+em.size)
		em.extrudeTo(cell.X, cell.Y+em.size)
		em.extrudeTo(cell.X, cell.Y)
	}

	p.LiftZ(em.clearZ, liftFeed)
}

// extrudeTo prints one side of the current square, advancing the
// filament position by the side length.
func (em *emitter) extrudeTo(x, y float64) {
	em.e += em.size * em.perMM
	em.p.ExtrudeTo(x, y, em.e, em.printFeed)
}

func (em *emitter) teardown() {
	c := em.cfg
	p := em.p

	em.e -= retractLength
	p.Retract(em.e, retractFeed)
	p.LiftZ(math.Min(c.BedHeight, em.clearZ+15), finalLiftFeed)
	p.ParkAt(0, c.BedDepth, em.travelFeed)
	if c.NozzleTemp > 0 {
		p.NozzleOff()
	}
	if c.BedTemp > 0 {
		p.BedOff()
	}
	p.MotorsOff()
}

// travelZ is the clearance height for moves between squares: above the
// finished squares but never above the printer.
func travelZ(c Config) float64 {
	return math.Min(math.Max(5, c.SquareHeight+2), c.BedHeight)
}

// LayerCount returns how many layers tall each square prints. The
// epsilon keeps exact multiples from losing a layer to float division.
func (c Config) LayerCount() int {
	return int(math.Floor(c.SquareHeight/c.LayerHeight + 1e-9))
}

// extrusionPerMM returns filament millimeters consumed per millimeter
// of printed line.
func extrusionPerMM(c Config) float64 {
	filamentArea := math.Pi * c.FilamentDiameter * c.FilamentDiameter / 4
	return c.LineWidth * c.LayerHeight * c.ExtrusionMultiplier / filamentArea
}
