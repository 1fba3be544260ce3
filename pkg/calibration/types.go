package calibration

// Sweep selects which parameter varies from square to square.
type Sweep string

const (
	// SweepZOffset varies the Z offset across squares while the nozzle
	// temperature stays fixed.
	SweepZOffset Sweep = "zoffset"
	// SweepTemperature varies the nozzle temperature across squares
	// while the Z offset stays fixed at ZStart.
	SweepTemperature Sweep = "temperature"
)

// Config holds every tunable of a calibration grid print. All lengths
// are millimeters, temperatures are degrees Celsius and speeds are
// millimeters per second.
type Config struct {
	// Printable bed volume.
	BedWidth  float64 `json:"bedWidth"`
	BedDepth  float64 `json:"bedDepth"`
	BedHeight float64 `json:"bedHeight"`

	// Grid shape. Squares print bottom row first, left to right.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Swept parameter and its range. The Z range applies to SweepZOffset;
	// for SweepTemperature every square keeps ZStart as its offset and the
	// nozzle sweeps NozzleTemp through NozzleTempEnd instead.
	Sweep  Sweep   `json:"sweep"`
	ZStart float64 `json:"zStart"`
	ZEnd   float64 `json:"zEnd"`

	// Heater targets. Zero means the heater is left untouched; no set,
	// wait or off commands are emitted for it.
	NozzleTemp    int `json:"nozzleTemp"`
	NozzleTempEnd int `json:"nozzleTempEnd"`
	BedTemp       int `json:"bedTemp"`

	// Square placement. A positive SquareSize lays the grid out at that
	// size, centered on the bed unless StartX/StartY (when nonnegative)
	// pin the lower-left corner. SquareSize zero derives the largest
	// size that fits the bed inside Margin.
	SquareSize float64 `json:"squareSize"`
	Spacing    float64 `json:"spacing"`
	Margin     float64 `json:"margin"`
	StartX     float64 `json:"startX"`
	StartY     float64 `json:"startY"`

	// Extrusion geometry.
	SquareHeight float64 `json:"squareHeight"`
	LayerHeight  float64 `json:"layerHeight"`
	LineWidth    float64 `json:"lineWidth"`

	ExtrusionMultiplier float64 `json:"extrusionMultiplier"`
	FilamentDiameter    float64 `json:"filamentDiameter"`

	PrintSpeed  float64 `json:"printSpeed"`
	TravelSpeed float64 `json:"travelSpeed"`
}

// Default returns the configuration for a 4x3 Z offset grid of 20 mm
// squares centered on a 250 mm bed (an Anycubic Kobra S1).
func Default() Config {
	return Config{
		BedWidth:  250,
		BedDepth:  250,
		BedHeight: 250,

		Rows:    3,
		Columns: 4,

		Sweep:  SweepZOffset,
		ZStart: -0.3,
		ZEnd:   0.0,

		NozzleTemp:    215,
		NozzleTempEnd: 0,
		BedTemp:       60,

		SquareSize: 20,
		Spacing:    5,
		Margin:     10,
		StartX:     -1,
		StartY:     -1,

		SquareHeight: 1.0,
		LayerHeight:  0.2,
		LineWidth:    0.4,

		ExtrusionMultiplier: 1.0,
		FilamentDiameter:    1.75,

		PrintSpeed:  20,
		TravelSpeed: 150,
	}
}

// Cell is one square of the planned grid.
type Cell struct {
	// Index is the zero-based position in print order.
	Index  int `json:"index"`
	Row    int `json:"row"`
	Column int `json:"column"`

	// X, Y locate the lower-left corner of the square on the bed.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// ZOffset is added to every layer Z of this square.
	ZOffset float64 `json:"zOffset"`
	// Temperature is the nozzle target while printing this square. Zero
	// unless the nozzle temperature is swept.
	Temperature int `json:"temperature,omitempty"`
}

// Layout is the planned geometry of the whole grid.
type Layout struct {
	// OriginX, OriginY locate the lower-left corner of the first square.
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	// Width and Height span from the first square to the far edge of
	// the last one.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// SquareSize is the resolved side length shared by every square.
	SquareSize float64 `json:"squareSize"`
	// PitchX, PitchY are the distances between neighboring square
	// corners.
	PitchX float64 `json:"pitchX"`
	PitchY float64 `json:"pitchY"`

	// Cells in print order: bottom row first, left to right.
	Cells []Cell `json:"cells"`
}
