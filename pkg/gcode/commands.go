package gcode

// Marlin-style command mnemonics. These are part of the firmware
// protocol, not an internal naming choice; do not rename them.
const (
	cmdRapidMove           = "G0"
	cmdLinearMove          = "G1"
	cmdMillimeterUnits     = "G21"
	cmdHomeAll             = "G28"
	cmdAbsolutePositioning = "G90"

	cmdAbsoluteExtrusion = "M82"
	cmdMotorsOff         = "M84"
	cmdSetNozzleTemp     = "M104"
	cmdWaitNozzleTemp    = "M109"
	cmdSetBedTemp        = "M140"
	cmdWaitBedTemp       = "M190"
)
