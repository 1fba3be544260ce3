// Package gcode builds line-oriented G-code programs. A Program is an
// ordered list of instruction lines; helpers append motion, extrusion,
// temperature and housekeeping commands in the dialect common to
// Marlin-derived printer firmwares. Lines are emitted in execution
// order and never reordered.
package gcode

import (
	"fmt"
	"io"
	"strings"
)

// Program is an ordered sequence of G-code instruction lines.
type Program struct {
	lines []string
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{}
}

// Raw appends a single preformatted line.
func (p *Program) Raw(line string) {
	p.lines = append(p.lines, line)
}

// Commentf appends a comment line.
func (p *Program) Commentf(format string, a ...interface{}) {
	p.Raw("; " + fmt.Sprintf(format, a...))
}

// MillimeterUnits selects millimeters as the unit of all coordinates.
func (p *Program) MillimeterUnits() {
	p.Raw(cmdMillimeterUnits + " ; Millimeter units")
}

// AbsolutePositioning makes all following coordinates absolute.
func (p *Program) AbsolutePositioning() {
	p.Raw(cmdAbsolutePositioning + " ; Absolute positioning")
}

// AbsoluteExtrusion makes E values absolute filament positions.
func (p *Program) AbsoluteExtrusion() {
	p.Raw(cmdAbsoluteExtrusion + " ; Absolute extrusion mode")
}

// SetNozzleTemperature sets the hotend target without waiting.
func (p *Program) SetNozzleTemperature(celsius int) {
	p.Raw(fmt.Sprintf("%s S%d", cmdSetNozzleTemp, celsius))
}

// WaitNozzleTemperature sets the hotend target and blocks until reached.
func (p *Program) WaitNozzleTemperature(celsius int) {
	p.Raw(fmt.Sprintf("%s S%d", cmdWaitNozzleTemp, celsius))
}

// SetBedTemperature sets the bed target without waiting.
func (p *Program) SetBedTemperature(celsius int) {
	p.Raw(fmt.Sprintf("%s S%d", cmdSetBedTemp, celsius))
}

// WaitBedTemperature sets the bed target and blocks until reached.
func (p *Program) WaitBedTemperature(celsius int) {
	p.Raw(fmt.Sprintf("%s S%d", cmdWaitBedTemp, celsius))
}

// HomeAll homes every axis.
func (p *Program) HomeAll() {
	p.Raw(cmdHomeAll + " ; Home all axes")
}

// LiftZ raises (or lowers) the nozzle to a clearance height.
func (p *Program) LiftZ(z float64, feed int) {
	p.Raw(fmt.Sprintf("%s Z%.3f F%d ; Lift Z", cmdLinearMove, z, feed))
}

// MoveZ moves the nozzle to an exact Z without comment, used for layer
// changes.
func (p *Program) MoveZ(z float64, feed int) {
	p.Raw(fmt.Sprintf("%s Z%.3f F%d", cmdLinearMove, z, feed))
}

// TravelTo performs a non-extruding rapid move in the XY plane.
func (p *Program) TravelTo(x, y float64, feed int) {
	p.Raw(fmt.Sprintf("%s X%.3f Y%.3f F%d", cmdRapidMove, x, y, feed))
}

// ExtrudeTo performs a printing move to (x, y), advancing the absolute
// filament position to e.
func (p *Program) ExtrudeTo(x, y, e float64, feed int) {
	p.Raw(fmt.Sprintf("%s X%.3f Y%.3f E%.5f F%d", cmdLinearMove, x, y, e, feed))
}

// Retract pulls the filament back to the absolute position e.
func (p *Program) Retract(e float64, feed int) {
	p.Raw(fmt.Sprintf("%s E%.5f F%d ; Retract", cmdLinearMove, e, feed))
}

// ParkAt moves the head to a resting position after the print.
func (p *Program) ParkAt(x, y float64, feed int) {
	p.Raw(fmt.Sprintf("%s X%.3f Y%.3f F%d ; Park", cmdRapidMove, x, y, feed))
}

// NozzleOff turns the hotend heater off.
func (p *Program) NozzleOff() {
	p.Raw(cmdSetNozzleTemp + " S0 ; Turn off hotend")
}

// BedOff turns the bed heater off.
func (p *Program) BedOff() {
	p.Raw(cmdSetBedTemp + " S0 ; Turn off bed")
}

// MotorsOff disables the stepper motors.
func (p *Program) MotorsOff() {
	p.Raw(cmdMotorsOff + " ; Disable motors")
}

// Len returns the number of emitted lines.
func (p *Program) Len() int {
	return len(p.lines)
}

// Lines returns a copy of the emitted lines in order.
func (p *Program) Lines() []string {
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// String renders the program as newline-terminated text.
func (p *Program) String() string {
	if len(p.lines) == 0 {
		return ""
	}
	return strings.Join(p.lines, "\n") + "\n"
}

// WriteTo writes the rendered program to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range p.lines {
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
