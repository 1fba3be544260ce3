package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/zcal/pkg/calibration"
	"github.com/charlie0129/zcal/pkg/utils/ptr"
)

// Profile is an on-disk override set for the calibration defaults.
// Every field is optional; unset fields keep their default, so a
// profile only needs to mention what differs from a stock printer.
type Profile struct {
	BedWidth  *float64 `json:"bedWidth,omitempty"`
	BedDepth  *float64 `json:"bedDepth,omitempty"`
	BedHeight *float64 `json:"bedHeight,omitempty"`

	Rows    *int `json:"rows,omitempty"`
	Columns *int `json:"columns,omitempty"`

	Sweep  *calibration.Sweep `json:"sweep,omitempty"`
	ZStart *float64           `json:"zStart,omitempty"`
	ZEnd   *float64           `json:"zEnd,omitempty"`

	NozzleTemp    *int `json:"nozzleTemp,omitempty"`
	NozzleTempEnd *int `json:"nozzleTempEnd,omitempty"`
	BedTemp       *int `json:"bedTemp,omitempty"`

	SquareSize *float64 `json:"squareSize,omitempty"`
	Spacing    *float64 `json:"spacing,omitempty"`
	Margin     *float64 `json:"margin,omitempty"`
	StartX     *float64 `json:"startX,omitempty"`
	StartY     *float64 `json:"startY,omitempty"`

	SquareHeight *float64 `json:"squareHeight,omitempty"`
	LayerHeight  *float64 `json:"layerHeight,omitempty"`
	LineWidth    *float64 `json:"lineWidth,omitempty"`

	ExtrusionMultiplier *float64 `json:"extrusionMultiplier,omitempty"`
	FilamentDiameter    *float64 `json:"filamentDiameter,omitempty"`

	PrintSpeed  *float64 `json:"printSpeed,omitempty"`
	TravelSpeed *float64 `json:"travelSpeed,omitempty"`

	Output *string `json:"output,omitempty"`
}

// Load reads a profile from path. A missing or empty file is not an
// error and yields an empty profile, so a fresh installation works
// without any configuration.
func Load(path string) (*Profile, error) {
	fp, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to open file %s", path)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	// Telling an empty file apart from invalid JSON needs the raw
	// bytes, so no json.Decoder here.
	b, err := io.ReadAll(fp)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read file %s", path)
	}
	if strings.TrimSpace(string(b)) == "" {
		return &Profile{}, nil
	}

	p := &Profile{}
	if err := json.Unmarshal(b, p); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal profile from file %s", path)
	}

	return p, nil
}

// Save writes the profile to path as indented JSON.
func (p *Profile) Save(path string) error {
	fp, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", path)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode profile to file %s", path)
	}

	return nil
}

// Apply overlays every value the profile sets onto base and returns the
// result. Unset fields keep the base value.
func (p *Profile) Apply(base calibration.Config) calibration.Config {
	if p == nil {
		return base
	}

	if p.BedWidth != nil {
		base.BedWidth = *p.BedWidth
	}
	if p.BedDepth != nil {
		base.BedDepth = *p.BedDepth
	}
	if p.BedHeight != nil {
		base.BedHeight = *p.BedHeight
	}
	if p.Rows != nil {
		base.Rows = *p.Rows
	}
	if p.Columns != nil {
		base.Columns = *p.Columns
	}
	if p.Sweep != nil {
		base.Sweep = *p.Sweep
	}
	if p.ZStart != nil {
		base.ZStart = *p.ZStart
	}
	if p.ZEnd != nil {
		base.ZEnd = *p.ZEnd
	}
	if p.NozzleTemp != nil {
		base.NozzleTemp = *p.NozzleTemp
	}
	if p.NozzleTempEnd != nil {
		base.NozzleTempEnd = *p.NozzleTempEnd
	}
	if p.BedTemp != nil {
		base.BedTemp = *p.BedTemp
	}
	if p.SquareSize != nil {
		base.SquareSize = *p.SquareSize
	}
	if p.Spacing != nil {
		base.Spacing = *p.Spacing
	}
	if p.Margin != nil {
		base.Margin = *p.Margin
	}
	if p.StartX != nil {
		base.StartX = *p.StartX
	}
	if p.StartY != nil {
		base.StartY = *p.StartY
	}
	if p.SquareHeight != nil {
		base.SquareHeight = *p.SquareHeight
	}
	if p.LayerHeight != nil {
		base.LayerHeight = *p.LayerHeight
	}
	if p.LineWidth != nil {
		base.LineWidth = *p.LineWidth
	}
	if p.ExtrusionMultiplier != nil {
		base.ExtrusionMultiplier = *p.ExtrusionMultiplier
	}
	if p.FilamentDiameter != nil {
		base.FilamentDiameter = *p.FilamentDiameter
	}
	if p.PrintSpeed != nil {
		base.PrintSpeed = *p.PrintSpeed
	}
	if p.TravelSpeed != nil {
		base.TravelSpeed = *p.TravelSpeed
	}

	return base
}

// OutputPath returns the profile's output path, or fallback when the
// profile does not set one.
func (p *Profile) OutputPath(fallback string) string {
	if p != nil && p.Output != nil && *p.Output != "" {
		return *p.Output
	}
	return fallback
}

// FromConfig captures every value of c, plus the output path, in a
// fully populated profile. Used to write a starter profile that users
// can edit down.
func FromConfig(c calibration.Config, output string) *Profile {
	return &Profile{
		BedWidth:  ptr.To(c.BedWidth),
		BedDepth:  ptr.To(c.BedDepth),
		BedHeight: ptr.To(c.BedHeight),

		Rows:    ptr.To(c.Rows),
		Columns: ptr.To(c.Columns),

		Sweep:  ptr.To(c.Sweep),
		ZStart: ptr.To(c.ZStart),
		ZEnd:   ptr.To(c.ZEnd),

		NozzleTemp:    ptr.To(c.NozzleTemp),
		NozzleTempEnd: ptr.To(c.NozzleTempEnd),
		BedTemp:       ptr.To(c.BedTemp),

		SquareSize: ptr.To(c.SquareSize),
		Spacing:    ptr.To(c.Spacing),
		Margin:     ptr.To(c.Margin),
		StartX:     ptr.To(c.StartX),
		StartY:     ptr.To(c.StartY),

		SquareHeight: ptr.To(c.SquareHeight),
		LayerHeight:  ptr.To(c.LayerHeight),
		LineWidth:    ptr.To(c.LineWidth),

		ExtrusionMultiplier: ptr.To(c.ExtrusionMultiplier),
		FilamentDiameter:    ptr.To(c.FilamentDiameter),

		PrintSpeed:  ptr.To(c.PrintSpeed),
		TravelSpeed: ptr.To(c.TravelSpeed),

		Output: ptr.To(output),
	}
}
