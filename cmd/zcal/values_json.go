package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/charlie0129/zcal/pkg/calibration"
)

type valuesJSON struct {
	Sweep   string           `json:"sweep"`
	Grid    valuesGridJSON   `json:"grid"`
	Squares []valuesCellJSON `json:"squares"`
}

type valuesGridJSON struct {
	Rows       int     `json:"rows"`
	Columns    int     `json:"columns"`
	OriginX    float64 `json:"originX"`
	OriginY    float64 `json:"originY"`
	SquareSize float64 `json:"squareSize"`
	PitchX     float64 `json:"pitchX"`
	PitchY     float64 `json:"pitchY"`
}

type valuesCellJSON struct {
	// Square is the one-based number used in the G-code markers.
	Square  int     `json:"square"`
	Row     int     `json:"row"`
	Column  int     `json:"column"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	ZOffset float64 `json:"zOffset"`
	// Temperature is present only for temperature sweeps.
	Temperature *int `json:"temperature,omitempty"`
}

func printValuesJSON(cmd *cobra.Command, cfg calibration.Config, layout *calibration.Layout) error {
	out := valuesJSON{
		Sweep: string(cfg.Sweep),
		Grid: valuesGridJSON{
			Rows:       cfg.Rows,
			Columns:    cfg.Columns,
			OriginX:    layout.OriginX,
			OriginY:    layout.OriginY,
			SquareSize: layout.SquareSize,
			PitchX:     layout.PitchX,
			PitchY:     layout.PitchY,
		},
		Squares: make([]valuesCellJSON, 0, len(layout.Cells)),
	}

	for _, cell := range layout.Cells {
		sq := valuesCellJSON{
			Square:  cell.Index + 1,
			Row:     cell.Row,
			Column:  cell.Column,
			X:       cell.X,
			Y:       cell.Y,
			ZOffset: cell.ZOffset,
		}
		if cfg.Sweep == calibration.SweepTemperature {
			temp := cell.Temperature
			sq.Temperature = &temp
		}
		out.Squares = append(out.Squares, sq)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
