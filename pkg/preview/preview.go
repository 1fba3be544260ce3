// Package preview renders the planned grid to a PNG so the layout can
// be checked before anything is printed.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/charlie0129/zcal/pkg/calibration"
)

var (
	bedColor    = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	squareColor = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

// Render draws the planned grid onto a white canvas at scale pixels per
// millimeter. The bed's front edge (Y zero) sits at the bottom of the
// image, matching how you look at a printer.
func Render(cfg calibration.Config, layout *calibration.Layout, scale float64) *image.RGBA {
	w := int(cfg.BedWidth * scale)
	h := int(cfg.BedDepth * scale)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)

	stroke(dasher, scanner, bedColor, 1, 1, 1, float64(w)-1, float64(h)-1)

	size := layout.SquareSize * scale
	for _, cell := range layout.Cells {
		x := cell.X * scale
		yTop := float64(h) - (cell.Y+layout.SquareSize)*scale
		yBottom := float64(h) - cell.Y*scale
		stroke(dasher, scanner, squareColor, strokeWidth(cfg, scale), x, yTop, x+size, yBottom)

		drawText(img, int(x)+3, int(yTop)+14, strconv.Itoa(cell.Index+1))
		v := valueLabel(cfg, cell)
		vx := int(x+size/2) - len(v)*basicfont.Face7x13.Advance/2
		drawText(img, vx, int((yTop+yBottom)/2)+4, v)
	}

	drawText(img, 4, 14, title(cfg))

	return img
}

// WriteFile encodes the image as PNG at path.
func WriteFile(path string, img image.Image) error {
	fp, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", path)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	if err := png.Encode(fp, img); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode PNG to file %s", path)
	}

	return nil
}

// stroke outlines the rectangle without filling it, so overlapping
// labels stay readable.
func stroke(d *rasterx.Dasher, s *rasterx.ScannerGV, clr color.Color, width, minX, minY, maxX, maxY float64) {
	s.SetColor(clr)
	d.SetStroke(fixed26(width), fixed.I(4), rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	rasterx.AddRect(minX, minY, maxX, maxY, 0, d)
	d.Draw()
	d.Clear()
}

func strokeWidth(cfg calibration.Config, scale float64) float64 {
	if w := cfg.LineWidth * scale; w > 1 {
		return w
	}
	return 1
}

func drawText(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(squareColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func valueLabel(cfg calibration.Config, cell calibration.Cell) string {
	if cfg.Sweep == calibration.SweepTemperature {
		return fmt.Sprintf("%dC", cell.Temperature)
	}
	return fmt.Sprintf("%.3f", cell.ZOffset)
}

func title(cfg calibration.Config) string {
	if cfg.Sweep == calibration.SweepTemperature {
		return fmt.Sprintf("Nozzle %d to %dC", cfg.NozzleTemp, cfg.NozzleTempEnd)
	}
	return fmt.Sprintf("Z offset %.3f to %.3f", cfg.ZStart, cfg.ZEnd)
}

func fixed26(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
