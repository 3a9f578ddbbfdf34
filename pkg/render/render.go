// Package render draws the psychrometric chart and the sensor time series
// with gonum/plot and saves them as image files.
package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	Black   = color.RGBA{A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Green   = color.RGBA{G: 128, A: 255}
	Red     = color.RGBA{R: 255, A: 255}
	Magenta = color.RGBA{R: 255, B: 255, A: 255}
	Yellow  = color.RGBA{R: 230, G: 200, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, A: 255}
)

var (
	dashed  = []vg.Length{vg.Points(4), vg.Points(2)}
	dashDot = []vg.Length{vg.Points(5), vg.Points(2), vg.Points(1), vg.Points(2)}
)

// fade blends c towards white, approximating an alpha channel on white paper.
func fade(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	blend := func(v uint32) uint8 {
		return uint8(float64(v>>8)*alpha + 255*(1-alpha))
	}
	return color.RGBA{R: blend(r), G: blend(g), B: blend(b), A: 255}
}

var formats = map[string]bool{
	".png":  true,
	".svg":  true,
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".eps":  true,
	".tif":  true,
	".tiff": true,
}

// Save writes p to path in the format given by its extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return fmt.Errorf("render: unsupported output format %q", ext)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	slog.Info("saved chart", "path", path, "module", "render")
	return nil
}

// finite drops points that cannot be drawn.
func finite(xys plotter.XYs) plotter.XYs {
	out := make(plotter.XYs, 0, len(xys))
	for _, xy := range xys {
		if math.IsNaN(xy.X) || math.IsNaN(xy.Y) || math.IsInf(xy.X, 0) || math.IsInf(xy.Y, 0) {
			continue
		}
		out = append(out, xy)
	}
	return out
}

// segments splits xys at non-finite values so gaps in a series are not
// bridged by a line.
func segments(xys plotter.XYs) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for _, xy := range xys {
		if math.IsNaN(xy.X) || math.IsNaN(xy.Y) || math.IsInf(xy.X, 0) || math.IsInf(xy.Y, 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, xy)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

func newLine(xys plotter.XYs, c color.Color, width vg.Length, dashes []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	l.LineStyle.Dashes = dashes
	return l, nil
}

func newLabels(xys plotter.XYs, labels []string, c color.Color, size vg.Length) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Color = c
		l.TextStyle[i].Font.Size = size
	}
	return l, nil
}
