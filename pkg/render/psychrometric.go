package render

import (
	"fmt"
	"image/color"

	"github.com/mikesmitty/psychart/pkg/chart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// RelativeHumidityLabelW is the humidity ratio at which the relative humidity
// isolines are labeled.
const RelativeHumidityLabelW = 0.020

// Scatter is a set of measured points drawn over the chart.
type Scatter struct {
	Name   string
	Points []chart.Point
	Color  color.Color
	Shape  draw.GlyphDrawer
}

func xys(points []chart.Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, p := range points {
		out[i].X = p.T
		out[i].Y = p.W
	}
	return out
}

// Psychrometric draws the relative humidity and wet-bulb isolines of cfg with
// the measured scatters on top.
func Psychrometric(cfg chart.Config, rhLines, wbLines []chart.Curve, scatters ...Scatter) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Psychrometric chart (Z=%gm)", cfg.Elevation)
	p.X.Label.Text = "Dry-bulb temperature (°C)"
	p.Y.Label.Text = "Humidity ratio (kg water / kg dry air)"
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(grid)

	for _, c := range rhLines {
		pts := finite(xys(c.Points))
		if len(pts) < 2 {
			continue
		}
		if c.Saturation {
			l, err := newLine(pts, Black, vg.Points(2), nil)
			if err != nil {
				return nil, fmt.Errorf("render: saturation line: %w", err)
			}
			p.Add(l)
			p.Legend.Add("Saturation (100% RH)", l)
			continue
		}

		l, err := newLine(pts, fade(Blue, 0.6), vg.Points(0.7), dashed)
		if err != nil {
			return nil, fmt.Errorf("render: %g%% line: %w", c.Value, err)
		}
		p.Add(l)

		if i := chart.LabelIndex(c, RelativeHumidityLabelW); i < len(c.Points) {
			pt := c.Points[i]
			lb, err := newLabels(plotter.XYs{{X: pt.T, Y: pt.W}}, []string{fmt.Sprintf("%g%%", c.Value)}, fade(Blue, 0.8), vg.Points(8))
			if err != nil {
				return nil, fmt.Errorf("render: %g%% label: %w", c.Value, err)
			}
			p.Add(lb)
		}
	}

	for _, c := range wbLines {
		pts := finite(xys(c.Points))
		if len(pts) < 2 {
			continue
		}
		l, err := newLine(pts, fade(Green, 0.5), vg.Points(0.6), dashDot)
		if err != nil {
			return nil, fmt.Errorf("render: %g°C wet-bulb line: %w", c.Value, err)
		}
		p.Add(l)

		anchor, ok := c.Anchor()
		if ok && anchor.W > cfg.YMin && anchor.W < cfg.YMax {
			lb, err := newLabels(plotter.XYs{{X: anchor.T - 1.5, Y: anchor.W + 0.0005}}, []string{fmt.Sprintf("%g°C", c.Value)}, Green, vg.Points(8))
			if err != nil {
				return nil, fmt.Errorf("render: %g°C label: %w", c.Value, err)
			}
			for i := range lb.TextStyle {
				lb.TextStyle[i].XAlign = text.XRight
				lb.TextStyle[i].YAlign = text.YCenter
			}
			p.Add(lb)
		}
	}

	for _, s := range scatters {
		pts := finite(xys(s.Points))
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("render: %s: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = s.Color
		sc.GlyphStyle.Radius = vg.Points(2.5)
		if s.Shape != nil {
			sc.GlyphStyle.Shape = s.Shape
		}
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}

	p.X.Min, p.X.Max = cfg.XMin, cfg.XMax
	p.Y.Min, p.Y.Max = cfg.YMin, cfg.YMax
	return p, nil
}
