package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const TimeFormat = "02/01 15:04"

// Line is one channel of a time series chart.
type Line struct {
	Name   string
	Times  []time.Time
	Values []float64
	Color  color.Color
	Width  vg.Length
	Dashed bool
}

func (l Line) xys() plotter.XYs {
	n := min(len(l.Times), len(l.Values))
	out := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		out[i].X = float64(l.Times[i].Unix())
		out[i].Y = l.Values[i]
	}
	return out
}

// location is the zone of the first sample, so tick labels read like the
// timestamps they came from.
func location(lines []Line) *time.Location {
	for _, l := range lines {
		if len(l.Times) > 0 {
			return l.Times[0].Location()
		}
	}
	return time.Local
}

func timeIn(loc *time.Location) func(float64) time.Time {
	return func(t float64) time.Time {
		return time.Unix(int64(t), 0).In(loc)
	}
}

// TimeSeries plots every line against time. Missing samples leave a gap.
func TimeSeries(title, ylabel string, lines ...Line) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: TimeFormat, Time: timeIn(location(lines))}

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(grid)

	drawn := 0
	for _, line := range lines {
		segs := segments(line.xys())
		if len(segs) == 0 {
			slog.Warn("no data to plot", "series", line.Name, "module", "render")
			continue
		}
		width := line.Width
		if width == 0 {
			width = vg.Points(1)
		}
		var dashes []vg.Length
		if line.Dashed {
			dashes = dashed
		}
		for i, seg := range segs {
			l, err := newLine(seg, line.Color, width, dashes)
			if err != nil {
				return nil, fmt.Errorf("render: %s: %w", line.Name, err)
			}
			p.Add(l)
			if i == 0 {
				p.Legend.Add(line.Name, l)
			}
		}
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("render: %s: nothing to plot", title)
	}
	return p, nil
}
