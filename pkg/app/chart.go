package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/mikesmitty/psychart/pkg/chart"
	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

func Chart() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()

		var l *datalog.Log
		if viper.GetString("log") != "" {
			var err error
			l, err = readLog()
			errChk(err)
		}

		p, err := PsychrometricChart(cmd.Context(), ChartConfig(), l)
		errChk(err)
		w, h := outputSize()
		errChk(render.Save(p, viper.GetString("output"), w, h))
	}
}

// PsychrometricChart builds the chart for cfg. When l is not nil its DHT11 and
// psychrometer channels are drawn as scatters.
func PsychrometricChart(ctx context.Context, cfg chart.Config, l *datalog.Log) (*plot.Plot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := chart.NewBuilder(cfg)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	slog.Info("building chart", "elevation", cfg.Elevation, "pressure", b.Pressure())

	rh, err := b.RelativeHumidityLines(ctx)
	if err != nil {
		return nil, err
	}
	wb, err := b.WetBulbLines(ctx)
	if err != nil {
		return nil, err
	}

	var scatters []render.Scatter
	if l != nil {
		scatters, err = MeasuredScatters(l, b.Pressure())
		if err != nil {
			return nil, err
		}
	}
	return render.Psychrometric(cfg, rh, wb, scatters...)
}

type channel struct {
	name  string
	tbs   string
	rh    string
	color color.Color
	shape draw.GlyphDrawer
}

var measuredChannels = []channel{
	{"DHT11", datalog.ColumnTbs2, datalog.ColumnPhi2, render.Magenta, draw.CircleGlyph{}},
	{"Thermistors", datalog.ColumnTbs, datalog.ColumnPhi, render.Red, draw.SquareGlyph{}},
}

// MeasuredScatters converts every channel pair present in l into chart
// points. Pairs missing from the log are skipped with a warning.
func MeasuredScatters(l *datalog.Log, pressure float64) ([]render.Scatter, error) {
	var out []render.Scatter
	for _, c := range measuredChannels {
		tbs, err := l.Series(c.tbs)
		if errors.Is(err, datalog.ErrMissingColumn) {
			slog.Warn("skipping measured points", "series", c.name, "error", err)
			continue
		} else if err != nil {
			return nil, err
		}
		rh, err := l.Series(c.rh)
		if errors.Is(err, datalog.ErrMissingColumn) {
			slog.Warn("skipping measured points", "series", c.name, "error", err)
			continue
		} else if err != nil {
			return nil, err
		}
		out = append(out, render.Scatter{
			Name:   c.name,
			Points: chart.MeasuredPoints(pressure, tbs, rh),
			Color:  c.color,
			Shape:  c.shape,
		})
	}
	return out, nil
}
