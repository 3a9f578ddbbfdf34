package app

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/render"
	"github.com/mikesmitty/psychart/pkg/swma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

type series struct {
	name   string
	column string
	color  color.Color
	width  vg.Length
	dashed bool
}

var temperatureSeries = []series{
	{"Tbs (thermistor)", datalog.ColumnTbs, render.Red, vg.Points(1), false},
	{"Tbs2 (DHT11)", datalog.ColumnTbs2, render.Green, vg.Points(1.7), true},
	{"Tbh (wet bulb)", datalog.ColumnTbh, render.Yellow, vg.Points(1), false},
	{"Tbs protected", datalog.ColumnTbsProtect, render.Black, vg.Points(1), false},
	{"Tbs unprotected", datalog.ColumnTbsUnprotect, render.Orange, vg.Points(1), false},
}

var humiditySeries = []series{
	{"phi2 (DHT11)", datalog.ColumnPhi2, render.Red, vg.Points(1), false},
	{"phi (psychrometer)", datalog.ColumnPhi, render.Blue, vg.Points(1), false},
}

func Temperatures() func(cmd *cobra.Command, args []string) {
	return timeSeriesCmd(TemperaturePlot)
}

func Humidity() func(cmd *cobra.Command, args []string) {
	return timeSeriesCmd(HumidityPlot)
}

func timeSeriesCmd(build func(*datalog.Log, int) (*plot.Plot, error)) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()
		l, err := readLog()
		errChk(err)
		p, err := build(l, viper.GetInt("smooth"))
		errChk(err)
		w, h := outputSize()
		errChk(render.Save(p, viper.GetString("output"), w, h))
	}
}

// TemperaturePlot compares every temperature channel of the log over time.
func TemperaturePlot(l *datalog.Log, window int) (*plot.Plot, error) {
	return timeSeries(l, "Temperature comparison", "Temperature (°C)", temperatureSeries, window)
}

// HumidityPlot compares the DHT11 relative humidity with the one derived from
// the psychrometer.
func HumidityPlot(l *datalog.Log, window int) (*plot.Plot, error) {
	return timeSeries(l, "Relative humidity comparison", "Relative humidity (%)", humiditySeries, window)
}

func timeSeries(l *datalog.Log, title, ylabel string, ss []series, window int) (*plot.Plot, error) {
	times := l.Times()
	var lines []render.Line
	for _, s := range ss {
		values, err := l.Series(s.column)
		if errors.Is(err, datalog.ErrMissingColumn) {
			slog.Warn("column not found in log", "column", s.column)
			continue
		} else if err != nil {
			return nil, err
		}
		if window > 1 {
			values = swma.Smooth(values, window)
		}
		lines = append(lines, render.Line{
			Name:   s.name,
			Times:  times,
			Values: values,
			Color:  s.color,
			Width:  s.width,
			Dashed: s.dashed,
		})
	}
	return render.TimeSeries(title, ylabel, lines...)
}
