// Package app holds the command implementations behind the psychart CLI.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mikesmitty/psychart/pkg/chart"
	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

func setupLogging() {
	slogOpts := slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if viper.GetBool("debug") {
		slogOpts.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slogOpts))
	slog.SetDefault(log)
}

func errChk(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// ChartConfig reads the chart settings from viper, falling back to the
// defaults for anything unset.
func ChartConfig() chart.Config {
	cfg := chart.DefaultConfig()
	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setFloat("elevation", &cfg.Elevation)
	setFloat("pressure", &cfg.Pressure)
	setFloat("t-min", &cfg.TMin)
	setFloat("t-max", &cfg.TMax)
	setFloat("rh-step", &cfg.RHStep)
	setFloat("wet-bulb-min", &cfg.WetBulbMin)
	setFloat("wet-bulb-max", &cfg.WetBulbMax)
	setFloat("wet-bulb-step", &cfg.WetBulbStep)
	setFloat("x-min", &cfg.XMin)
	setFloat("x-max", &cfg.XMax)
	setFloat("y-min", &cfg.YMin)
	setFloat("y-max", &cfg.YMax)
	if viper.IsSet("samples") {
		cfg.Samples = viper.GetInt("samples")
	}
	return cfg
}

func outputSize() (vg.Length, vg.Length) {
	w := viper.GetFloat64("width")
	h := viper.GetFloat64("height")
	if w <= 0 {
		w = 10
	}
	if h <= 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func readLog() (*datalog.Log, error) {
	path := viper.GetString("log")
	if path == "" {
		return nil, fmt.Errorf("no sensor log given")
	}
	l, err := datalog.ReadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded sensor log", "path", path, "records", l.Len())
	return l, nil
}
