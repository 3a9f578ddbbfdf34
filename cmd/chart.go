package cmd

import (
	"github.com/mikesmitty/psychart/pkg/app"
	"github.com/mikesmitty/psychart/pkg/chart"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw the psychrometric chart for the site with the logged readings",
	Long: `Draws the saturation curve, the relative humidity and wet-bulb isolines for
the site pressure, and overlays the DHT11 and psychrometer readings of the log.
Pass --log "" to draw the chart alone.`,
	PreRunE: bindFlags,
	Run:     app.Chart(),
}

func init() {
	rootCmd.AddCommand(chartCmd)

	d := chart.DefaultConfig()
	fs := chartCmd.Flags()
	outputFlags(fs, "psychart.png")
	fs.Float64("t-min", d.TMin, "first dry bulb sample in °C")
	fs.Float64("t-max", d.TMax, "last dry bulb sample in °C")
	fs.Int("samples", d.Samples, "dry bulb samples per isoline")
	fs.Float64("rh-step", d.RHStep, "relative humidity isoline step in %")
	fs.Float64("wet-bulb-min", d.WetBulbMin, "lowest wet bulb isoline in °C")
	fs.Float64("wet-bulb-max", d.WetBulbMax, "highest wet bulb isoline in °C")
	fs.Float64("wet-bulb-step", d.WetBulbStep, "wet bulb isoline step in °C")
	fs.Float64("x-min", d.XMin, "displayed dry bulb minimum")
	fs.Float64("x-max", d.XMax, "displayed dry bulb maximum")
	fs.Float64("y-min", d.YMin, "displayed humidity ratio minimum")
	fs.Float64("y-max", d.YMax, "displayed humidity ratio maximum")
}
