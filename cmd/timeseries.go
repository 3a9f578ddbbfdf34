package cmd

import (
	"github.com/mikesmitty/psychart/pkg/app"
	"github.com/spf13/cobra"
)

var temperaturesCmd = &cobra.Command{
	Use:     "temperatures",
	Short:   "Plot every temperature channel of the log over time",
	PreRunE: bindFlags,
	Run:     app.Temperatures(),
}

var humidityCmd = &cobra.Command{
	Use:     "humidity",
	Short:   "Plot the DHT11 and psychrometer relative humidity over time",
	PreRunE: bindFlags,
	Run:     app.Humidity(),
}

func init() {
	rootCmd.AddCommand(temperaturesCmd)
	rootCmd.AddCommand(humidityCmd)

	outputFlags(temperaturesCmd.Flags(), "temperatures.png")
	temperaturesCmd.Flags().Int("smooth", 0, "moving average window in samples (0 to disable)")
	outputFlags(humidityCmd.Flags(), "humidity.png")
	humidityCmd.Flags().Int("smooth", 0, "moving average window in samples (0 to disable)")
}
