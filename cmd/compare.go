package cmd

import (
	"github.com/mikesmitty/psychart/pkg/app"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Log agreement statistics between the channels of the log",
	Run:   app.Compare(),
}

var pointCmd = &cobra.Command{
	Use:   "point <dry bulb °C> <relative humidity %>",
	Short: "Print the moist air properties of one state at the site pressure",
	Long: `Prints saturation and vapor pressure, humidity ratio, enthalpy and dew point.
With --wet-bulb the second argument is a wet bulb temperature in °C.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: bindFlags,
	Run:     app.Point(),
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(pointCmd)

	pointCmd.Flags().Bool("wet-bulb", false, "second argument is a wet bulb temperature")
}
