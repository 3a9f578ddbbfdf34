package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "psychart",
	Short: "Psychrometric chart and psychrometer log tool",
	Long: `psychart draws psychrometric charts for a site elevation, overlays and
compares the readings of a dry/wet bulb psychrometer log, and can record or
publish those readings over MQTT.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.psychart.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log", "datalog2.txt", "psychrometer sensor log")
	rootCmd.PersistentFlags().Float64("elevation", 2250, "site elevation in m")
	rootCmd.PersistentFlags().Float64("pressure", 0, "site pressure in Pa (derived from the elevation when 0)")
	rootCmd.PersistentFlags().String("mqtt-broker", "", "mqtt broker url")
	rootCmd.PersistentFlags().Int("mqtt-sample-interval", 1, "publish one out of every N states")
	rootCmd.PersistentFlags().Bool("mqtt-retain", false, "publish retained state messages")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

// bindFlags binds the local flags of the command being run. Several commands
// share flag names with different defaults, so binding happens per run.
func bindFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}

func outputFlags(fs *pflag.FlagSet, output string) {
	fs.StringP("output", "o", output, "output file, format chosen by extension (png, svg, pdf)")
	fs.Float64("width", 10, "output width in inches")
	fs.Float64("height", 6, "output height in inches")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".psychart" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".psychart")
	}

	// A .env file in the working directory feeds the PSYCHART_* variables.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}
	viper.SetEnvPrefix("PSYCHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
