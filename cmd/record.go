package cmd

import (
	"time"

	"github.com/mikesmitty/psychart/pkg/app"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record psychrometer readings from the SHT4x and MAX31865 sensors",
	Long: `Polls an SHT4x reference sensor over I2C and a MAX31865 wet bulb RTD over SPI,
derives the relative humidity from the dry/wet bulb pair and appends the rows to
the log. States can also be published over MQTT and exposed to Prometheus.`,
	PreRunE: bindFlags,
	Run:     app.Record(),
}

var publishCmd = &cobra.Command{
	Use:     "publish",
	Short:   "Publish the states of a log to Home Assistant over MQTT",
	PreRunE: bindFlags,
	Run:     app.Publish(),
}

func init() {
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(publishCmd)

	recordCmd.Flags().String("i2cbus", "", "name of the i2c bus")
	recordCmd.Flags().String("spibus", "", "name of the wet bulb spi bus")
	recordCmd.Flags().String("dry-spibus", "", "name of the dry bulb spi bus (the SHT4x is used when empty)")
	recordCmd.Flags().Duration("interval", 10*time.Second, "sensor polling interval")
	recordCmd.Flags().Duration("watchdog-timeout", time.Minute, "stop when no readings arrive for this long (0 to disable)")
	recordCmd.Flags().String("metrics-listen", "", "address to expose Prometheus metrics on (disabled when empty)")
	recordCmd.Flags().String("metrics-path", "/metrics", "path under which to expose metrics")

	publishCmd.Flags().String("channel", app.ChannelPsychrometer, "log channel to publish (psychrometer or dht11)")
	publishCmd.Flags().Bool("latest", false, "publish only the last record")
}
