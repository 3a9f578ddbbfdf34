package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mikesmitty/psychart/pkg/env"
	"github.com/mikesmitty/psychart/pkg/psychro"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Point() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()
		e, err := PointState(args, viper.GetBool("wet-bulb"), ChartConfig().SitePressure())
		errChk(err)
		errChk(WriteState(cmd.OutOrStdout(), e))
	}
}

// PointState parses a dry bulb temperature and either a relative humidity or,
// with wetBulb set, a wet bulb temperature.
func PointState(args []string, wetBulb bool, pressure float64) (env.Env, error) {
	if len(args) != 2 {
		return env.Env{}, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	var v [2]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return env.Env{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
		v[i] = f
	}
	if wetBulb {
		return env.FromWetBulb(v[0], v[1], pressure), nil
	}
	return env.New(v[0], v[1], pressure), nil
}

func WriteState(w io.Writer, e env.Env) error {
	if psychro.IsUndefined(e.SaturationPressure) {
		return fmt.Errorf("temperature %g°C is outside the saturation correlation range", e.Temperature)
	}
	_, err := fmt.Fprintf(w, `Site pressure:        %.1f Pa
Dry bulb:             %.2f °C
Relative humidity:    %.2f %%
Saturation pressure:  %.2f Pa
Vapor pressure:       %.2f Pa
Humidity ratio:       %.6f kg/kg
Enthalpy:             %.2f kJ/kg
Dew point:            %.2f °C
`, e.Pressure, e.Temperature, e.Humidity, e.SaturationPressure, e.VaporPressure, e.HumidityRatio, e.Enthalpy, e.Dewpoint)
	return err
}
