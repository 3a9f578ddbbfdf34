package env

import (
	"math"
	"time"

	"github.com/mikesmitty/psychart/pkg/psychro"
)

// Env is a moist air state derived from a dry-bulb temperature, a relative
// humidity and the site pressure.
type Env struct {
	Time        time.Time
	Temperature float64
	Humidity    float64
	Pressure    float64

	SaturationPressure float64
	VaporPressure      float64
	HumidityRatio      float64
	Enthalpy           float64
	Dewpoint           float64
}

func New(temp, humidity, pressure float64) Env {
	pvs := psychro.SaturationPressureAt(temp)
	pv := psychro.VaporPressure(humidity, pvs)
	w := psychro.HumidityRatio(pressure, pv)
	return Env{
		Temperature:        temp,
		Humidity:           humidity,
		Pressure:           pressure,
		SaturationPressure: pvs,
		VaporPressure:      pv,
		HumidityRatio:      w,
		Enthalpy:           psychro.Enthalpy(temp, w),
		Dewpoint:           dewpoint(temp, humidity),
	}
}

// FromWetBulb builds the state from a psychrometer dry/wet bulb pair.
func FromWetBulb(tbs, tbh, pressure float64) Env {
	return New(tbs, psychro.RelativeHumidityFromWetBulb(tbs, tbh, pressure), pressure)
}

func (e Env) At(t time.Time) Env {
	e.Time = t
	return e
}

// Valid reports whether the humidity ratio could be computed.
func (e Env) Valid() bool {
	return !math.IsNaN(e.HumidityRatio) && !math.IsNaN(e.Temperature)
}

func dewpoint(t, rh float64) float64 {
	return (243.04 * (math.Log(rh/100) + (17.625*t)/(243.04+t)) / (17.625 - math.Log(rh/100) - (17.625*t)/(243.04+t)))
}
