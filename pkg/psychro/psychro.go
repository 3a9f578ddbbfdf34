// Package psychro computes moist air properties from dry-bulb temperature,
// relative humidity and site pressure.
//
// Temperatures are in degrees Celsius unless a parameter is named tk, which is
// absolute temperature in kelvin. Pressures are in pascals. Results that cannot
// be computed because the temperature is outside the saturation correlation are
// NaN, and NaN propagates through every function that consumes them.
package psychro

import (
	"math"
)

const (
	// ZeroCelsius is 0 °C in kelvin.
	ZeroCelsius = 273.15

	// StandardPressure is the sea level pressure of the standard atmosphere, Pa.
	StandardPressure = 101325.0

	// MolarMassRatio is the ratio of the molar mass of water vapor to dry air.
	MolarMassRatio = 0.621945
)

// Kelvin converts a Celsius temperature to kelvin.
func Kelvin(t float64) float64 {
	return t + ZeroCelsius
}

// Celsius converts a kelvin temperature to Celsius.
func Celsius(tk float64) float64 {
	return tk - ZeroCelsius
}

// IsUndefined reports whether v is the undefined result of an out of domain
// computation.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// VaporPressure returns the partial vapor pressure for a relative humidity in
// percent and a saturation vapor pressure. rh is not clamped.
func VaporPressure(rh, pvs float64) float64 {
	return rh / 100 * pvs
}

// HumidityRatio returns kg water per kg dry air for total pressure p and vapor
// pressure pv. When p == pv the ratio is 0 rather than a division by zero.
// pv > p yields a negative ratio which is returned as is.
func HumidityRatio(p, pv float64) float64 {
	if p-pv == 0 {
		return 0
	}
	return MolarMassRatio * pv / (p - pv)
}

// SaturationHumidityRatio is HumidityRatio evaluated at the saturation vapor
// pressure pvs.
func SaturationHumidityRatio(p, pvs float64) float64 {
	return HumidityRatio(p, pvs)
}

// VaporPressureFromHumidityRatio inverts HumidityRatio.
func VaporPressureFromHumidityRatio(p, w float64) float64 {
	return p * w / (MolarMassRatio + w)
}

// SiteAirPressure returns the standard atmosphere pressure at elevation z in
// meters. z is not bounds checked.
func SiteAirPressure(z float64) float64 {
	return StandardPressure * math.Pow(1-2.25577e-5*z, 5.2259)
}
