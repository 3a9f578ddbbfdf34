package chart

import (
	"fmt"

	"github.com/mikesmitty/psychart/pkg/psychro"
)

// Config holds the site and axis settings of one psychrometric chart.
type Config struct {
	Elevation float64 // m above sea level
	Pressure  float64 // Pa, derived from Elevation when zero

	TMin    float64 // °C, first sample of the temperature axis
	TMax    float64 // °C, last sample of the temperature axis
	Samples int

	RHStep float64 // %

	WetBulbMin  float64
	WetBulbMax  float64
	WetBulbStep float64

	// Display limits
	XMin float64
	XMax float64
	YMin float64
	YMax float64 // kg/kg
}

func DefaultConfig() Config {
	return Config{
		Elevation:   2250,
		TMin:        -10,
		TMax:        55,
		Samples:     200,
		RHStep:      10,
		WetBulbMin:  -5,
		WetBulbMax:  35,
		WetBulbStep: 5,
		XMin:        -5,
		XMax:        55,
		YMin:        0,
		YMax:        0.035,
	}
}

// SitePressure is the configured pressure, or the standard atmosphere
// pressure at the configured elevation.
func (c Config) SitePressure() float64 {
	if c.Pressure > 0 {
		return c.Pressure
	}
	return psychro.SiteAirPressure(c.Elevation)
}

func (c Config) Validate() error {
	switch {
	case c.Samples < 2:
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	case c.TMax <= c.TMin:
		return fmt.Errorf("temperature axis is empty: min %v, max %v", c.TMin, c.TMax)
	case c.RHStep <= 0 || c.RHStep > 100:
		return fmt.Errorf("relative humidity step must be in (0, 100], got %v", c.RHStep)
	case c.WetBulbStep <= 0:
		return fmt.Errorf("wet-bulb step must be positive, got %v", c.WetBulbStep)
	case c.WetBulbMax < c.WetBulbMin:
		return fmt.Errorf("wet-bulb range is empty: min %v, max %v", c.WetBulbMin, c.WetBulbMax)
	case c.XMax <= c.XMin || c.YMax <= c.YMin:
		return fmt.Errorf("display limits are empty")
	case !(c.SitePressure() > 0):
		return fmt.Errorf("site pressure must be positive, got %v", c.SitePressure())
	}
	return nil
}
