package psychro

const (
	cpDryAir     = 1.006 // kJ/(kg·K)
	cpWaterVapor = 1.805 // kJ/(kg·K)
	latentHeat0C = 2501  // kJ/kg
)

// Enthalpy returns the specific enthalpy of moist air in kJ/kg dry air.
func Enthalpy(t, w float64) float64 {
	return cpDryAir*t + w*(latentHeat0C+cpWaterVapor*t)
}

// HumidityRatioFromEnthalpy returns the humidity ratio on the constant
// enthalpy line h at dry-bulb temperature t.
func HumidityRatioFromEnthalpy(h, t float64) float64 {
	return (h - cpDryAir*t) / (latentHeat0C + cpWaterVapor*t)
}

// WetBulbEnthalpy is the enthalpy of saturated air at wet-bulb temperature
// tbh, which every point of the wet-bulb line shares.
func WetBulbEnthalpy(tbh, p float64) float64 {
	ws := SaturationHumidityRatio(p, SaturationPressureAt(tbh))
	return Enthalpy(tbh, ws)
}

// RelativeHumidityFromWetBulb returns the relative humidity in percent for a
// dry-bulb/wet-bulb pair at pressure p.
func RelativeHumidityFromWetBulb(tbs, tbh, p float64) float64 {
	w := HumidityRatioFromEnthalpy(WetBulbEnthalpy(tbh, p), tbs)
	pv := VaporPressureFromHumidityRatio(p, w)
	return 100 * pv / SaturationPressureAt(tbs)
}
