package psychro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaturationCorrelation(t *testing.T) {
	tests := []struct {
		name  string
		t     float64
		phase Phase
	}{
		{"lower ice bound", -100, PhaseIce},
		{"just below freezing", -1e-9, PhaseIce},
		{"freezing point", 0, PhaseLiquid},
		{"room temperature", 25, PhaseLiquid},
		{"just below upper bound", 199.999, PhaseLiquid},
		{"upper bound", 200, PhaseOutOfDomain},
		{"below lower bound", -100.001, PhaseOutOfDomain},
		{"nan", math.NaN(), PhaseOutOfDomain},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := SaturationCorrelation(test.t)
			assert.Equal(t, test.phase, c.Phase)
			assert.Equal(t, test.phase != PhaseOutOfDomain, c.Ok())
		})
	}
}

func TestSaturationCorrelationBranchesDiffer(t *testing.T) {
	ice := SaturationCorrelation(-10)
	liquid := SaturationCorrelation(10)
	require.True(t, ice.Ok())
	require.True(t, liquid.Ok())
	assert.Len(t, ice.Coefficients, 7)
	assert.NotEqual(t, ice.Coefficients, liquid.Coefficients)
	assert.Equal(t, 6.5459673, liquid.Coefficients[6])
	assert.Equal(t, 4.1635019, ice.Coefficients[6])
}

func TestSaturationPressure(t *testing.T) {
	tests := []struct {
		t   float64
		pvs float64
	}{
		{25, 3169.2},
		{0, 611.2},
		{-10, 259.9},
		{100, 101418.7},
	}

	for _, test := range tests {
		pvs := SaturationPressureAt(test.t)
		assert.InDelta(t, test.pvs, pvs, 0.1, "saturation pressure at %v °C", test.t)
	}
}

func TestSaturationPressureOutOfDomain(t *testing.T) {
	assert.True(t, IsUndefined(SaturationPressure(Kelvin(250), SaturationCorrelation(250))))
	assert.True(t, IsUndefined(SaturationPressureAt(-120)))
	assert.True(t, IsUndefined(SaturationPressure(300, Correlation{})))

	// undefined propagates through the rest of the pipeline
	pv := VaporPressure(50, SaturationPressureAt(250))
	assert.True(t, IsUndefined(pv))
	assert.True(t, IsUndefined(HumidityRatio(StandardPressure, pv)))
}

func TestSaturationPressureMonotonic(t *testing.T) {
	prev := SaturationPressureAt(0)
	for temp := 0.5; temp <= 55; temp += 0.5 {
		pvs := SaturationPressureAt(temp)
		assert.Greater(t, pvs, prev, "saturation pressure at %v °C", temp)
		prev = pvs
	}

	prev = SaturationPressureAt(-100)
	for temp := -99.5; temp < 0; temp += 0.5 {
		pvs := SaturationPressureAt(temp)
		assert.Greater(t, pvs, prev, "saturation pressure at %v °C", temp)
		prev = pvs
	}
}

func TestHumidityRatio(t *testing.T) {
	for _, p := range []float64{50000, 77178.86, StandardPressure} {
		assert.Equal(t, 0.0, HumidityRatio(p, 0))
		assert.Equal(t, 0.0, HumidityRatio(p, p))
	}
	assert.Equal(t, 0.0, HumidityRatio(0, 0))
	assert.Equal(t, 0.0, HumidityRatio(-5, -5))

	// vapor pressure above total pressure is passed through as a negative ratio
	assert.Less(t, HumidityRatio(1000, 2000), 0.0)

	assert.Equal(t, HumidityRatio(90000, 3000), SaturationHumidityRatio(90000, 3000))
}

func TestVaporPressureRoundTrip(t *testing.T) {
	p := SiteAirPressure(2250)
	for _, pv := range []float64{0, 100, 1584.6, 4000} {
		w := HumidityRatio(p, pv)
		assert.InDelta(t, pv, VaporPressureFromHumidityRatio(p, w), 1e-9)
	}
}

func TestEnthalpyInverse(t *testing.T) {
	for _, temp := range []float64{-5, 0, 12.5, 25, 40} {
		for _, w := range []float64{0, 0.001, 0.0098, 0.02, 0.035} {
			h := Enthalpy(temp, w)
			got := HumidityRatioFromEnthalpy(h, temp)
			if w == 0 {
				assert.InDelta(t, 0, got, 1e-15)
				continue
			}
			assert.InEpsilon(t, w, got, 1e-9, "T=%v W=%v", temp, w)
		}
	}
}

func TestSiteAirPressure(t *testing.T) {
	assert.Equal(t, 101325.0, SiteAirPressure(0))
	assert.InDelta(t, 77178.86, SiteAirPressure(2250), 0.01)

	prev := SiteAirPressure(0)
	for z := 100.0; z <= 10000; z += 100 {
		p := SiteAirPressure(z)
		assert.Less(t, p, prev, "pressure at %v m", z)
		prev = p
	}
}

func TestSeaLevelRoomAir(t *testing.T) {
	p := SiteAirPressure(0)
	c := SaturationCorrelation(25)
	require.Equal(t, PhaseLiquid, c.Phase)

	pvs := SaturationPressure(Kelvin(25), c)
	assert.InEpsilon(t, 3169.2, pvs, 1e-4)

	pv := VaporPressure(50, pvs)
	assert.InEpsilon(t, 1584.6, pv, 1e-4)

	w := HumidityRatio(p, pv)
	assert.InEpsilon(t, 0.00986, w, 0.01)
}

func TestWetBulbLine(t *testing.T) {
	p := SiteAirPressure(2250)
	ws20 := SaturationHumidityRatio(p, SaturationPressureAt(20))
	h := Enthalpy(20, ws20)
	assert.Equal(t, h, WetBulbEnthalpy(20, p))

	assert.InDelta(t, ws20, HumidityRatioFromEnthalpy(h, 20), 1e-12)

	w30 := HumidityRatioFromEnthalpy(h, 30)
	ws30 := SaturationHumidityRatio(p, SaturationPressureAt(30))
	assert.Less(t, w30, ws30)
	assert.Less(t, w30, ws20)
}

func TestRelativeHumidityFromWetBulb(t *testing.T) {
	p := SiteAirPressure(2250)
	assert.InDelta(t, 100, RelativeHumidityFromWetBulb(20, 20, p), 1e-9)
	assert.InDelta(t, 43.8, RelativeHumidityFromWetBulb(30, 20, p), 0.1)
	assert.InDelta(t, 51.1, RelativeHumidityFromWetBulb(25, 18, StandardPressure), 0.1)
	assert.True(t, IsUndefined(RelativeHumidityFromWetBulb(250, 20, p)))
}

func TestIdempotent(t *testing.T) {
	for _, temp := range []float64{-40, -0.5, 0, 21.3, 54.9} {
		a := HumidityRatio(SiteAirPressure(2250), VaporPressure(63, SaturationPressureAt(temp)))
		b := HumidityRatio(SiteAirPressure(2250), VaporPressure(63, SaturationPressureAt(temp)))
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b))
	}
}

func TestTemperatureConversion(t *testing.T) {
	assert.Equal(t, 298.15, Kelvin(25))
	assert.InDelta(t, 25, Celsius(Kelvin(25)), 1e-12)
}
