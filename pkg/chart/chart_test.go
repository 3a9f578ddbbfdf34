package chart

import (
	"context"
	"math"
	"testing"

	"github.com/mikesmitty/psychart/pkg/psychro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, cfg Config) *Builder {
	t.Helper()
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	return b
}

func TestConfigSitePressure(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 77178.86, cfg.SitePressure(), 0.01)

	cfg.Pressure = 80000
	assert.Equal(t, 80000.0, cfg.SitePressure())

	cfg = DefaultConfig()
	cfg.Elevation = 0
	assert.Equal(t, psychro.StandardPressure, cfg.SitePressure())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"samples", func(c *Config) { c.Samples = 1 }},
		{"axis", func(c *Config) { c.TMax = c.TMin }},
		{"rh step", func(c *Config) { c.RHStep = 0 }},
		{"wet bulb step", func(c *Config) { c.WetBulbStep = -5 }},
		{"wet bulb range", func(c *Config) { c.WetBulbMax = c.WetBulbMin - 1 }},
		{"display", func(c *Config) { c.YMax = 0 }},
		{"elevation nan", func(c *Config) { c.Elevation = math.NaN() }},
		{"elevation above atmosphere", func(c *Config) { c.Elevation = 50000 }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)
			_, err := NewBuilder(cfg)
			assert.Error(t, err)
		})
	}
}

func TestAxis(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	axis := b.Axis()
	require.Len(t, axis, 200)
	assert.Equal(t, -10.0, axis[0])
	assert.Equal(t, 55.0, axis[len(axis)-1])
}

func TestRelativeHumidityLines(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	curves, err := b.RelativeHumidityLines(context.Background())
	require.NoError(t, err)
	require.Len(t, curves, 10)

	for i, c := range curves {
		assert.Equal(t, float64(10*(i+1)), c.Value)
		assert.Equal(t, i == 9, c.Saturation)
		assert.Len(t, c.Points, 200)
	}

	// each isoline lies above the previous one
	for i := 1; i < len(curves); i++ {
		for j := range curves[i].Points {
			assert.Greater(t, curves[i].Points[j].W, curves[i-1].Points[j].W)
		}
	}

	saturation := curves[9]
	at20 := saturation.Points[LabelIndex(saturation, 0.0194)]
	assert.InDelta(t, 20, at20.T, 0.4)
}

func TestRelativeHumidityValuesEndAtSaturation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RHStep = 30
	b := newBuilder(t, cfg)
	assert.Equal(t, []float64{30, 60, 90, 100}, b.RelativeHumidityValues())
}

func TestRelativeHumidityLineSkipsOutOfDomain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TMin = 150
	cfg.TMax = 250
	cfg.Samples = 101
	b := newBuilder(t, cfg)

	c := b.RelativeHumidityLine(50)
	require.Len(t, c.Points, 50)
	for _, p := range c.Points {
		assert.Less(t, p.T, 200.0)
		assert.False(t, math.IsNaN(p.W))
	}
}

func TestWetBulbLines(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	curves, err := b.WetBulbLines(context.Background())
	require.NoError(t, err)
	require.Len(t, curves, 9)
	assert.Equal(t, -5.0, curves[0].Value)
	assert.Equal(t, 35.0, curves[8].Value)

	for _, c := range curves {
		anchor, ok := c.Anchor()
		require.True(t, ok)
		assert.Equal(t, c.Value, anchor.T)
		ws := psychro.SaturationHumidityRatio(b.Pressure(), psychro.SaturationPressureAt(c.Value))
		assert.InDelta(t, ws, anchor.W, 1e-12)

		for i := 1; i < len(c.Points); i++ {
			assert.Greater(t, c.Points[i].T, c.Points[i-1].T)
			assert.Less(t, c.Points[i].W, c.Points[i-1].W)
		}
	}
}

func TestWetBulbLineUnsaturated(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	c := b.WetBulbLine(20)
	p := b.Pressure()
	for _, pt := range c.Points[1:] {
		ws := psychro.SaturationHumidityRatio(p, psychro.SaturationPressureAt(pt.T))
		assert.Less(t, pt.W, ws, "T=%v", pt.T)
	}
}

func TestWetBulbLineOutOfDomain(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	_, ok := b.WetBulbLine(300).Anchor()
	assert.False(t, ok)
}

func TestSampleCanceled(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.RelativeHumidityLines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeasuredPoints(t *testing.T) {
	p := psychro.StandardPressure
	tbs := []float64{25, math.NaN(), 20, 18, 250}
	rh := []float64{50, 40, math.NaN(), 60, 50}

	points := MeasuredPoints(p, tbs, rh)
	require.Len(t, points, 3)
	assert.Equal(t, 25.0, points[0].T)
	assert.InEpsilon(t, 0.00986, points[0].W, 0.01)
	assert.Equal(t, 18.0, points[1].T)
	// out of correlation domain propagates as undefined
	assert.True(t, math.IsNaN(points[2].W))

	assert.Empty(t, MeasuredPoints(p, []float64{20}, nil))
}

func TestLabelIndex(t *testing.T) {
	c := Curve{Points: []Point{{0, 0.001}, {10, 0.005}, {20, 0.02}, {30, 0.03}}}
	assert.Equal(t, 2, LabelIndex(c, 0.020))
	assert.Equal(t, 0, LabelIndex(c, 0))
	assert.Equal(t, 4, LabelIndex(c, 0.05))
}
