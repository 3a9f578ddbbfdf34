package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairs(t *testing.T) {
	nan := math.NaN()
	x, y := Pairs([]float64{1, nan, 3, 4, 5}, []float64{2, 3, nan, 5})
	assert.Equal(t, []float64{1, 4}, x)
	assert.Equal(t, []float64{2, 5}, y)
}

func TestCompare(t *testing.T) {
	nan := math.NaN()
	a := []float64{40, 45, nan, 50, 55, 60}
	b := []float64{43, 48, 50, 53, 58, 63}

	c := Compare(a, b)
	assert.Equal(t, 5, c.N)
	assert.InDelta(t, 50, c.MeanA, 1e-12)
	assert.InDelta(t, 53, c.MeanB, 1e-12)
	assert.InDelta(t, 3, c.Bias, 1e-12)
	assert.InDelta(t, 0, c.BiasStd, 1e-12)
	assert.InDelta(t, 3, c.Intercept, 1e-9)
	assert.InDelta(t, 1, c.Slope, 1e-12)
	assert.InDelta(t, 1, c.RSquared, 1e-12)
	assert.InDelta(t, 3, c.P95, 1e-12)
}

func TestCompareScaled(t *testing.T) {
	a := []float64{10, 20, 30, 40}
	b := []float64{20, 40, 60, 80}

	c := Compare(a, b)
	assert.InDelta(t, 2, c.Slope, 1e-12)
	assert.InDelta(t, 0, c.Intercept, 1e-9)
	assert.InDelta(t, 25, c.Bias, 1e-12)
	assert.InDelta(t, 40, c.P95, 1e-12)
}

func TestCompareEmpty(t *testing.T) {
	c := Compare([]float64{math.NaN()}, []float64{1})
	assert.Equal(t, 0, c.N)
	assert.True(t, math.IsNaN(c.Bias))
	assert.True(t, math.IsNaN(c.Slope))

	c = Compare([]float64{1}, []float64{2})
	assert.Equal(t, 1, c.N)
	assert.Equal(t, 1.0, c.Bias)
	assert.True(t, math.IsNaN(c.Slope))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{3, math.NaN(), 1, 2})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2.0, s.Mean)
	assert.Equal(t, 1.0, s.Std)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)

	assert.True(t, math.IsNaN(Summarize(nil).Mean))
}
