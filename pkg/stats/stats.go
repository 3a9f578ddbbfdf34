package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Comparison summarizes how channel b tracks reference channel a.
type Comparison struct {
	N         int
	MeanA     float64
	MeanB     float64
	Bias      float64 // mean of b - a
	BiasStd   float64
	Intercept float64 // b = Intercept + Slope*a
	Slope     float64
	RSquared  float64
	P95       float64 // 95th percentile of |b - a|
}

// Pairs returns the samples where both a and b are present.
func Pairs(a, b []float64) ([]float64, []float64) {
	n := min(len(a), len(b))
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

func Compare(a, b []float64) Comparison {
	x, y := Pairs(a, b)
	c := Comparison{N: len(x)}
	if c.N == 0 {
		nan := math.NaN()
		return Comparison{MeanA: nan, MeanB: nan, Bias: nan, BiasStd: nan, Intercept: nan, Slope: nan, RSquared: nan, P95: nan}
	}

	diff := make([]float64, c.N)
	for i := range x {
		diff[i] = y[i] - x[i]
	}
	c.MeanA = stat.Mean(x, nil)
	c.MeanB = stat.Mean(y, nil)
	c.Bias, c.BiasStd = stat.MeanStdDev(diff, nil)

	if c.N > 1 {
		c.Intercept, c.Slope = stat.LinearRegression(x, y, nil, false)
		c.RSquared = stat.RSquared(x, y, nil, c.Intercept, c.Slope)
	} else {
		c.Intercept, c.Slope, c.RSquared = math.NaN(), math.NaN(), math.NaN()
	}

	for i := range diff {
		diff[i] = math.Abs(diff[i])
	}
	sort.Float64s(diff)
	c.P95 = stat.Quantile(0.95, stat.Empirical, diff, nil)
	return c
}

// Summary holds the descriptive statistics of one channel.
type Summary struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

func Summarize(s []float64) Summary {
	x, _ := Pairs(s, s)
	if len(x) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, Max: nan}
	}
	mean, std := stat.MeanStdDev(x, nil)
	sort.Float64s(x)
	return Summary{
		N:    len(x),
		Mean: mean,
		Std:  std,
		Min:  x[0],
		Max:  x[len(x)-1],
	}
}
