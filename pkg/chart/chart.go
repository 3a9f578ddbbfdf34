// Package chart samples the psychrometric functions over a temperature axis
// into the curves of a psychrometric chart.
package chart

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/mikesmitty/psychart/pkg/psychro"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

type Point struct {
	T float64 // dry-bulb temperature, °C
	W float64 // humidity ratio, kg/kg
}

type Curve struct {
	// Value is the relative humidity in percent or the wet-bulb temperature in
	// °C, depending on the kind of line.
	Value      float64
	Saturation bool
	Points     []Point
}

// Builder produces the chart curves for one Config.
type Builder struct {
	cfg      Config
	pressure float64
}

func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, pressure: cfg.SitePressure()}, nil
}

func (b *Builder) Config() Config {
	return b.cfg
}

func (b *Builder) Pressure() float64 {
	return b.pressure
}

// Axis returns the evenly spaced temperature samples.
func (b *Builder) Axis() []float64 {
	return floats.Span(make([]float64, b.cfg.Samples), b.cfg.TMin, b.cfg.TMax)
}

// steps returns lo, lo+step, ... up to and including hi, computed by index
// to avoid accumulating rounding error.
func steps(lo, hi, step float64) []float64 {
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	v := make([]float64, n)
	for i := range v {
		v[i] = lo + float64(i)*step
	}
	return v
}

// RelativeHumidityValues lists the isoline values, ending with 100.
func (b *Builder) RelativeHumidityValues() []float64 {
	v := steps(b.cfg.RHStep, 100, b.cfg.RHStep)
	if v[len(v)-1] != 100 {
		v = append(v, 100)
	}
	return v
}

func (b *Builder) WetBulbValues() []float64 {
	return steps(b.cfg.WetBulbMin, b.cfg.WetBulbMax, b.cfg.WetBulbStep)
}

// RelativeHumidityLine samples the constant relative humidity line rh over the
// axis. Temperatures without a saturation correlation are left out.
func (b *Builder) RelativeHumidityLine(rh float64) Curve {
	axis := b.Axis()
	c := Curve{
		Value:      rh,
		Saturation: rh == 100,
		Points:     make([]Point, 0, len(axis)),
	}
	for _, t := range axis {
		pvs := psychro.SaturationPressure(psychro.Kelvin(t), psychro.SaturationCorrelation(t))
		if psychro.IsUndefined(pvs) {
			continue
		}
		w := psychro.HumidityRatio(b.pressure, psychro.VaporPressure(rh, pvs))
		c.Points = append(c.Points, Point{T: t, W: w})
	}
	return c
}

// WetBulbLine traces the constant enthalpy line through saturated air at
// wet-bulb temperature tbh, for every axis temperature at or above tbh. The
// first point is the saturation anchor.
func (b *Builder) WetBulbLine(tbh float64) Curve {
	h := psychro.WetBulbEnthalpy(tbh, b.pressure)
	c := Curve{Value: tbh}
	if psychro.IsUndefined(h) {
		return c
	}
	c.Points = append(c.Points, Point{T: tbh, W: psychro.HumidityRatioFromEnthalpy(h, tbh)})
	for _, t := range b.Axis() {
		if t <= tbh {
			continue
		}
		c.Points = append(c.Points, Point{T: t, W: psychro.HumidityRatioFromEnthalpy(h, t)})
	}
	return c
}

// Anchor is the saturation point of a wet-bulb line.
func (c Curve) Anchor() (Point, bool) {
	if len(c.Points) == 0 {
		return Point{}, false
	}
	return c.Points[0], true
}

func (b *Builder) RelativeHumidityLines(ctx context.Context) ([]Curve, error) {
	return b.sample(ctx, "relative humidity", b.RelativeHumidityValues(), b.RelativeHumidityLine)
}

func (b *Builder) WetBulbLines(ctx context.Context) ([]Curve, error) {
	return b.sample(ctx, "wet bulb", b.WetBulbValues(), b.WetBulbLine)
}

func (b *Builder) sample(ctx context.Context, kind string, values []float64, fn func(float64) Curve) ([]Curve, error) {
	curves := make([]Curve, len(values))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			curves[i] = fn(v)
			slog.Debug("sampled curve", "kind", kind, "value", v, "points", len(curves[i].Points), "module", "chart")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}

// MeasuredPoints converts (dry-bulb, relative humidity) observations into
// chart coordinates. Pairs with a missing value in either input are skipped.
func MeasuredPoints(p float64, tbs, rh []float64) []Point {
	n := min(len(tbs), len(rh))
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(tbs[i]) || math.IsNaN(rh[i]) {
			continue
		}
		pvs := psychro.SaturationPressure(psychro.Kelvin(tbs[i]), psychro.SaturationCorrelation(tbs[i]))
		w := psychro.HumidityRatio(p, psychro.VaporPressure(rh[i], pvs))
		points = append(points, Point{T: tbs[i], W: w})
	}
	return points
}

// LabelIndex returns the index of the first point whose humidity ratio is at
// least w, or len(c.Points) when the curve never reaches it.
func LabelIndex(c Curve, w float64) int {
	return sort.Search(len(c.Points), func(i int) bool {
		return c.Points[i].W >= w
	})
}
