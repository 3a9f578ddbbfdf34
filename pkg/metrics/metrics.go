// Package metrics exposes the latest moist air state as Prometheus gauges.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/mikesmitty/psychart/pkg/env"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	mu    sync.Mutex
	state env.Env
	held  bool

	up            *prometheus.Desc
	temperature   *prometheus.Desc
	humidity      *prometheus.Desc
	humidityRatio *prometheus.Desc
	enthalpy      *prometheus.Desc
	dewpoint      *prometheus.Desc
	vaporPressure *prometheus.Desc
	pressure      *prometheus.Desc
}

func NewCollector(labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("psychart_"+name, help, nil, labels)
	}
	return &Collector{
		up:            desc("up", "Value is 1 if the last state was defined, 0 otherwise."),
		temperature:   desc("dry_bulb_celsius", "Dry bulb temperature in Celsius"),
		humidity:      desc("humidity_percent", "Relative humidity in percent"),
		humidityRatio: desc("humidity_ratio", "Humidity ratio in kg water / kg dry air"),
		enthalpy:      desc("enthalpy_kj_per_kg", "Specific enthalpy in kJ / kg dry air"),
		dewpoint:      desc("dewpoint_celsius", "Dew point in Celsius"),
		vaporPressure: desc("vapor_pressure_pascals", "Partial pressure of water vapor in Pa"),
		pressure:      desc("pressure_pascals", "Site air pressure in Pa"),
	}
}

// Set replaces the reported state.
func (c *Collector) Set(e env.Env) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = e
	c.held = true
}

// Consume sets every state received until states is closed.
func (c *Collector) Consume(states <-chan env.Env) func() error {
	return func() error {
		for e := range states {
			c.Set(e)
		}
		return nil
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.temperature
	ch <- c.humidity
	ch <- c.humidityRatio
	ch <- c.enthalpy
	ch <- c.dewpoint
	ch <- c.vaporPressure
	ch <- c.pressure
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	e, held := c.state, c.held
	c.mu.Unlock()

	if !held || !e.Valid() {
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)
	for _, m := range []struct {
		desc  *prometheus.Desc
		value float64
	}{
		{c.temperature, e.Temperature},
		{c.humidity, e.Humidity},
		{c.humidityRatio, e.HumidityRatio},
		{c.enthalpy, e.Enthalpy},
		{c.dewpoint, e.Dewpoint},
		{c.vaporPressure, e.VaporPressure},
		{c.pressure, e.Pressure},
	} {
		// The dewpoint is undefined in dry air.
		if math.IsNaN(m.value) {
			continue
		}
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.GaugeValue, m.value)
	}
}

// Serve exposes the registry on addr at path until ctx is done.
func Serve(ctx context.Context, addr, path string, reg *prometheus.Registry) func() error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return func() error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		slog.Info("serving metrics", "address", addr, "path", path, "module", "metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
