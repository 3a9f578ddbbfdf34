// Package sensor polls the psychrometer hardware and turns the readings into
// log records.
package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Senser is implemented by the periph drivers in use: sht4x.Dev and
// max31865.Dev.
type Senser interface {
	Sense(e *physic.Env) error
}

// Reading is one sample. Humidity is NaN for sensors that only measure
// temperature.
type Reading struct {
	Time        time.Time
	Temperature float64
	Humidity    float64
}

// HumidityChannel polls a temperature/humidity sensor such as the SHT4x.
func HumidityChannel(ctx context.Context, name string, dev Senser, interval time.Duration) (<-chan Reading, func() error) {
	return channel(ctx, name, dev, interval, true)
}

// TemperatureChannel polls a temperature-only sensor such as a MAX31865 RTD.
func TemperatureChannel(ctx context.Context, name string, dev Senser, interval time.Duration) (<-chan Reading, func() error) {
	return channel(ctx, name, dev, interval, false)
}

func channel(ctx context.Context, name string, dev Senser, interval time.Duration, humidity bool) (<-chan Reading, func() error) {
	c := make(chan Reading, 1)
	ctx, cancelFunc := context.WithCancel(ctx)
	return c, func() error {
		defer cancelFunc()
		defer close(c)
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case now := <-ticker.C:
				var e physic.Env
				if err := dev.Sense(&e); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				r := Reading{
					Time:        now,
					Temperature: e.Temperature.Celsius(),
					Humidity:    math.NaN(),
				}
				if humidity {
					r.Humidity = float64(e.Humidity) / float64(physic.PercentRH)
				}
				slog.Debug("publishing reading", "temp", r.Temperature, "humidity", r.Humidity, "module", name)
				select {
				case c <- r:
				case <-done:
					return nil
				}
			}
		}
	}
}
