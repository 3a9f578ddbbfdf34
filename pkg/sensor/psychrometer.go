package sensor

import (
	"context"
	"log/slog"

	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/psychro"
)

// Psychrometer pairs the reference humidity sensor with the wet bulb RTD.
// A record is emitted for every wet bulb reading once a reference reading is
// available. When dry is nil the reference temperature is used as the
// psychrometer dry bulb.
type Psychrometer struct {
	Pressure float64
	Ref      <-chan Reading
	Wet      <-chan Reading
	Dry      <-chan Reading
}

// Record builds a log row. Tbs2/phi2 carry the reference sensor, Tbs/Tbh the
// psychrometer and phi the humidity derived from it.
func (p Psychrometer) Record(ref, wet Reading, dry float64) *datalog.Record {
	return &datalog.Record{
		Timestamp: datalog.Time{Time: wet.Time},
		Tbs:       datalog.NewValue(dry),
		Tbh:       datalog.NewValue(wet.Temperature),
		Tbs2:      datalog.NewValue(ref.Temperature),
		Phi:       datalog.NewValue(psychro.RelativeHumidityFromWetBulb(dry, wet.Temperature, p.Pressure)),
		Phi2:      datalog.NewValue(ref.Humidity),
	}
}

// Records runs until ctx is done or the wet bulb channel closes.
func (p Psychrometer) Records(ctx context.Context) (<-chan *datalog.Record, func() error) {
	c := make(chan *datalog.Record, 1)
	return c, func() error {
		defer close(c)
		var ref, dry *Reading
		refCh, dryCh := p.Ref, p.Dry
		for {
			select {
			case <-ctx.Done():
				return nil
			case r, ok := <-refCh:
				if !ok {
					refCh = nil
					continue
				}
				ref = &r
			case r, ok := <-dryCh:
				if !ok {
					dryCh = nil
					continue
				}
				dry = &r
			case wet, ok := <-p.Wet:
				if !ok {
					return nil
				}
				if ref == nil || (p.Dry != nil && dry == nil) {
					slog.Debug("waiting for dry bulb reading", "module", "psychrometer")
					continue
				}
				tbs := ref.Temperature
				if dry != nil {
					tbs = dry.Temperature
				}
				rec := p.Record(*ref, wet, tbs)
				slog.Debug("psychrometer record", "tbs", tbs, "tbh", wet.Temperature, "phi", rec.Phi.Float(), "module", "psychrometer")
				select {
				case c <- rec:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}
