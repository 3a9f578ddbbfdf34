package app

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mikesmitty/max31865"
	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/env"
	"github.com/mikesmitty/psychart/pkg/metrics"
	"github.com/mikesmitty/psychart/pkg/mqtt"
	"github.com/mikesmitty/psychart/pkg/router"
	"github.com/mikesmitty/psychart/pkg/sensor"
	"github.com/mikesmitty/psychart/pkg/watchdog"
	"github.com/mikesmitty/sht4x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var ErrSensorStalled = errors.New("no psychrometer readings within the watchdog timeout")

func Record() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()

		i2cBus := viper.GetString("i2cbus")
		spiBus := viper.GetString("spibus")
		drySpiBus := viper.GetString("dry-spibus")
		interval := viper.GetDuration("interval")
		pressure := ChartConfig().SitePressure()

		hostState, err := host.Init()
		errChk(err)
		for i := range hostState.Loaded {
			slog.Debug("loaded", "module", hostState.Loaded[i])
		}
		for i := range hostState.Failed {
			slog.Error("failed", "module", hostState.Failed[i])
		}
		for i := range hostState.Skipped {
			slog.Debug("skipped", "module", hostState.Skipped[i])
		}

		ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancelFunc()
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(-1)

		// SHT4x reference
		ib, err := i2creg.Open(i2cBus)
		errChk(err)
		defer ib.Close()
		refDev, err := sht4x.New(ib, nil)
		errChk(err)
		refCh, refFn := sensor.HumidityChannel(ctx, "sht4x", refDev, interval)
		g.Go(refFn)

		// MAX31865 wet bulb
		wb, err := spireg.Open(spiBus)
		errChk(err)
		defer wb.Close()
		wetDev, err := max31865.New(wb, nil)
		errChk(err)
		wetCh, wetFn := sensor.TemperatureChannel(ctx, "max31865-wet", wetDev, interval)
		g.Go(wetFn)

		psy := sensor.Psychrometer{Pressure: pressure, Ref: refCh, Wet: wetCh}

		// Optional MAX31865 dry bulb
		if drySpiBus != "" {
			db, err := spireg.Open(drySpiBus)
			errChk(err)
			defer db.Close()
			dryDev, err := max31865.New(db, nil)
			errChk(err)
			dryCh, dryFn := sensor.TemperatureChannel(ctx, "max31865-dry", dryDev, interval)
			g.Go(dryFn)
			psy.Dry = dryCh
		}

		recCh, recFn := psy.Records(ctx)
		g.Go(recFn)
		recFan := router.NewFan[*datalog.Record]("record", recCh)
		recFan.SetDebug(viper.GetBool("debug"))
		recFan.SetContext(ctx)

		// Log file
		path := viper.GetString("log")
		w, closer, err := datalog.OpenFile(path)
		errChk(err)
		defer closer.Close()
		var recording atomic.Bool
		recording.Store(true)
		logCh, err := recFan.Subscribe("log")
		errChk(err)
		g.Go(WriteRecords(w, logCh, recording.Load))
		slog.Info("recording", "path", path, "interval", interval, "pressure", pressure)

		// Sensor watchdog
		if timeout := viper.GetDuration("watchdog-timeout"); timeout > 0 {
			wdCh, err := recFan.Subscribe("watchdog")
			errChk(err)
			g.Go(watchdog.NewWatchdog(ctx, "record", timeout, func() error { return ErrSensorStalled }, wdCh))
		}

		// States
		stateCh, err := recFan.Subscribe("state")
		errChk(err)
		envCh := make(chan env.Env, 1)
		g.Go(RecordStates(ctx, stateCh, envCh, pressure))
		stateFan := router.NewFan[env.Env]("state", envCh)
		stateFan.SetDebug(viper.GetBool("debug"))
		stateFan.SetContext(ctx)
		logStateCh, err := stateFan.Subscribe("log")
		errChk(err)
		g.Go(logStates(logStateCh))

		// Prometheus
		if addr := viper.GetString("metrics-listen"); addr != "" {
			collector := metrics.NewCollector(prometheus.Labels{"channel": ChannelPsychrometer})
			reg := prometheus.NewRegistry()
			errChk(reg.Register(collector))
			metricsCh, err := stateFan.Subscribe("metrics")
			errChk(err)
			g.Go(collector.Consume(metricsCh))
			g.Go(metrics.Serve(ctx, addr, viper.GetString("metrics-path"), reg))
		}

		// MQTT
		if broker := viper.GetString("mqtt-broker"); broker != "" {
			mqttUrl, err := url.Parse(broker)
			errChk(err)
			mc := mqtt.NewClient(mqttUrl, viper.GetInt("mqtt-sample-interval"), viper.GetBool("mqtt-retain"))
			errChk(mc.Connect())
			defer mc.Disconnect()
			mqttCh, err := stateFan.Subscribe("mqtt")
			errChk(err)
			g.Go(mc.GetPublisher(mqttCh))
			errChk(mc.HomeAssistant())
			// Publish/handle the recording-enable switch
			g.Go(mc.SwitchFn(ctx, "recording", interval, func() { recording.Store(true) }, func() { recording.Store(false) }, recording.Load))
		}

		g.Go(recFan.Run)
		g.Go(stateFan.Run)

		slog.Debug("waiting for goroutines to finish")
		err = g.Wait()
		slog.Info("shutting down...")
		errChk(err)
	}
}

// WriteRecords appends every record to w while enabled reports true.
func WriteRecords(w *datalog.Writer, records <-chan *datalog.Record, enabled func() bool) func() error {
	return func() error {
		for rec := range records {
			if !enabled() {
				slog.Debug("recording disabled, dropping record", "time", rec.Timestamp.Time)
				continue
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}
}

// RecordStates converts psychrometer records into moist air states. out is
// closed once records is.
func RecordStates(ctx context.Context, records <-chan *datalog.Record, out chan<- env.Env, pressure float64) func() error {
	return func() error {
		defer close(out)
		for rec := range records {
			select {
			case out <- env.New(rec.Tbs.Float(), rec.Phi.Float(), pressure).At(rec.Timestamp.Time):
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	}
}
