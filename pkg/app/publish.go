package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/env"
	"github.com/mikesmitty/psychart/pkg/mqtt"
	"github.com/mikesmitty/psychart/pkg/router"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Log channels that can be turned into moist air states.
const (
	ChannelPsychrometer = "psychrometer"
	ChannelDHT11        = "dht11"
)

func Publish() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()
		l, err := readLog()
		errChk(err)

		cfg := ChartConfig()
		states, err := LogStates(l, viper.GetString("channel"), cfg.SitePressure())
		errChk(err)
		if viper.GetBool("latest") && len(states) > 0 {
			states = states[len(states)-1:]
		}

		mqttUrl, err := url.Parse(viper.GetString("mqtt-broker"))
		errChk(err)
		if mqttUrl.Host == "" {
			errChk(fmt.Errorf("no mqtt broker given"))
		}
		mc := mqtt.NewClient(mqttUrl, viper.GetInt("mqtt-sample-interval"), viper.GetBool("mqtt-retain"))
		errChk(mc.Connect())
		defer mc.Disconnect()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		g, ctx := errgroup.WithContext(ctx)

		stateCh := make(chan env.Env)
		stateFan := router.NewFan[env.Env]("state", stateCh)
		stateFan.SetDebug(viper.GetBool("debug"))
		stateFan.SetContext(ctx)
		mqttCh, err := stateFan.Subscribe("mqtt")
		errChk(err)
		logCh, err := stateFan.Subscribe("log")
		errChk(err)

		// GetPublisher registers the sensors, so it comes before the announcement.
		g.Go(mc.GetPublisher(mqttCh))
		errChk(mc.HomeAssistant())
		g.Go(stateFan.Run)
		g.Go(logStates(logCh))
		g.Go(sendStates(ctx, stateCh, states))

		errChk(g.Wait())
		slog.Info("published log", "states", len(states))
	}
}

// LogStates converts the chosen channel of every log record into a moist air
// state at the given pressure.
func LogStates(l *datalog.Log, channel string, pressure float64) ([]env.Env, error) {
	var tbs, rh string
	switch channel {
	case ChannelPsychrometer, "":
		tbs, rh = datalog.ColumnTbs, datalog.ColumnPhi
	case ChannelDHT11:
		tbs, rh = datalog.ColumnTbs2, datalog.ColumnPhi2
	default:
		return nil, fmt.Errorf("unknown channel %q", channel)
	}

	t, err := l.Series(tbs)
	if err != nil {
		return nil, err
	}
	h, err := l.Series(rh)
	if err != nil {
		return nil, err
	}
	times := l.Times()
	states := make([]env.Env, len(t))
	for i := range t {
		states[i] = env.New(t[i], h[i], pressure).At(times[i])
	}
	return states, nil
}

func sendStates(ctx context.Context, c chan<- env.Env, states []env.Env) func() error {
	return func() error {
		defer close(c)
		for _, e := range states {
			select {
			case c <- e:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
}

func logStates(c <-chan env.Env) func() error {
	return func() error {
		for e := range c {
			slog.Debug("state",
				"time", e.Time,
				"temp", e.Temperature,
				"humidity", e.Humidity,
				"w", e.HumidityRatio,
				"h", e.Enthalpy,
				"valid", e.Valid(),
			)
		}
		return nil
	}
}
