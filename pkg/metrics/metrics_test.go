package metrics

import (
	"math"
	"testing"

	"github.com/mikesmitty/psychart/pkg/env"
	"github.com/mikesmitty/psychart/pkg/psychro"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorEmpty(t *testing.T) {
	c := NewCollector(prometheus.Labels{"site": "test"})
	assert.Equal(t, 1, testutil.CollectAndCount(c))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "psychart_up"))
}

func TestCollectorState(t *testing.T) {
	c := NewCollector(nil)
	states := make(chan env.Env, 2)
	states <- env.New(250, 50, psychro.StandardPressure)
	states <- env.New(25, 50, psychro.StandardPressure)
	close(states)
	require.NoError(t, c.Consume(states)())

	assert.Equal(t, 8, testutil.CollectAndCount(c))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		values[f.GetName()] = f.GetMetric()[0].GetGauge().GetValue()
	}
	assert.Equal(t, 1.0, values["psychart_up"])
	assert.InDelta(t, 0.009881, values["psychart_humidity_ratio"], 1e-6)
	assert.Equal(t, psychro.StandardPressure, values["psychart_pressure_pascals"])
}

func TestCollectorUndefined(t *testing.T) {
	c := NewCollector(nil)
	c.Set(env.New(math.NaN(), 50, psychro.StandardPressure))
	assert.Equal(t, 1, testutil.CollectAndCount(c))
}

func TestCollectorDryAir(t *testing.T) {
	c := NewCollector(nil)
	c.Set(env.New(20, 0, psychro.StandardPressure))
	assert.Equal(t, 7, testutil.CollectAndCount(c))
	assert.Equal(t, 0, testutil.CollectAndCount(c, "psychart_dewpoint_celsius"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "psychart_humidity_ratio"))
}
