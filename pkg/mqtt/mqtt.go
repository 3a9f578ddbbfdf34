package mqtt

import (
	"crypto/md5"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/mikesmitty/psychart/pkg/env"
)

type Client struct {
	client      paho.Client
	clientID    string
	topicPrefix string
	qos         byte
	retained    bool
	sampleRate  int
	hassSensors map[string]HassSensor
	mu          sync.Mutex
	pending     sync.WaitGroup
}

func NewClient(broker *url.URL, sampleRate int, retained bool) *Client {
	var urls []*url.URL
	urls = append(urls, broker)

	hostname, _ := os.Hostname()
	hostname = strings.Split(hostname, ".")[0]
	clientID := hostname
	if clientID == "" {
		now := time.Now().UnixNano()
		sum := md5.Sum([]byte(strconv.FormatInt(now, 10)))
		clientID = fmt.Sprintf("psychart-%x", sum[:4])
	}

	slog.Info("connecting to mqtt", "url", broker, "clientid", clientID)
	c := newClient(paho.NewClient(&paho.ClientOptions{
		Servers:        urls,
		ClientID:       clientID,
		ConnectRetry:   true,
		ConnectTimeout: 30 * time.Second,
	}), clientID, sampleRate)
	c.retained = retained
	return c
}

func newClient(pc paho.Client, clientID string, sampleRate int) *Client {
	return &Client{
		client:      pc,
		clientID:    clientID,
		topicPrefix: "psychart/" + clientID,
		qos:         1,
		sampleRate:  sampleRate,
		hassSensors: make(map[string]HassSensor),
	}
}

func (c *Client) Connect() error {
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		slog.Error("mqtt connection failed", "error", token.Error())
		return token.Error()
	}
	return nil
}

// Disconnect waits for in-flight publishes before closing the connection.
func (c *Client) Disconnect() {
	c.pending.Wait()
	c.client.Disconnect(250)
}

func (c *Client) Subscribe(topic string, handler paho.MessageHandler) error {
	if token := c.client.Subscribe(topic, c.qos, handler); token.Wait() && token.Error() != nil {
		slog.Error("mqtt subscription failed", "error", token.Error())
		return token.Error()
	}
	return nil
}

type stateSensors struct {
	temperature   string
	humidity      string
	humidityRatio string
	enthalpy      string
	dewpoint      string
	vaporPressure string
	pressure      string
}

func (c *Client) registerStateSensors() stateSensors {
	return stateSensors{
		temperature:   c.RegisterHassSensor(c.NewHassSensor("Dry Bulb Temperature", HassSensorTemperature)),
		humidity:      c.RegisterHassSensor(c.NewHassSensor("Relative Humidity", HassSensorHumidity)),
		humidityRatio: c.RegisterHassSensor(c.NewHassSensor("Humidity Ratio", HassSensorHumidityRatio)),
		enthalpy:      c.RegisterHassSensor(c.NewHassSensor("Enthalpy", HassSensorEnthalpy)),
		dewpoint:      c.RegisterHassSensor(c.NewHassSensor("Dewpoint", HassSensorTemperature)),
		vaporPressure: c.RegisterHassSensor(c.NewHassSensor("Vapor Pressure", HassSensorPressure)),
		pressure:      c.RegisterHassSensor(c.NewHassSensor("Site Pressure", HassSensorPressure)),
	}
}

func (c *Client) publishState(s stateSensors, e env.Env) {
	slog.Debug("mqtt publishing", "field", "state", "value", e, "module", "mqtt")
	c.HassPublishSensor(s.temperature, strconv.FormatFloat(e.Temperature, 'f', 2, 64))
	c.HassPublishSensor(s.humidity, strconv.FormatFloat(e.Humidity, 'f', 2, 64))
	c.HassPublishSensor(s.humidityRatio, strconv.FormatFloat(e.HumidityRatio, 'f', 5, 64))
	c.HassPublishSensor(s.enthalpy, strconv.FormatFloat(e.Enthalpy, 'f', 2, 64))
	// The dewpoint is undefined in dry air.
	if !math.IsNaN(e.Dewpoint) {
		c.HassPublishSensor(s.dewpoint, strconv.FormatFloat(e.Dewpoint, 'f', 2, 64))
	}
	c.HassPublishSensor(s.vaporPressure, strconv.FormatFloat(e.VaporPressure, 'f', 1, 64))
	c.HassPublishSensor(s.pressure, strconv.FormatFloat(e.Pressure, 'f', 0, 64))
}

// GetPublisher publishes one out of every sampleRate valid states, and the
// last state received once states is closed.
func (c *Client) GetPublisher(states <-chan env.Env) func() error {
	sensors := c.registerStateSensors()
	sample := NewSample(c.sampleRate)

	return func() error {
		var last env.Env
		for e := range states {
			if !e.Valid() {
				slog.Debug("mqtt skipping undefined state", "temp", e.Temperature, "humidity", e.Humidity, "module", "mqtt")
				continue
			}
			last = e
			if !sample.Ready() {
				continue
			}
			c.publishState(sensors, e)
		}
		if sample.Skipped() {
			c.publishState(sensors, last)
		}
		return nil
	}
}

func (c *Client) Publish(topic string, msg string) {
	t := c.client.Publish(topic, c.qos, c.retained, msg)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		_ = t.WaitTimeout(5 * time.Second)
		if t.Error() != nil {
			slog.Error("mqtt message publish failed", "error", t.Error())
		}
	}()
}
