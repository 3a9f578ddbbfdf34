package mqtt

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// SwitchFn exposes a command/state topic pair for an on/off setting and
// republishes its state every interval until ctx is done.
func (c *Client) SwitchFn(ctx context.Context, name string, interval time.Duration, onFn func(), offFn func(), stateFn func() bool) func() error {
	topicPrefix := fmt.Sprintf("%s/switch/%s/", c.topicPrefix, name)
	commandTopic := topicPrefix + "command"
	stateTopic := topicPrefix + "state"

	return func() error {
		slog.Debug("subscribing to mqtt switch", "switch", name, "topic", commandTopic)
		if token := c.client.Subscribe(commandTopic, c.qos, func(client paho.Client, msg paho.Message) {
			slog.Debug("mqtt switch command received", "switch", name, "command", msg.Payload(), "topic", commandTopic)
			if bytes.Equal(msg.Payload(), []byte("ON")) {
				onFn()
			} else {
				offFn()
			}
		}); token.Wait() && token.Error() != nil {
			return fmt.Errorf("mqtt switch %s: %w", name, token.Error())
		}

		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if !c.client.IsConnected() {
					slog.Error("mqtt client not connected", "switch", name)
					continue
				}
				state := "OFF"
				if stateFn() {
					state = "ON"
				}
				c.Publish(stateTopic, state)
			}
		}
	}
}
