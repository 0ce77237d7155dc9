package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/wakerefresh/internal/config"
	"github.com/jgoulah/wakerefresh/internal/nudge"
)

// Publisher sends nudges to an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	timeout     time.Duration
}

// New connects to the configured broker
func New(mqttCfg config.MQTTConfig, topicPrefix string) (*Publisher, error) {
	if !mqttCfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if mqttCfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	clientID := mqttCfg.ClientID
	if clientID == "" {
		clientID = "wakerefresh"
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if mqttCfg.Username != "" {
		opts.SetUsername(mqttCfg.Username)
	}
	if mqttCfg.Password != "" {
		opts.SetPassword(mqttCfg.Password)
	}

	// Create and connect client
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return NewWithClient(client, topicPrefix), nil
}

// NewWithClient wraps an already configured client
func NewWithClient(client mqtt.Client, topicPrefix string) *Publisher {
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		timeout:     5 * time.Second,
	}
}

// Topic returns the topic nudges are published to
func (p *Publisher) Topic() string {
	return p.topicPrefix + "/nudge"
}

// Payload encodes a nudge as {"message": ..., "at": RFC3339}
func Payload(n nudge.Nudge) ([]byte, error) {
	body, err := json.Marshal(struct {
		Message string `json:"message"`
		At      string `json:"at"`
	}{
		Message: n.Message,
		At:      n.At.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return body, nil
}

// Publish sends one nudge with QoS 0
func (p *Publisher) Publish(n nudge.Nudge) error {
	body, err := Payload(n)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.Topic(), 0, false, body)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publishing to %s: timed out", p.Topic())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.Topic(), err)
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
