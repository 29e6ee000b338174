package publish

import (
	"fmt"
	"time"

	"cooling_dashboard/internal/models"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	retryInterval  = 5 * time.Second
	disconnectMs   = 1000
)

// MQTTPublisher publishes to a broker.
type MQTTPublisher struct {
	client      paho.Client
	sensorTopic string
	cmdTopic    string
}

// NewMQTTPublisher connects to broker. Empty topics fall back to the defaults.
func NewMQTTPublisher(broker, clientID, sensorTopic, cmdTopic string) (*MQTTPublisher, error) {
	if sensorTopic == "" {
		sensorTopic = TopicSensor
	}
	if cmdTopic == "" {
		cmdTopic = TopicCommands
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return &MQTTPublisher{client: client, sensorTopic: sensorTopic, cmdTopic: cmdTopic}, nil
}

// PublishTelemetry sends the latest reading, retained so new subscribers get it at once.
func (p *MQTTPublisher) PublishTelemetry(t models.DeviceTelemetry) error {
	payload, err := FormatTelemetry(t, time.Now())
	if err != nil {
		return fmt.Errorf("format telemetry: %w", err)
	}
	return p.publish(p.sensorTopic, 0, true, payload)
}

// PublishCommand sends an actuator command with QoS 1.
func (p *MQTTPublisher) PublishCommand(typ string, details map[string]any) error {
	payload, err := FormatCommand(typ, details, time.Now())
	if err != nil {
		return fmt.Errorf("format command: %w", err)
	}
	return p.publish(p.cmdTopic, 1, false, payload)
}

func (p *MQTTPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(disconnectMs)
	return nil
}
