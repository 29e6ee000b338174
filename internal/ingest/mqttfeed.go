package ingest

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttConnectTimeout    = 10 * time.Second
	mqttRetryInterval     = 5 * time.Second
	mqttDisconnectQuiesce = 250 // ms
)

// MQTTSource subscribes to the sensor topic on a broker. The paho client
// reconnects on its own; connection loss only degrades the feed state.
type MQTTSource struct {
	broker   string
	clientID string
	topic    string
}

// NewMQTTSource subscribes to topic on broker (tcp://host:1883).
func NewMQTTSource(broker, clientID, topic string) *MQTTSource {
	return &MQTTSource{broker: broker, clientID: clientID, topic: topic}
}

func (s *MQTTSource) Name() string { return "mqtt" }
func (s *MQTTSource) Kind() Kind   { return Push }

// Run connects, subscribes and blocks until ctx is cancelled.
func (s *MQTTSource) Run(ctx context.Context, out chan<- Delivery) error {
	if !send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnecting}) {
		return ctx.Err()
	}

	opts := paho.NewClientOptions().
		AddBroker(s.broker).
		SetClientID(s.clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(mqttRetryInterval).
		SetOnConnectHandler(func(c paho.Client) {
			// resubscribe on every (re)connect; the session is clean
			token := c.Subscribe(s.topic, 0, func(_ paho.Client, m paho.Message) {
				s.handle(ctx, out, m.Payload())
			})
			if token.WaitTimeout(mqttConnectTimeout) && token.Error() == nil {
				send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnected})
				return
			}
			send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedDisconnected,
				Err: fmt.Errorf("subscribe %s: %v", s.topic, token.Error())})
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedDisconnected, Err: err})
		})

	client := paho.NewClient(opts)
	// with ConnectRetry the token only completes once connected or on ctx exit
	client.Connect()
	<-ctx.Done()
	client.Disconnect(mqttDisconnectQuiesce)
	return ctx.Err()
}

// handle turns one message into a delivery. Undecodable messages are dropped.
func (s *MQTTSource) handle(ctx context.Context, out chan<- Delivery, payload []byte) {
	p, err := ParsePayload(payload)
	if err != nil {
		send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnected, Err: err})
		return
	}
	send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnected, Payloads: []Payload{p}})
}
