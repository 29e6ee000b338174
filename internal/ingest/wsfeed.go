package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsHandshakeTimeout = 10 * time.Second
	wsReconnectDelay   = 5 * time.Second
	wsMaxMsgSize       = 1 << 14 // 16 KB
)

// wsEnvelope is the message frame used by the backend streams.
type wsEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// WSSource subscribes to a websocket telemetry stream and keeps reconnecting.
type WSSource struct {
	url            string
	dialer         websocket.Dialer
	reconnectDelay time.Duration
}

// NewWSSource subscribes to url (ws:// or wss://).
func NewWSSource(url string) *WSSource {
	return &WSSource{
		url:            url,
		dialer:         websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout},
		reconnectDelay: wsReconnectDelay,
	}
}

func (s *WSSource) Name() string { return "websocket" }
func (s *WSSource) Kind() Kind   { return Push }

// Run keeps a subscription open until ctx is cancelled.
func (s *WSSource) Run(ctx context.Context, out chan<- Delivery) error {
	for {
		if !send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnecting}) {
			return ctx.Err()
		}
		err := s.session(ctx, out)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedDisconnected, Err: err}) {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

// session runs one connection until it breaks.
func (s *WSSource) session(ctx context.Context, out chan<- Delivery) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(wsMaxMsgSize)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	if !send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnected}) {
		return ctx.Err()
	}
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		p, ok := decodeFrame(msg)
		if !ok {
			continue
		}
		if !send(ctx, out, Delivery{Source: s.Name(), Kind: Push, State: FeedConnected, Payloads: []Payload{p}}) {
			return ctx.Err()
		}
	}
}

// decodeFrame accepts an envelope {"type":"telemetry","data":{...}} or a bare document.
func decodeFrame(msg []byte) (Payload, bool) {
	var env wsEnvelope
	if err := json.Unmarshal(msg, &env); err == nil && env.Type != "" {
		if env.Type != "telemetry" || len(env.Data) == 0 {
			return Payload{}, false
		}
		p, err := ParsePayload(env.Data)
		return p, err == nil
	}
	p, err := ParsePayload(msg)
	return p, err == nil
}
