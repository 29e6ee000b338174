package ingest

import (
	"context"
	"time"

	"cooling_dashboard/internal/remote"
)

// DataPath is the backend history endpoint.
const DataPath = "/api/data"

// PollSource fetches the backend window on a fixed interval.
type PollSource struct {
	api      *remote.Client
	path     string
	interval time.Duration
}

// NewPollSource polls api at path every interval. The first poll is immediate.
func NewPollSource(api *remote.Client, path string, interval time.Duration) *PollSource {
	if path == "" {
		path = DataPath
	}
	return &PollSource{api: api, path: path, interval: interval}
}

func (p *PollSource) Name() string { return "poll" }
func (p *PollSource) Kind() Kind   { return Poll }

// Run polls until ctx is cancelled.
func (p *PollSource) Run(ctx context.Context, out chan<- Delivery) error {
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		if !send(ctx, out, p.poll(ctx)) {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// poll performs one fetch and wraps the outcome as a delivery.
func (p *PollSource) poll(ctx context.Context) Delivery {
	d := Delivery{Source: p.Name(), Kind: Poll}
	body, err := p.api.GetRaw(ctx, p.path)
	if err != nil {
		d.State, d.Err = FeedDisconnected, err
		return d
	}
	payloads, err := ParsePayloads(body)
	if err != nil {
		d.State, d.Err = FeedDisconnected, &remote.DecodeError{Op: "GET " + p.path, Err: err}
		return d
	}
	d.State = FeedConnected
	d.Payloads = payloads
	return d
}
