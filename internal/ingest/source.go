package ingest

import "context"

// Source is a telemetry feed. Run blocks until ctx is cancelled, sending
// documents and status changes on out. Transport errors are reported as
// status deliveries and never end Run.
type Source interface {
	Name() string
	Kind() Kind
	Run(ctx context.Context, out chan<- Delivery) error
}

// send delivers d unless ctx is done first.
func send(ctx context.Context, out chan<- Delivery, d Delivery) bool {
	select {
	case out <- d:
		return true
	case <-ctx.Done():
		return false
	}
}
