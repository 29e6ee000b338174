package ingest

import (
	"time"

	"cooling_dashboard/internal/history"
	"cooling_dashboard/internal/models"
)

// Kind tells how a feed delivers data.
type Kind int

const (
	// Push feeds deliver one document per notification, as it happens.
	Push Kind = iota
	// Poll feeds deliver the server's whole window, newest-first.
	Poll
)

func (k Kind) String() string {
	if k == Poll {
		return "poll"
	}
	return "push"
}

// FeedState is the connection indicator of a feed.
type FeedState string

const (
	FeedConnecting   FeedState = "connecting"
	FeedConnected    FeedState = "connected"
	FeedDisconnected FeedState = "disconnected"
)

// Delivery is what a Source hands to the ingress. A delivery without payloads
// is a status notification.
type Delivery struct {
	Source   string
	Kind     Kind
	Payloads []Payload
	State    FeedState
	Err      error
}

// IsStatus reports whether d carries no documents.
func (d Delivery) IsStatus() bool { return len(d.Payloads) == 0 }

// Ingress normalizes deliveries and appends them to the buffer.
//
// Push documents are always appended in arrival order. Poll windows are
// reversed to oldest-first and only samples newer than the watermark (the
// largest timestamp ingested from any feed) are appended, so the polled
// window fills gaps without duplicating what the push feed already delivered.
type Ingress struct {
	buf       *history.Buffer
	now       func() time.Time
	watermark int64
	onSample  func(models.TelemetrySample)
}

// NewIngress writes into buf. onSample, when set, runs after every append.
func NewIngress(buf *history.Buffer, now func() time.Time, onSample func(models.TelemetrySample)) *Ingress {
	if now == nil {
		now = time.Now
	}
	return &Ingress{buf: buf, now: now, onSample: onSample}
}

// Buffer returns the buffer the ingress appends to.
func (in *Ingress) Buffer() *history.Buffer { return in.buf }

// Watermark returns the largest timestamp ingested so far.
func (in *Ingress) Watermark() int64 { return in.watermark }

// Accept ingests d and returns the samples that were appended.
func (in *Ingress) Accept(d Delivery) []models.TelemetrySample {
	if d.IsStatus() {
		return nil
	}
	now := in.now()
	var appended []models.TelemetrySample

	if d.Kind == Poll {
		for i := len(d.Payloads) - 1; i >= 0; i-- {
			s := Normalize(d.Payloads[i], now)
			if s.Timestamp <= in.watermark {
				continue
			}
			in.append(s)
			appended = append(appended, s)
		}
		return appended
	}

	for _, p := range d.Payloads {
		s := Normalize(p, now)
		in.append(s)
		appended = append(appended, s)
	}
	return appended
}

func (in *Ingress) append(s models.TelemetrySample) {
	in.buf.Append(s)
	if s.Timestamp > in.watermark {
		in.watermark = s.Timestamp
	}
	if in.onSample != nil {
		in.onSample(s)
	}
}
