// Package history holds the rolling in-memory window of telemetry samples
// that feeds the charts.
package history

import "cooling_dashboard/internal/models"

// DefaultCapacity is the chart window length.
const DefaultCapacity = 50

// Buffer is a fixed-capacity FIFO of samples kept in arrival order.
// Appending past capacity evicts the oldest sample.
// Not safe for concurrent use; the dashboard loop is the only writer and reader.
type Buffer struct {
	buf      []models.TelemetrySample
	capacity int
	head     int // next write position
	count    int
	evicted  uint64
}

// New returns an empty buffer. A non-positive capacity uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		buf:      make([]models.TelemetrySample, capacity),
		capacity: capacity,
	}
}

// Append adds s at the tail, evicting from the head once full.
func (b *Buffer) Append(s models.TelemetrySample) {
	b.buf[b.head] = s
	b.head = (b.head + 1) % b.capacity
	if b.count == b.capacity {
		// head already pointed at the oldest slot, which was just overwritten
		b.evicted++
		return
	}
	b.count++
}

// Snapshot returns the samples oldest-first. The result is a copy.
func (b *Buffer) Snapshot() []models.TelemetrySample {
	out := make([]models.TelemetrySample, b.count)
	start := (b.head - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		out[i] = b.buf[(start+i)%b.capacity]
	}
	return out
}

// Latest returns the most recently appended sample.
func (b *Buffer) Latest() (models.TelemetrySample, bool) {
	if b.count == 0 {
		return models.TelemetrySample{}, false
	}
	return b.buf[(b.head-1+b.capacity)%b.capacity], true
}

// Len returns the number of samples held.
func (b *Buffer) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Evicted returns how many samples have been dropped from the head so far.
func (b *Buffer) Evicted() uint64 { return b.evicted }
