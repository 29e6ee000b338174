package history

import (
	"testing"

	"cooling_dashboard/internal/models"
)

func sample(i int) models.TelemetrySample {
	return models.TelemetrySample{Timestamp: int64(i), InsideTemp: float64(i), OutsideTemp: float64(i) + 0.5}
}

func TestBufferEmpty(t *testing.T) {
	b := New(10)
	if got := b.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d items", len(got))
	}
	if _, ok := b.Latest(); ok {
		t.Fatalf("expected no latest sample")
	}
}

func TestBufferDefaultCapacity(t *testing.T) {
	if got := New(0).Cap(); got != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}

func TestBufferNeverExceedsCapacity(t *testing.T) {
	b := New(5)
	for i := 0; i < 23; i++ {
		b.Append(sample(i))
		if b.Len() > b.Cap() {
			t.Fatalf("after %d appends len=%d exceeds cap=%d", i+1, b.Len(), b.Cap())
		}
	}
}

func TestBufferKeepsLastCapacityInArrivalOrder(t *testing.T) {
	const capacity, extra = 50, 7
	b := New(capacity)
	for i := 0; i < capacity+extra; i++ {
		b.Append(sample(i))
	}

	got := b.Snapshot()
	if len(got) != capacity {
		t.Fatalf("expected %d items, got %d", capacity, len(got))
	}
	for i := 0; i < capacity; i++ {
		if want := int64(i + extra); got[i].Timestamp != want {
			t.Errorf("item %d: expected ts %d, got %d", i, want, got[i].Timestamp)
		}
	}
	if b.Evicted() != extra {
		t.Errorf("expected %d evictions, got %d", extra, b.Evicted())
	}
	if latest, _ := b.Latest(); latest.Timestamp != capacity+extra-1 {
		t.Errorf("latest: got %d", latest.Timestamp)
	}
}

func TestBufferRetainsArrivalNotTimestampOrder(t *testing.T) {
	b := New(4)
	for _, ts := range []int{30, 10, 20} {
		b.Append(sample(ts))
	}
	got := b.Snapshot()
	for i, want := range []int64{30, 10, 20} {
		if got[i].Timestamp != want {
			t.Fatalf("item %d: want %d got %d", i, want, got[i].Timestamp)
		}
	}
}

func TestBufferSnapshotIsACopy(t *testing.T) {
	b := New(3)
	b.Append(sample(1))
	snap := b.Snapshot()
	snap[0].InsideTemp = 99
	if again := b.Snapshot(); again[0].InsideTemp != 1 {
		t.Fatalf("snapshot mutation leaked into buffer")
	}
}
