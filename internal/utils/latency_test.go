package utils

import (
	"testing"
	"time"
)

func TestLatencyTrackerPercentile(t *testing.T) {
	tracker := NewLatencyTracker(10)
	if tracker.Percentile(95) != 0 {
		t.Fatalf("empty tracker must return zero")
	}

	for i := 1; i <= 10; i++ {
		tracker.Observe(time.Duration(i) * time.Millisecond)
	}
	if got := tracker.Percentile(0); got != time.Millisecond {
		t.Fatalf("p0: expected 1ms, got %v", got)
	}
	if got := tracker.Percentile(100); got != 10*time.Millisecond {
		t.Fatalf("p100: expected 10ms, got %v", got)
	}
	if got := tracker.Percentile(50); got != 6*time.Millisecond {
		t.Fatalf("p50: expected 6ms, got %v", got)
	}
}

func TestLatencyTrackerEviction(t *testing.T) {
	tracker := NewLatencyTracker(3)
	for i := 1; i <= 5; i++ {
		tracker.Observe(time.Duration(i) * time.Second)
	}
	if tracker.Count() != 3 {
		t.Fatalf("expected window of 3, got %d", tracker.Count())
	}
	// Oldest samples evicted; minimum should now be 3s.
	if got := tracker.Percentile(0); got != 3*time.Second {
		t.Fatalf("expected 3s minimum, got %v", got)
	}
}
