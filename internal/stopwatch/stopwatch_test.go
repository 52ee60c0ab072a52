package stopwatch

import (
	"testing"
	"time"
)

func TestStopwatch_TimeLimitReached_Unbounded(t *testing.T) {
	sw := New()
	sw.Start()
	if sw.TimeLimitReached(0) {
		t.Fatal("a non-positive limit must never report as reached")
	}
	if sw.TimeLimitReached(-1) {
		t.Fatal("a negative limit must never report as reached")
	}
}

func TestStopwatch_StopFreezesDuration(t *testing.T) {
	sw := New()
	sw.Start()
	time.Sleep(2 * time.Millisecond)
	sw.Stop()
	frozen := sw.Duration()
	time.Sleep(2 * time.Millisecond)
	if sw.Duration() != frozen {
		t.Fatalf("Duration() changed after Stop(): %v -> %v", frozen, sw.Duration())
	}
}

func TestStopwatch_TimeLimitReached_Exceeded(t *testing.T) {
	sw := New()
	sw.Start()
	time.Sleep(5 * time.Millisecond)
	if !sw.TimeLimitReached(time.Millisecond) {
		t.Fatal("expected the 1ms limit to have been reached after a 5ms sleep")
	}
}
