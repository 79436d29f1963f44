package app

import (
	"testing"
	"time"
)

func TestTurnClockCountdown(t *testing.T) {
	var c TurnClock
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Start(t0, 60*time.Second)

	if got := c.Remaining(t0); got != 60*time.Second {
		t.Errorf("remaining at start = %v, want 60s", got)
	}
	if got := c.SecondsLeft(t0.Add(100 * time.Millisecond)); got != 60 {
		t.Errorf("seconds left after 100ms = %d, want 60 (rounded up)", got)
	}
	if got := c.Remaining(t0.Add(45 * time.Second)); got != 15*time.Second {
		t.Errorf("remaining after 45s = %v, want 15s", got)
	}
	if got := c.Remaining(t0.Add(2 * time.Minute)); got != 0 {
		t.Errorf("remaining past expiry = %v, want 0", got)
	}
}

func TestTurnClockStopAndRestart(t *testing.T) {
	var c TurnClock
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Start(t0, 60*time.Second)
	c.warnedFirst = true
	c.Stop()

	if got := c.Remaining(t0.Add(time.Second)); got != 0 {
		t.Errorf("remaining while stopped = %v, want 0", got)
	}

	c.Start(t0.Add(time.Minute), 60*time.Second)
	if c.warnedFirst || c.warnedSecond {
		t.Error("warning latches survived a restart")
	}
	if !c.Running {
		t.Error("clock not running after restart")
	}
}
