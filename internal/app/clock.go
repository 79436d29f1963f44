package app

import "time"

// TurnClock is the single countdown for the active turn. The service is its
// only owner: it is stopped and re-armed on every turn transition, so two
// clocks can never run at once. Remaining time is derived from wall-clock
// elapsed time rather than a decrementing counter, which keeps it correct
// under host tick jitter.
type TurnClock struct {
	StartedAt time.Time
	Duration  time.Duration
	Running   bool

	// one-shot warning latches, reset on every Start
	warnedFirst  bool
	warnedSecond bool
}

// Start arms the clock for a fresh turn, clearing the warning latches.
func (c *TurnClock) Start(now time.Time, d time.Duration) {
	c.StartedAt = now
	c.Duration = d
	c.Running = true
	c.warnedFirst = false
	c.warnedSecond = false
}

// Stop cancels the clock.
func (c *TurnClock) Stop() {
	c.Running = false
}

// Remaining returns the time left on the clock, clamped to zero.
func (c *TurnClock) Remaining(now time.Time) time.Duration {
	if !c.Running {
		return 0
	}
	left := c.Duration - now.Sub(c.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// SecondsLeft reports remaining whole seconds, rounded up the way the
// countdown is displayed.
func (c *TurnClock) SecondsLeft(now time.Time) int {
	return int((c.Remaining(now) + time.Second - 1) / time.Second)
}
