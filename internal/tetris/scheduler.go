package tetris

import "time"

// Scheduler is the host's timer capability. After arms fn to run once after
// d, replacing any callback already pending; Cancel drops the pending
// callback. The host must run callbacks serialized with every other Engine
// call.
type Scheduler interface {
	After(d time.Duration, fn func())
	Cancel()
}

// ClockScheduler is a Scheduler driven by an explicit clock. Callbacks run on
// the goroutine calling Advance, so they are serialized with the caller.
type ClockScheduler struct {
	now      time.Duration
	deadline time.Duration
	pending  func()
	fired    int
}

// NewClockScheduler returns a scheduler whose clock starts at zero.
func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{}
}

// After implements Scheduler.
func (c *ClockScheduler) After(d time.Duration, fn func()) {
	c.deadline = c.now + d
	c.pending = fn
}

// Cancel implements Scheduler.
func (c *ClockScheduler) Cancel() {
	c.pending = nil
}

// Pending reports whether a callback is armed.
func (c *ClockScheduler) Pending() bool {
	return c.pending != nil
}

// Deadline returns when the pending callback is due, relative to the clock's
// zero.
func (c *ClockScheduler) Deadline() time.Duration {
	return c.deadline
}

// Now returns the current clock reading.
func (c *ClockScheduler) Now() time.Duration {
	return c.now
}

// Fired returns how many callbacks have run.
func (c *ClockScheduler) Fired() int {
	return c.fired
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way. A callback that re-arms with a deadline inside the window
// runs again in the same call.
func (c *ClockScheduler) Advance(d time.Duration) {
	target := c.now + d
	for c.pending != nil && c.deadline <= target {
		fn := c.pending
		c.pending = nil
		if c.deadline > c.now {
			c.now = c.deadline
		}
		c.fired++
		fn()
	}
	c.now = target
}

// FireNext jumps the clock to the pending deadline and runs that callback.
// It returns false if nothing is armed.
func (c *ClockScheduler) FireNext() bool {
	if c.pending == nil {
		return false
	}
	if c.deadline > c.now {
		c.now = c.deadline
	}
	fn := c.pending
	c.pending = nil
	c.fired++
	fn()
	return true
}
