// Package sched holds the timer primitives the client runs on: a one-shot
// countdown, a fixed-interval poller and a keystroke debouncer. Each is
// owned by a single caller and cancelled on teardown; there is no ordering
// guarantee between timers.
package sched

import (
	"sync"
	"time"
)

// Countdown counts whole seconds from an initial value down to zero and
// never below it. OnTick fires after every decrement, OnExpire exactly once
// when zero is reached. Stop cancels any further callbacks.
type Countdown struct {
	interval time.Duration

	mu        sync.Mutex
	remaining int
	running   bool
	done      chan struct{}

	OnTick   func(remaining int)
	OnExpire func()
}

func NewCountdown(seconds int, interval time.Duration) *Countdown {
	return &Countdown{
		interval:  interval,
		remaining: seconds,
	}
}

func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.run(done)
}

func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.running = false
		close(c.done)
	}
}

// Reset stops the countdown and rearms it at the given value.
func (c *Countdown) Reset(seconds int) {
	c.Stop()
	c.mu.Lock()
	c.remaining = seconds
	c.mu.Unlock()
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Expired() bool {
	return c.Remaining() <= 0
}

func (c *Countdown) run(done chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			remaining, expired := c.step(done)
			if remaining < 0 {
				return // stopped concurrently, discard the tick
			}
			if c.OnTick != nil {
				c.OnTick(remaining)
			}
			if expired {
				if c.OnExpire != nil {
					c.OnExpire()
				}
				return
			}
		}
	}
}

// step decrements once under the lock. It reports the new value and whether
// zero was just reached; a negative value means the countdown was stopped
// before the tick could land.
func (c *Countdown) step(done chan struct{}) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-done:
		return -1, false
	default:
	}
	if c.remaining <= 0 {
		return -1, false
	}
	c.remaining--
	if c.remaining == 0 {
		c.running = false
		close(c.done)
		return 0, true
	}
	return c.remaining, false
}
