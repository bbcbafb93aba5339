package sched

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of calls into one: fn fires with the most
// recent value once the delay has passed without another call. Used to keep
// location-autocomplete from querying on every keystroke.
type Debouncer struct {
	delay time.Duration
	fn    func(value string)

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

func (d *Debouncer) Call(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(value)
	})
}

// Stop discards any pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
