package sched

import (
	"context"
	"sync"
	"time"
)

// Poller runs fn on a fixed interval until stopped. The context handed to
// fn is cancelled by Stop, so a response that arrives after teardown can be
// discarded instead of mutating state that no longer has an owner.
type Poller struct {
	interval time.Duration
	fn       func(ctx context.Context)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewPoller(interval time.Duration, fn func(ctx context.Context)) *Poller {
	return &Poller{interval: interval, fn: fn}
}

// Start begins polling. With immediate set, fn runs once before the first
// interval elapses.
func (p *Poller) Start(immediate bool) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.stopped = make(chan struct{})
	stopped := p.stopped
	p.mu.Unlock()

	go p.run(ctx, stopped, immediate)
}

// Stop cancels the poll context and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	stopped := p.stopped
	p.mu.Unlock()

	<-stopped
}

func (p *Poller) run(ctx context.Context, stopped chan struct{}, immediate bool) {
	defer close(stopped)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if immediate {
		p.fn(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fn(ctx)
		}
	}
}
