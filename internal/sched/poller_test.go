package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerRunsOnInterval(t *testing.T) {
	var runs atomic.Int64
	p := NewPoller(5*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})
	p.Start(true)
	time.Sleep(40 * time.Millisecond)
	p.Stop()

	count := runs.Load()
	assert.GreaterOrEqual(t, count, int64(2), "immediate run plus at least one interval")

	// Stopped means stopped.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, count, runs.Load())
}

func TestPollerStopCancelsInFlightContext(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	p := NewPoller(time.Hour, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})
	p.Start(true)
	<-started
	p.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("poll context was not cancelled on Stop")
	}
}

func TestPollerWithoutImmediateWaitsForFirstInterval(t *testing.T) {
	var runs atomic.Int64
	p := NewPoller(time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})
	p.Start(false)
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	assert.Equal(t, int64(0), runs.Load())
}
