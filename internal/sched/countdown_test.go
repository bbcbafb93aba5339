package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownReachesZeroExactly(t *testing.T) {
	var mu sync.Mutex
	var ticks []int
	expired := make(chan struct{})

	c := NewCountdown(60, time.Millisecond)
	c.OnTick = func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	}
	c.OnExpire = func() { close(expired) }
	c.Start()

	select {
	case <-expired:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ticks, 60)
	assert.Equal(t, 59, ticks[0])
	assert.Equal(t, 0, ticks[len(ticks)-1])
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick, 0, "countdown must never go negative")
	}
	assert.True(t, c.Expired())
	assert.Equal(t, 0, c.Remaining())
}

func TestCountdownStopHaltsTicks(t *testing.T) {
	c := NewCountdown(1000, time.Millisecond)
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	remaining := c.Remaining()
	assert.Greater(t, remaining, 0)

	// No further decrements after Stop.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, remaining, c.Remaining())
}

func TestCountdownResetRearms(t *testing.T) {
	c := NewCountdown(10, time.Millisecond)
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Reset(60)
	assert.Equal(t, 60, c.Remaining())
	assert.False(t, c.Expired())
}

func TestCountdownStartIsIdempotent(t *testing.T) {
	expirations := make(chan struct{}, 4)
	c := NewCountdown(2, time.Millisecond)
	c.OnExpire = func() { expirations <- struct{}{} }
	c.Start()
	c.Start()

	select {
	case <-expirations:
	case <-time.After(time.Second):
		t.Fatal("countdown never expired")
	}
	select {
	case <-expirations:
		t.Fatal("expire fired more than once")
	case <-time.After(20 * time.Millisecond):
	}
}
