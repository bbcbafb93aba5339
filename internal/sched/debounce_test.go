package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(20*time.Millisecond, func(value string) {
		mu.Lock()
		fired = append(fired, value)
		mu.Unlock()
	})
	defer d.Stop()

	// Rapid edits: only the last survives.
	d.Call("L")
	d.Call("Lo")
	d.Call("Lon")
	d.Call("London")
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, fired, 1)
	assert.Equal(t, "London", fired[0])
}

func TestDebouncerStopDiscardsPending(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(20*time.Millisecond, func(value string) {
		mu.Lock()
		fired = append(fired, value)
		mu.Unlock()
	})
	d.Call("London")
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, fired)
}

func TestDebouncerFiresAgainAfterQuiet(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(10*time.Millisecond, func(value string) {
		mu.Lock()
		fired = append(fired, value)
		mu.Unlock()
	})
	defer d.Stop()

	d.Call("first")
	time.Sleep(40 * time.Millisecond)
	d.Call("second")
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, fired)
}
