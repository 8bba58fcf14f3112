package loop

import (
	"sync"
	"time"
)

// TimeProvider supplies wall time; tests substitute a manual source
type TimeProvider interface {
	Now() time.Time
}

type monotonicProvider struct{}

func (monotonicProvider) Now() time.Time { return time.Now() }

// NewMonotonicTimeProvider returns a provider backed by time.Now
func NewMonotonicTimeProvider() TimeProvider {
	return monotonicProvider{}
}

// Clock is game time that stops advancing while paused
type Clock struct {
	mu sync.RWMutex

	source      TimeProvider
	start       time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool
}

func NewClock(source TimeProvider) *Clock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &Clock{source: source, start: source.Now()}
}

// Elapsed returns game time since creation, pauses excluded
func (c *Clock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.source.Now()
	if c.paused {
		now = c.pausedAt
	}
	return now.Sub(c.start) - c.pausedTotal
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.source.Now()
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.pausedTotal += c.source.Now().Sub(c.pausedAt)
	c.paused = false
	c.pausedAt = time.Time{}
}

func (c *Clock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// Toggle flips pause state and reports the new state
func (c *Clock) Toggle() bool {
	if c.IsPaused() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}
