package common

import (
	"sync"
	"time"
)

// Clock is the single source of time for every window check in the
// election core. Values are unix seconds. Nothing below lib/network
// reads `time.Now()` directly; the core only ever compares against
// `Clock.Now()`, which stands in for the host ledger's global counter.
type Clock interface {
	Now() uint64
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock is a settable clock for tests and simulations.
type ManualClock struct {
	sync.RWMutex

	now uint64
}

func NewManualClock(now uint64) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() uint64 {
	c.RLock()
	defer c.RUnlock()

	return c.now
}

func (c *ManualClock) Set(now uint64) {
	c.Lock()
	defer c.Unlock()

	c.now = now
}

func (c *ManualClock) Advance(seconds uint64) {
	c.Lock()
	defer c.Unlock()

	c.now += seconds
}
