package engine

import "time"

// Clock supplies the logical tick used for auction timing. Time is sampled,
// never waited on: every operation reads the clock once at entry.
type Clock interface {
	Now() uint64
}

// WallClock ticks once per second of wall time.
type WallClock struct{}

func (WallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// manualClock is a fixed clock for tests.
type manualClock struct {
	tick uint64
}

func (c *manualClock) Now() uint64 { return c.tick }

func (c *manualClock) set(tick uint64) { c.tick = tick }
