package core

import "time"

// Clock tracks elapsed time for the frame loop. Start it once, then call
// Tick at the top of every frame to obtain the delta since the last tick.
type Clock struct {
	startTime time.Time
	lastTick  time.Time
}

func NewClock() *Clock {
	return &Clock{}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.lastTick = c.startTime
}

// Tick returns the time in seconds since the previous Tick (or Start).
// Has no effect on non-started clocks.
func (c *Clock) Tick() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	now := time.Now()
	delta := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	return delta
}

// Elapsed returns the total time in seconds since Start.
func (c *Clock) Elapsed() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime).Seconds()
}
