package scene

import "time"

// Clock reports playback time in seconds. It is read once per frame.
type Clock interface {
	Seconds() float64
}

// MonotonicClock counts seconds since it was created.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	Now float64
}

func (c *ManualClock) Seconds() float64 { return c.Now }

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d float64) {
	c.Now += d
}
