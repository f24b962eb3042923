package sim

import "math"

// Time-scale bounds and the factor applied per step.
const (
	MinTimeScale  = 0.1
	MaxTimeScale  = 20.0
	TimeScaleStep = 1.5
)

// Clock accumulates simulated time.
type Clock struct {
	Time   float64
	Scale  float64
	Paused bool
}

// NewClock returns a running clock at t=0 and real-time speed.
func NewClock() Clock {
	return Clock{Scale: 1}
}

// Advance moves the clock by realDt scaled, returning the simulated delta.
// A paused clock returns 0.
func (c *Clock) Advance(realDt float64) float64 {
	if c.Paused || realDt <= 0 {
		return 0
	}
	dt := realDt * c.Scale
	c.Time += dt
	return dt
}

// Faster multiplies the scale by one step.
func (c *Clock) Faster() float64 {
	c.Scale = clampScale(c.Scale * TimeScaleStep)
	return c.Scale
}

// Slower divides the scale by one step.
func (c *Clock) Slower() float64 {
	c.Scale = clampScale(c.Scale / TimeScaleStep)
	return c.Scale
}

// Reset rewinds simulated time to zero. Scale and pause are kept.
func (c *Clock) Reset() {
	c.Time = 0
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Min(math.Max(s, MinTimeScale), MaxTimeScale)
}
