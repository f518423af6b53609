package tracker

import (
	"math"
	"time"
)

const (
	fpsSamples  = 20
	fpsInterval = time.Second
)

// FPSCounter averages the frame rate over the last samples, refreshing the
// reported value once per interval.
type FPSCounter struct {
	samples [fpsSamples]float64
	idx     int
	fps     float64
	untilUp time.Duration
}

// NewFPSCounter creates a counter whose samples start near zero.
func NewFPSCounter() *FPSCounter {
	c := &FPSCounter{untilUp: fpsInterval}
	for i := range c.samples {
		c.samples[i] = 0.001
	}
	return c
}

// Update records one frame that took dt. Non-positive dt is ignored.
func (c *FPSCounter) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.samples[c.idx] = 1 / dt.Seconds()
	c.idx = (c.idx + 1) % fpsSamples

	c.untilUp -= dt
	if c.untilUp > 0 {
		return
	}
	c.untilUp = fpsInterval

	sum := 0.0
	for _, s := range c.samples {
		sum += s
	}
	c.fps = sum / fpsSamples
}

// FPS returns the last averaged frame rate rounded to an integer.
func (c *FPSCounter) FPS() int { return int(math.Round(c.fps)) }
