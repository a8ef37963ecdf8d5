// Package player steps through a division trace, either manually or on
// a timer. It holds no rendering state; the TUI projects Current() on
// every frame.
package player

import (
	"time"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// DefaultInterval is the time each step stays on screen during playback.
const DefaultInterval = 1500 * time.Millisecond

// Speeds are the selectable playback intervals, fastest first.
var Speeds = []time.Duration{
	500 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
	2000 * time.Millisecond,
	3000 * time.Millisecond,
}

// Controller tracks the position within a trace and whether playback
// is running. The zero value has no trace; call Reset before use.
type Controller struct {
	trace    gf2.Trace
	index    int
	playing  bool
	interval time.Duration
	elapsed  time.Duration
}

// New returns a paused controller positioned at the first step.
func New(trace gf2.Trace, interval time.Duration) *Controller {
	c := &Controller{}
	c.SetInterval(interval)
	c.Reset(trace)
	return c
}

// Reset loads a trace, rewinds to step 0 and pauses.
func (c *Controller) Reset(trace gf2.Trace) {
	c.trace = trace
	c.Rewind()
}

// Rewind returns to step 0 of the current trace and pauses.
func (c *Controller) Rewind() {
	c.index = 0
	c.playing = false
	c.elapsed = 0
}

// Trace returns the loaded trace.
func (c *Controller) Trace() gf2.Trace { return c.trace }

// Len returns the number of steps in the loaded trace.
func (c *Controller) Len() int { return c.trace.Len() }

// Index returns the current step index.
func (c *Controller) Index() int { return c.index }

// Playing reports whether playback is running.
func (c *Controller) Playing() bool { return c.playing }

// Interval returns the playback interval.
func (c *Controller) Interval() time.Duration { return c.interval }

// Current returns the step at the current index. ok is false when no
// trace is loaded.
func (c *Controller) Current() (gf2.Step, bool) {
	if c.index < 0 || c.index >= c.trace.Len() {
		return gf2.Step{}, false
	}
	return c.trace.Steps[c.index], true
}

// AtEnd reports whether the current step is the last one.
func (c *Controller) AtEnd() bool {
	return c.trace.Len() > 0 && c.index >= c.trace.Len()-1
}

// CanAdvance reports whether a further step exists.
func (c *Controller) CanAdvance() bool { return c.index < c.trace.Len()-1 }

// CanRetreat reports whether a previous step exists.
func (c *Controller) CanRetreat() bool { return c.index > 0 }

// SummaryAvailable reports whether the summary view may be shown: only
// once the terminal step is on screen.
func (c *Controller) SummaryAvailable() bool {
	if !c.AtEnd() {
		return false
	}
	s, _ := c.Current()
	return s.Terminal()
}

// Advance moves to the next step. Reaching the last step during
// playback pauses. It reports whether the index changed.
func (c *Controller) Advance() bool {
	if !c.CanAdvance() {
		c.playing = false
		return false
	}
	c.index++
	if c.AtEnd() {
		c.playing = false
	}
	return true
}

// Retreat moves to the previous step and reports whether it did.
func (c *Controller) Retreat() bool {
	if !c.CanRetreat() {
		return false
	}
	c.index--
	return true
}

// Seek jumps to step i, clamped to the trace.
func (c *Controller) Seek(i int) {
	if i >= c.trace.Len() {
		i = c.trace.Len() - 1
	}
	if i < 0 {
		i = 0
	}
	c.index = i
}

// Toggle starts or pauses playback. Starting from the last step rewinds
// to the beginning first. Toggling an empty controller is a no-op.
func (c *Controller) Toggle() {
	if c.playing {
		c.Pause()
		return
	}
	c.Play()
}

// Play starts playback; calling it while already playing has no effect.
func (c *Controller) Play() {
	if c.playing || c.trace.Len() == 0 {
		return
	}
	if c.AtEnd() {
		c.index = 0
	}
	c.elapsed = 0
	c.playing = c.trace.Len() > 1
}

// Pause stops playback; calling it while paused has no effect.
func (c *Controller) Pause() {
	c.playing = false
	c.elapsed = 0
}

// Tick feeds elapsed wall time into the controller. While playing it
// advances once for every full interval accumulated and carries the
// leftover into the next tick. It reports whether the index changed.
func (c *Controller) Tick(dt time.Duration) bool {
	if !c.playing || dt <= 0 {
		return false
	}
	c.elapsed += dt
	moved := false
	for c.playing && c.elapsed >= c.interval {
		c.elapsed -= c.interval
		if c.Advance() {
			moved = true
		}
	}
	return moved
}

// SetInterval changes the playback interval. Non-positive values fall
// back to DefaultInterval.
func (c *Controller) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	c.interval = d
}

// Faster selects the next shorter entry in Speeds.
func (c *Controller) Faster() {
	for i := len(Speeds) - 1; i >= 0; i-- {
		if Speeds[i] < c.interval {
			c.interval = Speeds[i]
			return
		}
	}
}

// Slower selects the next longer entry in Speeds.
func (c *Controller) Slower() {
	for _, s := range Speeds {
		if s > c.interval {
			c.interval = s
			return
		}
	}
}
