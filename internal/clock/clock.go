// Package clock measures the time between display refreshes.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// FrameClock reports seconds elapsed since the previous frame. Gaps longer
// than MaxDelta (a minimized window, a debugger pause) are clamped so the
// view does not jump when the loop resumes.
type FrameClock struct {
	clock    clockwork.Clock
	maxDelta time.Duration
	last     time.Time
	started  bool
}

// New returns a FrameClock on c. maxDelta <= 0 disables clamping.
func New(c clockwork.Clock, maxDelta time.Duration) *FrameClock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &FrameClock{clock: c, maxDelta: maxDelta}
}

// Tick returns the elapsed seconds since the last call. The first call
// returns 0.
func (f *FrameClock) Tick() float64 {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.last = now
		return 0
	}

	d := now.Sub(f.last)
	f.last = now
	if d < 0 {
		d = 0
	}
	if f.maxDelta > 0 && d > f.maxDelta {
		d = f.maxDelta
	}
	return d.Seconds()
}

// Restart makes the next Tick return 0. Used after blocking work like a
// model load so the load time is not fed into the animation.
func (f *FrameClock) Restart() {
	f.started = false
}
