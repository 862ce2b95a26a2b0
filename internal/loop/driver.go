// Package loop turns display refreshes into simulation steps. It clamps the
// per-frame delta and treats a hidden display as fully paused.
package loop

import (
	"time"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// MaxDelta caps a single frame's delta so one slow frame cannot advance
// simulated time disproportionately.
const MaxDelta = 33 * time.Millisecond

// Stepper is anything that advances by dt seconds.
type Stepper interface {
	Step(in core.InputFrame, dt float64) core.StepResult
}

// Driver measures frame deltas against wall time. It is the only caller of
// Step, so the simulation has a single writer.
type Driver struct {
	maxDelta time.Duration
	last     time.Time
	baseline bool // last holds a usable timestamp
	visible  bool
	frames   uint64
}

// NewDriver creates a visible driver with the default delta cap.
func NewDriver() *Driver {
	return &Driver{maxDelta: MaxDelta, visible: true}
}

// SetMaxDelta changes the delta cap. Non-positive values restore the default.
func (d *Driver) SetMaxDelta(limit time.Duration) {
	if limit <= 0 {
		limit = MaxDelta
	}
	d.maxDelta = limit
}

// SetVisible pauses or resumes the driver. Becoming visible drops the
// baseline so the time spent hidden is never applied.
func (d *Driver) SetVisible(visible bool) {
	if visible && !d.visible {
		d.baseline = false
	}
	d.visible = visible
}

// Visible reports whether frames are being stepped.
func (d *Driver) Visible() bool {
	return d.visible
}

// Frames returns the number of frames stepped so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Delta returns the clamped seconds since the previous frame and records now
// as the new baseline. The first frame after a (re)baseline has a delta of 0.
// ok is false while hidden.
func (d *Driver) Delta(now time.Time) (dt float64, ok bool) {
	if !d.visible {
		return 0, false
	}
	if !d.baseline {
		d.last = now
		d.baseline = true
		return 0, true
	}

	elapsed := now.Sub(d.last)
	d.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > d.maxDelta {
		elapsed = d.maxDelta
	}
	return elapsed.Seconds(), true
}

// Frame steps s once for the refresh at now. While hidden nothing is stepped
// and ok is false.
func (d *Driver) Frame(now time.Time, s Stepper, in core.InputFrame) (res core.StepResult, ok bool) {
	dt, ok := d.Delta(now)
	if !ok {
		return core.StepResult{}, false
	}
	d.frames++
	return s.Step(in, dt), true
}
