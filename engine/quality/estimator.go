package quality

import "time"

// fpsWindow is the fixed sampling window used to convert frame counts into a
// rate estimate. A once-per-second cadence matches the quality-adjustment
// loop; this is a windowed counter, not an exponential average.
const fpsWindow = time.Second

// Estimator accumulates frame counts over a fixed 1-second window and emits
// an integer FPS reading once per window. The last reading persists across
// windows as the most recent estimate.
//
// Not safe for concurrent use; the control loop owns it on a single logical
// thread.
type Estimator struct {
	windowStart time.Time
	lastSample  time.Time
	frames      int
	last        int
	started     bool
}

// NewEstimator creates an Estimator. The window starts on the first
// observed frame.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Observe records one frame callback at the given timestamp.
//
// Timestamps must be strictly increasing. A non-monotonic timestamp returns
// ErrNonMonotonicTime and the sample is ignored without resetting the
// window.
//
// Parameters:
//   - now: the frame timestamp
//
// Returns:
//   - int: the new FPS reading, if one was emitted
//   - bool: true when a window elapsed and a reading was emitted
//   - error: ErrNonMonotonicTime for out-of-order samples
func (e *Estimator) Observe(now time.Time) (int, bool, error) {
	if e.started && !now.After(e.lastSample) {
		return 0, false, ErrNonMonotonicTime
	}
	if !e.started {
		e.started = true
		e.windowStart = now
	}
	e.lastSample = now
	e.frames++

	if now.Sub(e.windowStart) >= fpsWindow {
		e.last = e.frames
		e.frames = 0
		e.windowStart = now
		return e.last, true, nil
	}
	return 0, false, nil
}

// LastFPS returns the most recent FPS reading, or zero before the first
// window elapses.
func (e *Estimator) LastFPS() int {
	return e.last
}

// Reset clears the window state while keeping the last reading. Used when a
// suspended session resumes so the idle gap is not counted as a window.
func (e *Estimator) Reset() {
	e.started = false
	e.frames = 0
}
