package quality

import (
	"math"
	"time"
)

// Target frame rates per device class. The effective target is further
// capped by quality level and the display refresh hint.
const (
	targetFPSDesktop = 60.0
	targetFPSMobile  = 45.0
	targetFPSBattery = 30.0

	targetFPSCapLow    = 30.0
	targetFPSCapMedium = 48.0
)

// TargetFPS computes the frame rate the pacer aims for under the given
// quality level and device/power state. Battery mode wins over device
// class; lower quality levels additionally cap the target since they trade
// frame rate alongside fidelity. A slower display refresh hint caps the
// target at the display's native rate.
func TargetFPS(level Level, device DeviceProfile) float64 {
	target := targetFPSDesktop
	if device.Mobile {
		target = targetFPSMobile
	}
	if device.BatterySaving {
		target = targetFPSBattery
	}

	switch level {
	case LevelLow:
		target = math.Min(target, targetFPSCapLow)
	case LevelMedium:
		target = math.Min(target, targetFPSCapMedium)
	}

	if device.RefreshRate > 0 && float64(device.RefreshRate) < target {
		target = float64(device.RefreshRate)
	}
	return target
}

// TargetInterval returns the minimum duration between rendered frames for
// the given level and device.
func TargetInterval(level Level, device DeviceProfile) time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS(level, device))
}

// Pacer decides, per frame callback, whether to render or skip based on a
// target frame interval. Skips that accumulate past one second's worth of
// target frames indicate the host is starved; the pacer then requests a
// single emergency quality demotion.
//
// Not safe for concurrent use; the control loop owns it.
type Pacer struct {
	lastRender time.Time
	skips      int
	started    bool
}

// NewPacer creates a Pacer. The first observed frame always renders and
// establishes the pacing baseline.
func NewPacer() *Pacer {
	return &Pacer{}
}

// ShouldRender reports whether the current callback should produce a
// rendered frame.
//
// An early callback (inside the target interval) is skipped without
// touching the render baseline. A due callback renders, resets the skip
// counter, and stamps the baseline.
//
// Parameters:
//   - now: the frame timestamp
//   - interval: the minimum duration between rendered frames
//
// Returns:
//   - bool: true to render this frame, false to skip
//   - bool: true when the pacer requests one emergency quality demotion
func (p *Pacer) ShouldRender(now time.Time, interval time.Duration) (bool, bool) {
	if !p.started {
		p.started = true
		p.lastRender = now
		return true, false
	}

	if now.Sub(p.lastRender) < interval {
		p.skips++
		if p.skips > skipBudget(interval) {
			p.skips = 0
			return false, true
		}
		return false, false
	}

	p.skips = 0
	p.lastRender = now
	return true, false
}

// ConsecutiveSkips returns the current run of skipped frames.
func (p *Pacer) ConsecutiveSkips() int {
	return p.skips
}

// Resume re-initializes the pacing baseline to the resume timestamp so a
// suspended session does not see one huge gap as a spurious skip run.
func (p *Pacer) Resume(now time.Time) {
	p.started = true
	p.lastRender = now
	p.skips = 0
}

// skipBudget is the consecutive-skip threshold that triggers emergency
// demotion: one second's worth of frames at the target rate.
func skipBudget(interval time.Duration) int {
	if interval <= 0 {
		return int(targetFPSDesktop)
	}
	return int(time.Second / interval)
}
