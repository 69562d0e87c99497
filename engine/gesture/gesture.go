// Package gesture translates discrete user inputs (double-tap, key presses)
// into quality-control commands, separate from the automatic FPS-driven
// transitions.
package gesture

import (
	"math"
	"time"

	"github.com/glimmer-vis/glimmer/common"
	"github.com/glimmer-vis/glimmer/engine/quality"
)

// Action identifies what a recognized input should do to the quality state.
type Action int

const (
	// ActionNone means the input did not map to a quality command.
	ActionNone Action = iota

	// ActionCycle applies the manual cycle Low -> Medium -> High -> Ultra.
	ActionCycle

	// ActionSetLevel applies a direct manual level selection.
	ActionSetLevel
)

// Command is a recognized quality-control input.
type Command struct {
	Action Action
	Level  quality.Level
}

// Double-tap recognition defaults: a second tap within the interval and
// radius of the first counts as a double tap.
const (
	DefaultTapInterval = 300 * time.Millisecond
	DefaultTapRadius   = 32.0
)

// DoubleTap recognizes double-tap (or double-click) gestures from a stream
// of pointer-down events. Not safe for concurrent use.
type DoubleTap struct {
	interval time.Duration
	radius   float64

	lastTime time.Time
	lastX    float64
	lastY    float64
	armed    bool
}

// NewDoubleTap creates a recognizer. Non-positive interval or radius fall
// back to the defaults.
func NewDoubleTap(interval time.Duration, radius float64) *DoubleTap {
	if interval <= 0 {
		interval = DefaultTapInterval
	}
	if radius <= 0 {
		radius = DefaultTapRadius
	}
	return &DoubleTap{interval: interval, radius: radius}
}

// Tap feeds one pointer-down event and reports whether it completed a
// double tap. A completed double tap disarms the recognizer so a triple tap
// does not count twice.
//
// Parameters:
//   - x, y: pointer position in pixels
//   - now: event timestamp
//
// Returns:
//   - bool: true when this tap completed a double tap
func (d *DoubleTap) Tap(x, y float64, now time.Time) bool {
	if d.armed &&
		now.Sub(d.lastTime) <= d.interval &&
		math.Hypot(x-d.lastX, y-d.lastY) <= d.radius {
		d.armed = false
		return true
	}
	d.armed = true
	d.lastTime = now
	d.lastX = x
	d.lastY = y
	return false
}

// Adapter maps raw window inputs to quality commands: double tap cycles the
// level, M cycles the level, number keys 1-4 select a level directly.
type Adapter struct {
	tap *DoubleTap
}

// NewAdapter creates an Adapter with default double-tap recognition.
func NewAdapter() *Adapter {
	return &Adapter{tap: NewDoubleTap(DefaultTapInterval, DefaultTapRadius)}
}

// KeyDown maps a key press to a quality command.
//
// Parameters:
//   - keyCode: the virtual key code from the window layer
//
// Returns:
//   - Command: the mapped command
//   - bool: true when the key mapped to a command
func (a *Adapter) KeyDown(keyCode uint32) (Command, bool) {
	switch keyCode {
	case common.KeyM:
		return Command{Action: ActionCycle}, true
	case common.Key1:
		return Command{Action: ActionSetLevel, Level: quality.LevelLow}, true
	case common.Key2:
		return Command{Action: ActionSetLevel, Level: quality.LevelMedium}, true
	case common.Key3:
		return Command{Action: ActionSetLevel, Level: quality.LevelHigh}, true
	case common.Key4:
		return Command{Action: ActionSetLevel, Level: quality.LevelUltra}, true
	default:
		return Command{}, false
	}
}

// PointerDown feeds a pointer-down event; a completed double tap maps to a
// cycle command.
//
// Parameters:
//   - x, y: pointer position in pixels
//   - now: event timestamp
//
// Returns:
//   - Command: the mapped command
//   - bool: true when the event completed a gesture
func (a *Adapter) PointerDown(x, y float64, now time.Time) (Command, bool) {
	if a.tap.Tap(x, y, now) {
		return Command{Action: ActionCycle}, true
	}
	return Command{}, false
}
