package quality

import "errors"

// Sentinel errors for the quality control loop. None of these are fatal to
// the host: every one is recoverable by keeping the last-known-good state
// and continuing to tick.
var (
	// ErrInvalidLevel is returned when a manual level-set operation receives
	// an unrecognized level name. No state is mutated on this error.
	ErrInvalidLevel = errors.New("quality: invalid quality level")

	// ErrNonMonotonicTime is returned when a frame timestamp is not strictly
	// after the previous sample. The sample is ignored and the FPS window is
	// left intact.
	ErrNonMonotonicTime = errors.New("quality: non-monotonic frame timestamp")

	// ErrDeviceDetection is returned when display or power detection is
	// unavailable. Callers fall back to conservative defaults: no battery
	// saving, standard refresh rate.
	ErrDeviceDetection = errors.New("quality: device detection unavailable")
)
