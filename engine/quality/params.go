package quality

import "math"

// Params holds the numeric render parameters the shader backend consumes as
// uniforms. Derived deterministically from a Level plus device modifiers;
// base values are strictly increasing with level before modifiers apply.
type Params struct {
	// QualityFactor scales overall shading effort. Clamped to [0, 2].
	QualityFactor float64

	// IterationCount is the per-fragment iteration budget. Always an
	// integer-valued float in [1, 100].
	IterationCount float64

	// DetailLevel scales secondary detail passes. Clamped to [0, 2].
	DetailLevel float64
}

// DeviceProfile is the detected capability class used to scale render cost.
// Immutable after detection except BatterySaving (power API updates) and the
// screen dimensions (window resize).
type DeviceProfile struct {
	Mobile        bool
	BatterySaving bool
	ScreenWidth   int
	ScreenHeight  int

	// RefreshRate is the display refresh rate hint in Hz. Zero means the
	// host could not detect it and the standard 60Hz assumption applies.
	RefreshRate int
}

// ScreenArea returns the screen area in pixels.
func (d DeviceProfile) ScreenArea() int {
	return d.ScreenWidth * d.ScreenHeight
}

// Resolution-class bands by screen area. Larger surfaces get a progressively
// larger reduction since fragment cost scales with area.
const (
	area1080p = 1920 * 1080
	area4K    = 3840 * 2160
)

// Device and resolution multipliers. These compose multiplicatively.
const (
	mobileScale  = 0.75
	batteryScale = 0.6

	scaleUpTo1080p = 1.0
	scaleUpTo4K    = 0.85
	scaleAbove4K   = 0.7
)

// Hard parameter bounds, applied after all multipliers so stacking can never
// push per-frame cost past the ceiling.
const (
	maxFactor     = 2.0
	maxDetail     = 2.0
	minIterations = 1.0
	maxIterations = 100.0
)

// levelBases holds the per-level base parameter triples, strictly increasing
// with level.
var levelBases = map[Level]Params{
	LevelLow:    {QualityFactor: 0.5, IterationCount: 24, DetailLevel: 0.4},
	LevelMedium: {QualityFactor: 0.75, IterationCount: 40, DetailLevel: 0.8},
	LevelHigh:   {QualityFactor: 1.0, IterationCount: 64, DetailLevel: 1.2},
	LevelUltra:  {QualityFactor: 1.35, IterationCount: 96, DetailLevel: 1.6},
}

// resolutionScale classifies the screen area into bands and returns the
// reduction multiplier for that band.
func resolutionScale(area int) float64 {
	switch {
	case area <= area1080p:
		return scaleUpTo1080p
	case area <= area4K:
		return scaleUpTo4K
	default:
		return scaleAbove4K
	}
}

// DeriveParams computes render parameters for a level under the given device
// profile. Pure and referentially stable: identical inputs always produce
// bit-identical output, so repeated calls during idempotent transitions
// cannot drift.
//
// Parameters:
//   - level: the quality level to derive from (invalid levels clamp to Low)
//   - device: the device profile supplying modifiers
//
// Returns:
//   - Params: the derived, clamped render parameters
func DeriveParams(level Level, device DeviceProfile) Params {
	if !level.Valid() {
		level = LevelLow
	}
	base := levelBases[level]

	scale := 1.0
	if device.Mobile {
		scale *= mobileScale
	}
	if device.BatterySaving {
		scale *= batteryScale
	}
	scale *= resolutionScale(device.ScreenArea())

	return Params{
		QualityFactor:  clamp(base.QualityFactor*scale, 0, maxFactor),
		IterationCount: clamp(math.Round(base.IterationCount*scale), minIterations, maxIterations),
		DetailLevel:    clamp(base.DetailLevel*scale, 0, maxDetail),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
