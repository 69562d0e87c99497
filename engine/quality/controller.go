package quality

// Thresholds holds the FPS boundaries driving automatic transitions. The
// promotion and demotion boundaries are deliberately asymmetric (hysteresis
// inherited from the tuned production values); they are tunables, not
// derived quantities.
type Thresholds struct {
	// DemoteUltra demotes Ultra -> High when a reading falls below it.
	DemoteUltra int

	// DemoteHigh demotes High -> Medium when a reading falls below it.
	DemoteHigh int

	// DemoteMedium demotes Medium -> Low when a reading falls below it.
	DemoteMedium int

	// PromoteMedium promotes Low -> Medium when a reading reaches it.
	PromoteMedium int

	// PromoteHigh promotes Medium -> High when a reading reaches it.
	// There is no automatic promotion to Ultra; Ultra is manual-only.
	PromoteHigh int

	// BatteryFloor forces any level down to Low when battery saving is on
	// and a reading falls below it.
	BatteryFloor int
}

// DefaultThresholds returns the production tuning.
// Readings are integers, so the ">55" promotion rule is expressed as
// "reaches 56".
func DefaultThresholds() Thresholds {
	return Thresholds{
		DemoteUltra:   25,
		DemoteHigh:    20,
		DemoteMedium:  15,
		PromoteMedium: 56,
		PromoteHigh:   58,
		BatteryFloor:  30,
	}
}

// Observer receives quality transitions. Notification is a side channel for
// UI surfaces (notifications, window title); omission never affects control
// loop correctness.
type Observer interface {
	// QualityChanged is called after a transition lands on a new level.
	QualityChanged(level Level, params Params)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(level Level, params Params)

// QualityChanged implements Observer.
func (f ObserverFunc) QualityChanged(level Level, params Params) {
	f(level, params)
}

// Controller is the discrete quality state machine. It owns the active
// level, recomputes render parameters on every transition, and applies
// manual, automatic, and emergency transitions.
//
// Not safe for concurrent use; the control loop owns it.
type Controller interface {
	// Level returns the active quality level.
	Level() Level

	// Params returns the render parameters derived from the active level
	// and the current device profile.
	Params() Params

	// Device returns the current device profile.
	Device() DeviceProfile

	// Thresholds returns the automatic-transition tuning.
	Thresholds() Thresholds

	// SetLevel applies a manual transition to the given level. Transitions
	// to the active level are no-ops that still recompute parameters.
	//
	// Parameters:
	//   - level: the target level
	//
	// Returns:
	//   - error: ErrInvalidLevel if the level is not a defined tier; no
	//     state is mutated on failure
	SetLevel(level Level) error

	// SetLevelByName parses a level name and applies a manual transition.
	//
	// Parameters:
	//   - name: the level name ("low", "medium", "high", "ultra")
	//
	// Returns:
	//   - error: ErrInvalidLevel for unrecognized names; no state is
	//     mutated on failure
	SetLevelByName(name string) error

	// Cycle applies the manual cycle Low -> Medium -> High -> Ultra -> Low
	// and returns the new level. Always allowed regardless of FPS history.
	Cycle() Level

	// Evaluate applies at most one automatic transition for the given FPS
	// reading and returns the resulting level. Battery saving suppresses
	// ordinary promotion and demotion and instead forces Low below the
	// battery floor.
	//
	// Parameters:
	//   - fps: the latest FPS window reading
	//
	// Returns:
	//   - Level: the level after evaluation
	Evaluate(fps int) Level

	// DemoteOnce steps the level down one rank if possible. Used by the
	// frame pacer's emergency escalation.
	DemoteOnce() Level

	// SetBatterySaving updates the power state and recomputes parameters at
	// the current level.
	SetBatterySaving(on bool)

	// SetScreenSize updates the screen dimensions and recomputes parameters
	// at the current level. The level itself is unchanged.
	SetScreenSize(width, height int)

	// SetObserver replaces the transition observer. Pass nil to detach.
	SetObserver(observer Observer)
}

// controller implements the Controller interface.
type controller struct {
	level      Level
	params     Params
	device     DeviceProfile
	thresholds Thresholds
	observer   Observer
}

var _ Controller = &controller{}

// NewController creates a Controller with the provided options. Defaults:
// Medium level, desktop device profile, production thresholds, no observer.
//
// Parameters:
//   - options: functional options for controller configuration
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		level:      LevelMedium,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.params = DeriveParams(c.level, c.device)
	return c
}

func (c *controller) Level() Level {
	return c.level
}

func (c *controller) Params() Params {
	return c.params
}

func (c *controller) Device() DeviceProfile {
	return c.device
}

func (c *controller) Thresholds() Thresholds {
	return c.thresholds
}

func (c *controller) SetLevel(level Level) error {
	if !level.Valid() {
		return ErrInvalidLevel
	}
	c.apply(level)
	return nil
}

func (c *controller) SetLevelByName(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	c.apply(level)
	return nil
}

func (c *controller) Cycle() Level {
	c.apply(c.level.Next())
	return c.level
}

func (c *controller) Evaluate(fps int) Level {
	t := c.thresholds

	if c.device.BatterySaving {
		if fps < t.BatteryFloor && c.level != LevelLow {
			c.apply(LevelLow)
		}
		return c.level
	}

	// At most one step per evaluation, demotion checked first.
	switch {
	case c.level == LevelUltra && fps < t.DemoteUltra:
		c.apply(LevelHigh)
	case c.level == LevelHigh && fps < t.DemoteHigh:
		c.apply(LevelMedium)
	case c.level == LevelMedium && fps < t.DemoteMedium:
		c.apply(LevelLow)
	case c.level == LevelLow && fps >= t.PromoteMedium:
		c.apply(LevelMedium)
	case c.level == LevelMedium && fps >= t.PromoteHigh:
		c.apply(LevelHigh)
	}
	return c.level
}

func (c *controller) DemoteOnce() Level {
	if c.level > LevelLow {
		c.apply(c.level - 1)
	}
	return c.level
}

func (c *controller) SetBatterySaving(on bool) {
	c.device.BatterySaving = on
	c.apply(c.level)
}

func (c *controller) SetScreenSize(width, height int) {
	c.device.ScreenWidth = width
	c.device.ScreenHeight = height
	c.apply(c.level)
}

func (c *controller) SetObserver(observer Observer) {
	c.observer = observer
}

// apply transitions to the given level, always recomputing parameters
// (device and resolution modifiers can change independently of the level).
// The observer is notified only when the level actually changes.
func (c *controller) apply(level Level) {
	changed := level != c.level
	c.level = level
	c.params = DeriveParams(level, c.device)
	if changed && c.observer != nil {
		c.observer.QualityChanged(c.level, c.params)
	}
}
