package quality

// ControllerBuilderOption is a functional option for configuring a
// Controller. Use the With* functions to create options that are applied
// directly to the controller instance.
type ControllerBuilderOption func(*controller)

// WithLevel sets the initial quality level. Invalid levels are ignored and
// the default (Medium) is kept.
//
// Parameters:
//   - level: the initial level
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLevel(level Level) ControllerBuilderOption {
	return func(c *controller) {
		if level.Valid() {
			c.level = level
		}
	}
}

// WithDevice sets the device profile detected at startup.
//
// Parameters:
//   - device: the detected device profile
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDevice(device DeviceProfile) ControllerBuilderOption {
	return func(c *controller) {
		c.device = device
	}
}

// WithThresholds overrides the automatic-transition tuning. Zero-valued
// fields keep their defaults.
//
// Parameters:
//   - t: the threshold overrides
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithThresholds(t Thresholds) ControllerBuilderOption {
	return func(c *controller) {
		d := c.thresholds
		if t.DemoteUltra > 0 {
			d.DemoteUltra = t.DemoteUltra
		}
		if t.DemoteHigh > 0 {
			d.DemoteHigh = t.DemoteHigh
		}
		if t.DemoteMedium > 0 {
			d.DemoteMedium = t.DemoteMedium
		}
		if t.PromoteMedium > 0 {
			d.PromoteMedium = t.PromoteMedium
		}
		if t.PromoteHigh > 0 {
			d.PromoteHigh = t.PromoteHigh
		}
		if t.BatteryFloor > 0 {
			d.BatteryFloor = t.BatteryFloor
		}
		c.thresholds = d
	}
}

// WithObserver registers the observer notified on level changes.
//
// Parameters:
//   - o: the observer (nil disables notification)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithObserver(o Observer) ControllerBuilderOption {
	return func(c *controller) {
		c.observer = o
	}
}
