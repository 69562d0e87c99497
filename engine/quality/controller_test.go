package quality

import (
	"errors"
	"testing"
)

func TestManualCycleVisitsAllLevels(t *testing.T) {
	c := NewController(WithLevel(LevelLow), WithDevice(desktop1080p))

	want := []Level{LevelMedium, LevelHigh, LevelUltra, LevelLow}
	for i, w := range want {
		if got := c.Cycle(); got != w {
			t.Fatalf("cycle %d = %v, want %v", i+1, got, w)
		}
	}
	if c.Level() != LevelLow {
		t.Errorf("after four cycles level = %v, want back at %v", c.Level(), LevelLow)
	}
}

func TestSetLevelByName(t *testing.T) {
	c := NewController(WithDevice(desktop1080p))

	if err := c.SetLevelByName("ultra"); err != nil {
		t.Fatalf("SetLevelByName(ultra): %v", err)
	}
	if c.Level() != LevelUltra {
		t.Fatalf("level = %v, want %v", c.Level(), LevelUltra)
	}

	prevParams := c.Params()
	if err := c.SetLevelByName("blurry"); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("SetLevelByName(blurry) error = %v, want ErrInvalidLevel", err)
	}
	if c.Level() != LevelUltra || c.Params() != prevParams {
		t.Error("failed manual set mutated state")
	}
}

func TestAutomaticDemotionStepsOneRank(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		fps   int
		want  Level
	}{
		{"ultra below 25", LevelUltra, 24, LevelHigh},
		{"ultra at 25 holds", LevelUltra, 25, LevelUltra},
		{"high below 20", LevelHigh, 19, LevelMedium},
		{"high at 20 holds", LevelHigh, 20, LevelHigh},
		{"medium below 15", LevelMedium, 14, LevelLow},
		{"medium at 15 holds", LevelMedium, 15, LevelMedium},
		{"low cannot demote", LevelLow, 1, LevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(WithLevel(tt.level), WithDevice(desktop1080p))
			if got := c.Evaluate(tt.fps); got != tt.want {
				t.Errorf("Evaluate(%d) from %v = %v, want %v", tt.fps, tt.level, got, tt.want)
			}
		})
	}
}

func TestAutomaticPromotion(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		fps   int
		want  Level
	}{
		{"low above 55", LevelLow, 56, LevelMedium},
		{"low at 55 holds", LevelLow, 55, LevelLow},
		{"medium at 58", LevelMedium, 58, LevelHigh},
		{"medium at 57 holds", LevelMedium, 57, LevelMedium},
		{"high never auto-ultra", LevelHigh, 240, LevelHigh},
		{"ultra holds", LevelUltra, 240, LevelUltra},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(WithLevel(tt.level), WithDevice(desktop1080p))
			if got := c.Evaluate(tt.fps); got != tt.want {
				t.Errorf("Evaluate(%d) from %v = %v, want %v", tt.fps, tt.level, got, tt.want)
			}
		})
	}
}

func TestEvaluateNeverSkipsARank(t *testing.T) {
	// A catastrophic reading from Ultra still steps only one rank per
	// evaluation.
	c := NewController(WithLevel(LevelUltra), WithDevice(desktop1080p))
	if got := c.Evaluate(1); got != LevelHigh {
		t.Fatalf("first evaluation = %v, want %v", got, LevelHigh)
	}
	if got := c.Evaluate(1); got != LevelMedium {
		t.Fatalf("second evaluation = %v, want %v", got, LevelMedium)
	}
	if got := c.Evaluate(1); got != LevelLow {
		t.Fatalf("third evaluation = %v, want %v", got, LevelLow)
	}
}

func TestBatteryOverrideWins(t *testing.T) {
	device := desktop1080p
	device.BatterySaving = true
	c := NewController(WithLevel(LevelUltra), WithDevice(device))

	if got := c.Evaluate(10); got != LevelLow {
		t.Fatalf("battery override: Evaluate(10) from Ultra = %v, want %v in one evaluation", got, LevelLow)
	}
}

func TestBatterySuppressesOrdinarySteps(t *testing.T) {
	device := desktop1080p
	device.BatterySaving = true

	// No promotion in battery mode.
	c := NewController(WithLevel(LevelLow), WithDevice(device))
	if got := c.Evaluate(120); got != LevelLow {
		t.Errorf("battery promotion: got %v, want %v", got, LevelLow)
	}

	// Above the battery floor, no forced transition either.
	c = NewController(WithLevel(LevelHigh), WithDevice(device))
	if got := c.Evaluate(35); got != LevelHigh {
		t.Errorf("battery hold: got %v, want %v", got, LevelHigh)
	}
}

func TestPromotionScenarioMediumToHigh(t *testing.T) {
	// Desktop, Medium, readings [58, 58, 59]: promotes on the first reading
	// and stays High.
	c := NewController(WithLevel(LevelMedium), WithDevice(desktop1080p))
	levels := make([]Level, 0, 3)
	for _, fps := range []int{58, 58, 59} {
		levels = append(levels, c.Evaluate(fps))
	}
	want := []Level{LevelHigh, LevelHigh, LevelHigh}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("after reading %d level = %v, want %v", i+1, levels[i], want[i])
		}
	}
}

func TestTransitionsRecomputeParams(t *testing.T) {
	c := NewController(WithLevel(LevelHigh), WithDevice(desktop1080p))
	before := c.Params()

	// Same-level manual set is a no-op that still recomputes parameters;
	// with an unchanged device that is bit-identical.
	if err := c.SetLevel(LevelHigh); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if c.Params() != before {
		t.Error("idempotent transition changed parameters with an unchanged device")
	}

	// A resize into a different resolution band changes parameters without
	// changing the level.
	c.SetScreenSize(7680, 4320)
	if c.Level() != LevelHigh {
		t.Errorf("resize changed level to %v", c.Level())
	}
	if c.Params() == before {
		t.Error("resize into a new resolution band did not recompute parameters")
	}
}

func TestObserverNotifiedOnChange(t *testing.T) {
	var notified []Level
	c := NewController(
		WithLevel(LevelLow),
		WithDevice(desktop1080p),
		WithObserver(ObserverFunc(func(level Level, _ Params) {
			notified = append(notified, level)
		})),
	)

	c.Cycle()
	c.SetLevel(LevelMedium) // no-op, must not notify
	c.Evaluate(10)          // Medium -> Low
	c.SetBatterySaving(true)

	want := []Level{LevelMedium, LevelLow}
	if len(notified) != len(want) {
		t.Fatalf("observer calls = %v, want %v", notified, want)
	}
	for i := range want {
		if notified[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, notified[i], want[i])
		}
	}
}

func TestDemoteOnce(t *testing.T) {
	c := NewController(WithLevel(LevelMedium), WithDevice(desktop1080p))
	if got := c.DemoteOnce(); got != LevelLow {
		t.Fatalf("DemoteOnce() = %v, want %v", got, LevelLow)
	}
	if got := c.DemoteOnce(); got != LevelLow {
		t.Errorf("DemoteOnce() at floor = %v, want %v", got, LevelLow)
	}
}

func TestWithThresholdsOverrides(t *testing.T) {
	c := NewController(
		WithLevel(LevelMedium),
		WithDevice(desktop1080p),
		WithThresholds(Thresholds{DemoteMedium: 30}),
	)
	if got := c.Evaluate(29); got != LevelLow {
		t.Errorf("custom DemoteMedium: Evaluate(29) = %v, want %v", got, LevelLow)
	}

	// Unset fields keep their defaults.
	if ths := c.Thresholds(); ths.PromoteHigh != DefaultThresholds().PromoteHigh {
		t.Errorf("PromoteHigh = %d, want default %d", ths.PromoteHigh, DefaultThresholds().PromoteHigh)
	}
}
