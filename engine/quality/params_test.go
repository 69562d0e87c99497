package quality

import (
	"math"
	"testing"
)

var desktop1080p = DeviceProfile{ScreenWidth: 1920, ScreenHeight: 1080, RefreshRate: 60}

func TestDeriveParamsIncreasesWithLevel(t *testing.T) {
	prev := DeriveParams(LevelLow, desktop1080p)
	for _, level := range []Level{LevelMedium, LevelHigh, LevelUltra} {
		got := DeriveParams(level, desktop1080p)
		if got.QualityFactor <= prev.QualityFactor {
			t.Errorf("%v quality factor %v not above %v", level, got.QualityFactor, prev.QualityFactor)
		}
		if got.IterationCount <= prev.IterationCount {
			t.Errorf("%v iteration count %v not above %v", level, got.IterationCount, prev.IterationCount)
		}
		if got.DetailLevel <= prev.DetailLevel {
			t.Errorf("%v detail level %v not above %v", level, got.DetailLevel, prev.DetailLevel)
		}
		prev = got
	}
}

func TestDeriveParamsDeterministic(t *testing.T) {
	device := DeviceProfile{Mobile: true, BatterySaving: true, ScreenWidth: 2560, ScreenHeight: 1440}
	first := DeriveParams(LevelHigh, device)
	for i := 0; i < 100; i++ {
		if got := DeriveParams(LevelHigh, device); got != first {
			t.Fatalf("call %d produced %+v, want bit-identical %+v", i, got, first)
		}
	}
}

func TestDeriveParamsBounds(t *testing.T) {
	devices := []DeviceProfile{
		{},
		desktop1080p,
		{Mobile: true, ScreenWidth: 1170, ScreenHeight: 2532},
		{Mobile: true, BatterySaving: true, ScreenWidth: 1170, ScreenHeight: 2532},
		{ScreenWidth: 3840, ScreenHeight: 2160},
		{ScreenWidth: 7680, ScreenHeight: 4320},
		{BatterySaving: true, ScreenWidth: 7680, ScreenHeight: 4320},
	}
	for _, device := range devices {
		for _, level := range []Level{LevelLow, LevelMedium, LevelHigh, LevelUltra} {
			p := DeriveParams(level, device)
			if p.QualityFactor < 0 || p.QualityFactor > 2 {
				t.Errorf("level %v device %+v: quality factor %v out of [0,2]", level, device, p.QualityFactor)
			}
			if p.DetailLevel < 0 || p.DetailLevel > 2 {
				t.Errorf("level %v device %+v: detail level %v out of [0,2]", level, device, p.DetailLevel)
			}
			if p.IterationCount < 1 || p.IterationCount > 100 {
				t.Errorf("level %v device %+v: iteration count %v out of [1,100]", level, device, p.IterationCount)
			}
			if p.IterationCount != math.Trunc(p.IterationCount) {
				t.Errorf("level %v device %+v: iteration count %v not integer-valued", level, device, p.IterationCount)
			}
		}
	}
}

func TestDeriveParamsModifiersCompose(t *testing.T) {
	base := DeriveParams(LevelHigh, desktop1080p)
	mobile := DeriveParams(LevelHigh, DeviceProfile{Mobile: true, ScreenWidth: 1920, ScreenHeight: 1080})
	battery := DeriveParams(LevelHigh, DeviceProfile{Mobile: true, BatterySaving: true, ScreenWidth: 1920, ScreenHeight: 1080})

	if mobile.QualityFactor >= base.QualityFactor {
		t.Errorf("mobile factor %v not reduced from desktop %v", mobile.QualityFactor, base.QualityFactor)
	}
	if battery.QualityFactor >= mobile.QualityFactor {
		t.Errorf("battery factor %v not reduced from mobile %v", battery.QualityFactor, mobile.QualityFactor)
	}

	// Multiplicative composition: mobile*battery scale, not a sum.
	want := base.QualityFactor * mobileScale * batteryScale
	if math.Abs(battery.QualityFactor-want) > 1e-12 {
		t.Errorf("battery factor %v, want multiplicative %v", battery.QualityFactor, want)
	}
}

func TestResolutionScaleBands(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          float64
	}{
		{"1080p", 1920, 1080, scaleUpTo1080p},
		{"1440p", 2560, 1440, scaleUpTo4K},
		{"4k", 3840, 2160, scaleUpTo4K},
		{"8k", 7680, 4320, scaleAbove4K},
		{"zero area", 0, 0, scaleUpTo1080p},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolutionScale(tt.width * tt.height); got != tt.want {
				t.Errorf("resolutionScale(%dx%d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}
