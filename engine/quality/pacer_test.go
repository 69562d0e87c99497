package quality

import (
	"testing"
	"time"
)

func TestTargetFPS(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		device DeviceProfile
		want   float64
	}{
		{"desktop high", LevelHigh, desktop1080p, 60},
		{"desktop ultra", LevelUltra, desktop1080p, 60},
		{"desktop medium capped", LevelMedium, desktop1080p, 48},
		{"desktop low capped", LevelLow, desktop1080p, 30},
		{"mobile", LevelHigh, DeviceProfile{Mobile: true, RefreshRate: 60}, 45},
		{"battery wins over mobile", LevelHigh, DeviceProfile{Mobile: true, BatterySaving: true, RefreshRate: 60}, 30},
		{"slow display caps", LevelHigh, DeviceProfile{RefreshRate: 30}, 30},
		{"fast display does not raise", LevelHigh, DeviceProfile{RefreshRate: 144}, 60},
		{"no refresh hint", LevelHigh, DeviceProfile{}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetFPS(tt.level, tt.device); got != tt.want {
				t.Errorf("TargetFPS(%v, %+v) = %v, want %v", tt.level, tt.device, got, tt.want)
			}
		})
	}
}

func TestPacerSkipAndRender(t *testing.T) {
	p := NewPacer()
	start := time.Unix(0, 0)
	interval := time.Second / 60 // 16.67ms

	if render, _ := p.ShouldRender(start, interval); !render {
		t.Fatal("first frame must render and establish the baseline")
	}

	// 10ms after the last render: inside the interval, skip without moving
	// the baseline.
	if render, demote := p.ShouldRender(start.Add(10*time.Millisecond), interval); render || demote {
		t.Fatalf("call at +10ms: render=%v demote=%v, want skip", render, demote)
	}
	if p.ConsecutiveSkips() != 1 {
		t.Errorf("ConsecutiveSkips() = %d, want 1", p.ConsecutiveSkips())
	}

	// 20ms after the last render: due. The skipped call must not have moved
	// the baseline, so this measures from the original render.
	if render, _ := p.ShouldRender(start.Add(20*time.Millisecond), interval); !render {
		t.Fatal("call at +20ms must render")
	}
	if p.ConsecutiveSkips() != 0 {
		t.Errorf("ConsecutiveSkips() after render = %d, want 0", p.ConsecutiveSkips())
	}

	// Next due frame measures from the +20ms baseline.
	if render, _ := p.ShouldRender(start.Add(30*time.Millisecond), interval); render {
		t.Error("call at +30ms (10ms after new baseline) must skip")
	}
}

func TestPacerEmergencyDemotion(t *testing.T) {
	p := NewPacer()
	start := time.Unix(0, 0)
	interval := time.Second / 30

	p.ShouldRender(start, interval)

	// Callbacks arriving far faster than the target interval: the skip run
	// grows until it exceeds one second's worth of target frames, then the
	// pacer requests exactly one demotion and resets.
	budget := skipBudget(interval)
	demotions := 0
	ts := start
	for i := 0; i < budget+1; i++ {
		ts = ts.Add(time.Millisecond)
		if render, demote := p.ShouldRender(ts, interval); render {
			t.Fatalf("frame %d rendered inside the interval", i)
		} else if demote {
			demotions++
		}
	}

	if demotions != 1 {
		t.Fatalf("got %d demotion requests, want 1 after %d consecutive skips", demotions, budget+1)
	}
	if p.ConsecutiveSkips() != 0 {
		t.Errorf("ConsecutiveSkips() after demotion = %d, want reset to 0", p.ConsecutiveSkips())
	}
}

func TestPacerResume(t *testing.T) {
	p := NewPacer()
	start := time.Unix(0, 0)
	interval := time.Second / 60

	p.ShouldRender(start, interval)
	p.ShouldRender(start.Add(5*time.Millisecond), interval)

	// A long suspension, then resume: the baseline moves to the resume
	// timestamp so the gap is not treated as due time or a skip run.
	resumeAt := start.Add(time.Hour)
	p.Resume(resumeAt)
	if p.ConsecutiveSkips() != 0 {
		t.Errorf("ConsecutiveSkips() after resume = %d, want 0", p.ConsecutiveSkips())
	}
	if render, _ := p.ShouldRender(resumeAt.Add(time.Millisecond), interval); render {
		t.Error("frame 1ms after resume must skip, baseline should be the resume timestamp")
	}
	if render, _ := p.ShouldRender(resumeAt.Add(interval+time.Millisecond), interval); !render {
		t.Error("frame one interval after resume must render")
	}
}
