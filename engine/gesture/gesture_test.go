package gesture

import (
	"testing"
	"time"

	"github.com/glimmer-vis/glimmer/common"
	"github.com/glimmer-vis/glimmer/engine/quality"
)

func TestDoubleTapRecognition(t *testing.T) {
	start := time.Unix(0, 0)

	tests := []struct {
		name string
		taps []struct {
			x, y  float64
			after time.Duration
		}
		want []bool
	}{
		{
			name: "two quick taps in place",
			taps: []struct {
				x, y  float64
				after time.Duration
			}{{100, 100, 0}, {104, 98, 200 * time.Millisecond}},
			want: []bool{false, true},
		},
		{
			name: "too slow",
			taps: []struct {
				x, y  float64
				after time.Duration
			}{{100, 100, 0}, {100, 100, 400 * time.Millisecond}},
			want: []bool{false, false},
		},
		{
			name: "too far apart",
			taps: []struct {
				x, y  float64
				after time.Duration
			}{{100, 100, 0}, {200, 100, 100 * time.Millisecond}},
			want: []bool{false, false},
		},
		{
			name: "triple tap counts once",
			taps: []struct {
				x, y  float64
				after time.Duration
			}{{100, 100, 0}, {100, 100, 100 * time.Millisecond}, {100, 100, 200 * time.Millisecond}},
			want: []bool{false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDoubleTap(DefaultTapInterval, DefaultTapRadius)
			for i, tap := range tt.taps {
				got := d.Tap(tap.x, tap.y, start.Add(tap.after))
				if got != tt.want[i] {
					t.Errorf("tap %d = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestAdapterKeyMapping(t *testing.T) {
	a := NewAdapter()

	tests := []struct {
		name    string
		keyCode uint32
		want    Command
		mapped  bool
	}{
		{"m cycles", common.KeyM, Command{Action: ActionCycle}, true},
		{"1 low", common.Key1, Command{Action: ActionSetLevel, Level: quality.LevelLow}, true},
		{"2 medium", common.Key2, Command{Action: ActionSetLevel, Level: quality.LevelMedium}, true},
		{"3 high", common.Key3, Command{Action: ActionSetLevel, Level: quality.LevelHigh}, true},
		{"4 ultra", common.Key4, Command{Action: ActionSetLevel, Level: quality.LevelUltra}, true},
		{"unmapped key", uint32('W'), Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mapped := a.KeyDown(tt.keyCode)
			if mapped != tt.mapped || got != tt.want {
				t.Errorf("KeyDown(%d) = %+v, %v; want %+v, %v", tt.keyCode, got, mapped, tt.want, tt.mapped)
			}
		})
	}
}

func TestAdapterDoubleTapCycles(t *testing.T) {
	a := NewAdapter()
	start := time.Unix(0, 0)

	if _, mapped := a.PointerDown(50, 50, start); mapped {
		t.Fatal("single tap mapped to a command")
	}
	cmd, mapped := a.PointerDown(52, 49, start.Add(150*time.Millisecond))
	if !mapped || cmd.Action != ActionCycle {
		t.Fatalf("double tap = %+v, %v; want cycle command", cmd, mapped)
	}
}
