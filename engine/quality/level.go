package quality

import (
	"fmt"
	"strings"
)

// Level is a discrete rendering-fidelity tier, totally ordered by fidelity.
// Exactly one level is active per session at any time.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
	LevelUltra
)

// levelNames maps levels to their canonical lowercase names.
var levelNames = map[Level]string{
	LevelLow:    "low",
	LevelMedium: "medium",
	LevelHigh:   "high",
	LevelUltra:  "ultra",
}

// String returns the canonical lowercase name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether the level is one of the four defined tiers.
func (l Level) Valid() bool {
	return l >= LevelLow && l <= LevelUltra
}

// Next returns the next level in the manual cycle order
// Low -> Medium -> High -> Ultra -> Low (wraps).
func (l Level) Next() Level {
	if l >= LevelUltra || l < LevelLow {
		return LevelLow
	}
	return l + 1
}

// ParseLevel parses a level name (case-insensitive) into a Level.
//
// Parameters:
//   - name: the level name ("low", "medium", "high", "ultra")
//
// Returns:
//   - Level: the parsed level
//   - error: ErrInvalidLevel if the name is not recognized
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	case "ultra":
		return LevelUltra, nil
	default:
		return LevelLow, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}
