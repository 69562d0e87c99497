// Package tui provides the terminal chat replay for glimmer.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - neon-on-dark aesthetic matching the visualizer
var (
	ColorBrand  = lipgloss.Color("#B36BFF") // Soft violet
	ColorHost   = lipgloss.Color("#FF00CC") // Magenta for the scripted host
	ColorSelf   = lipgloss.Color("#00FF66") // Green for scripted replies
	ColorSystem = lipgloss.Color("#00CCFF") // Cyan for system notices
	ColorFact   = lipgloss.Color("#FFCC00") // Gold for background facts
	ColorError  = lipgloss.Color("#FF3366") // Error red-pink
	ColorMuted  = lipgloss.Color("#5555AA") // Muted purple-gray

	ColorBg     = lipgloss.Color("#08080F") // Deep space black
	ColorBorder = lipgloss.Color("#2A2A55") // Purple-tinted border
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBrand).
			Background(ColorBg)

	HostStyle = lipgloss.NewStyle().
			Foreground(ColorHost).
			Background(ColorBg).
			Bold(true)

	SelfStyle = lipgloss.NewStyle().
			Foreground(ColorSelf).
			Background(ColorBg).
			Bold(true)

	SystemStyle = lipgloss.NewStyle().
			Foreground(ColorSystem).
			Background(ColorBg).
			Italic(true)

	FactStyle = lipgloss.NewStyle().
			Foreground(ColorFact).
			Background(ColorBg).
			Italic(true)

	TypingStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBg).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Background(ColorBg).
			Bold(true)

	DimmedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBg)

	LogStyle = lipgloss.NewStyle().
			Background(ColorBg)

	StatusBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false). // Top border only
			BorderForeground(ColorBorder).
			Background(ColorBg)
)
