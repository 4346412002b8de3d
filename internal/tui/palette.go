package tui

import "github.com/charmbracelet/lipgloss"

// Colors are named after what they mark in the conversion views. Each adapts
// to light and dark terminal backgrounds.
var (
	ColorText      = lipgloss.AdaptiveColor{Light: "#2E3440", Dark: "#ECEFF4"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8A93A3"}
	ColorHeading   = lipgloss.AdaptiveColor{Light: "#1D6F8C", Dark: "#7FC8E0"}
	ColorConverted = lipgloss.AdaptiveColor{Light: "#2F7D32", Dark: "#9CCC65"}
	ColorSkipped   = lipgloss.AdaptiveColor{Light: "#7B4F9D", Dark: "#C39BD3"}
	ColorFailed    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F6C177"}
)

// The progress bar fades from the skipped hue to the converted hue.
const (
	barGradientFrom = "#C39BD3"
	barGradientTo   = "#9CCC65"
)
