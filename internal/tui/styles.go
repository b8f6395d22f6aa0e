// Package tui renders assessment results as styled terminal cards.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("86")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("240")
	ColorBorder    = lipgloss.Color("62")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorHighlight = lipgloss.Color("121")
)

// Shared styles.
//
//nolint:gochecknoglobals // Immutable style definitions.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorLabel).Italic(true)
	OKStyle     = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// Progress bar glyphs.
const (
	barFilled = "█"
	barEmpty  = "░"
)
