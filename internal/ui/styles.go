package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - using more subtle, balanced palette
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSecondary = lipgloss.Color("8")   // Gray
	ColorSuccess   = lipgloss.Color("2")   // Green (dimmer)
	ColorWarning   = lipgloss.Color("3")   // Yellow (dimmer)
	ColorDanger    = lipgloss.Color("1")   // Red (dimmer)
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan

	ColorText = lipgloss.AdaptiveColor{Light: "236", Dark: "252"}
)

// Styles
var (
	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2)

	FocusedBoxStyle = BoxStyle.
			BorderForeground(ColorPrimary)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// Selected item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// Normal item style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Friend name style
	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Balance styles
	OweStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	OwedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	EvenStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Image URL style
	ImageStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Label style for form fields
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ActiveLabelStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight)

	// Disabled field style
	DisabledStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(ColorWarning).
				Bold(true).
				Padding(0, 1)

	// Divider style
	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Symbols
const (
	SymbolCursor   = "›"
	SymbolSelected = "●"
	SymbolDivider  = "─"
)

// ApplyTheme forces the light or dark palette. "auto" (or anything else)
// leaves terminal background detection to lipgloss.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
