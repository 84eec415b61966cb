package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: parchment and gold, readable on dark terminals
var (
	Primary   = lipgloss.Color("#D4A017") // Gold
	Secondary = lipgloss.Color("#7C5CBF") // Arcane Purple
	Accent    = lipgloss.Color("#2DD4BF") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F5F0E1") // Parchment
	TextDim   = lipgloss.Color("#9C9484") // Faded Ink
	BgDark    = lipgloss.Color("#17130E") // Candlelit Black
	BgCard    = lipgloss.Color("#262019") // Dark Leather
	Border    = lipgloss.Color("#4A3F2E") // Worn Brass
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Narrative = lipgloss.NewStyle().
			Foreground(Text).
			Italic(true)

	Narrator = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Correct = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Wrong = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
