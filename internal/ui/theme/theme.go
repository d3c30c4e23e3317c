package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, tuned for long reading sessions on dark terminals.
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	TextFaint = lipgloss.Color("#475569") // Slate, faded
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Roadmap level colors.
var (
	LevelPending  = lipgloss.Color("#475569")
	LevelFresh    = lipgloss.Color("#38BDF8")
	LevelLearning = lipgloss.Color("#F59E0B")
	LevelMastered = lipgloss.Color("#22C55E")
	LevelUrgent   = lipgloss.Color("#F43F5E")
)

// LevelColor maps a roadmap level name to its color. Unknown levels use the
// pending color.
func LevelColor(level string) color.Color {
	switch level {
	case "fresh":
		return LevelFresh
	case "learning":
		return LevelLearning
	case "mastered":
		return LevelMastered
	case "urgent":
		return LevelUrgent
	default:
		return LevelPending
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Faded = lipgloss.NewStyle().
		Foreground(TextFaint)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	StageTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)
)

// Layout
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Foreground(Error).
			Padding(0, 1)

	Overlay = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Error).
		Background(BgCard).
		Foreground(Text).
		Padding(1, 3)
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

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)
