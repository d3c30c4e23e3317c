package components

import (
	"github.com/abhisek/battlecard/internal/ui/theme"
)

// Button is the advance control at the foot of a stage.
type Button struct {
	Label string
	// Active buttons respond to Enter.
	Active bool
	// Spent buttons already fired and stay inert.
	Spent bool
}

// NewButton creates a new button.
func NewButton(label string, active, spent bool) Button {
	return Button{
		Label:  label,
		Active: active,
		Spent:  spent,
	}
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Spent:
		return theme.ButtonInactive.Render("✓ " + b.Label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render("  " + b.Label)
	}
}
