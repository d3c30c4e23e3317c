package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/battlecard/internal/quiz"
	"github.com/abhisek/battlecard/internal/ui/theme"
)

// MultiChoice renders a quiz state. After a selection only the chosen
// option is tagged correct or incorrect; the rest are shown disabled.
type MultiChoice struct {
	State *quiz.State
	// Interactive shows the focus marker.
	Interactive bool
	Width       int
}

// NewMultiChoice creates a new multiple-choice view.
func NewMultiChoice(state *quiz.State, interactive bool, width int) MultiChoice {
	return MultiChoice{
		State:       state,
		Interactive: interactive,
		Width:       width,
	}
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	if m.State == nil {
		return ""
	}
	var b strings.Builder

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	b.WriteString(questionStyle.Render(m.wrap(m.State.Question, 0)))
	b.WriteString("\n\n")

	for i, opt := range m.State.Options {
		prefix := "  "
		if m.Interactive && !m.State.Locked && i == m.State.Focus {
			prefix = "▸ "
		}
		line := prefix + quiz.Display(i, opt)

		var style lipgloss.Style
		switch {
		case m.State.Locked && i == m.State.Selected && m.State.Correct:
			style = theme.Correct
			line += "  ✓"
		case m.State.Locked && i == m.State.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case m.State.Locked:
			style = theme.Disabled
		case m.Interactive && i == m.State.Focus:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(m.wrap(line, 6)))
		b.WriteString("\n")
	}

	return b.String()
}

// Feedback renders the panel shown after a selection.
func (m MultiChoice) Feedback() string {
	if m.State == nil || !m.State.Locked {
		return ""
	}
	header := theme.Incorrect.Render("✗ Not quite")
	border := theme.Error
	if m.State.Correct {
		header = theme.Correct.Render("✓ Correct")
		border = theme.Success
	}
	body := header + "\n" +
		theme.Body.Render(m.wrap("Answer: "+m.State.Answer, 0))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(body)
}

func (m MultiChoice) wrap(s string, indent int) string {
	if m.Width <= 0 {
		return s
	}
	w := ansi.Wrap(s, m.Width, "")
	if indent == 0 {
		return w
	}
	return strings.ReplaceAll(w, "\n", "\n"+strings.Repeat(" ", indent))
}
