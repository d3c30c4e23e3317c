package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/markdown"
	"github.com/abhisek/battlecard/internal/ui/components"
	"github.com/abhisek/battlecard/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *PlayerScreen) View(width, height int) string {
	s.width = width

	var content string
	switch s.phase {
	case phaseSearching:
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		content = theme.Faded.Render(fmt.Sprintf("\n\n  %s Searching for the next card...", frame))
	case phaseWaiting:
		content = s.renderNotice(width,
			"Researching and generating cards in the background.",
			"Nothing is due yet. Press r to check again.")
	case phaseUnavailable:
		content = s.renderNotice(width,
			"The card service is unavailable.",
			s.loadErr+"\n\nPress r to retry.")
	default:
		body, _ := s.renderBody(width)
		content = window(body, s.clampScroll(body, height), height)
	}
	if s.showRoadmap && (s.phase == phaseWaiting || s.phase == phaseUnavailable) {
		content += "\n\n" + indent(s.renderRoadmap(innerWidth(width)), 2)
	}

	if s.submitErr != "" {
		return s.renderOverlay(width, height)
	}
	return content
}

func (s *PlayerScreen) renderNotice(width int, title, detail string) string {
	box := theme.Panel.
		Width(min(width-4, 72)).
		Render(theme.Title.Render(title) + "\n\n" + theme.Subtitle.Render(detail))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *PlayerScreen) renderOverlay(width, height int) string {
	box := theme.Overlay.
		Width(min(width-8, 64)).
		Render(theme.Incorrect.Render("Review was not saved") + "\n\n" +
			s.submitErr + "\n\n" +
			theme.Hint.Render("Press any key to return to the card."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func innerWidth(width int) int {
	return max(width-4, 20)
}

// renderRoadmap renders the deck progress bar and the roadmap dots.
func (s *PlayerScreen) renderRoadmap(inner int) string {
	return theme.Panel.Width(inner).Render(
		components.NewProgressBar("Deck", statsDone(s.stats), statsTotal(s.stats), inner-4).View() + "\n\n" +
			s.roadmapPanel(inner-4).View())
}

// renderBody renders every shown stage of the current card and returns the
// line offset at which each stage starts.
func (s *PlayerScreen) renderBody(width int) (string, map[disclosure.Stage]int) {
	offsets := make(map[disclosure.Stage]int)
	if s.card == nil || s.seq == nil {
		return "", offsets
	}
	inner := innerWidth(width)

	var b strings.Builder
	if s.showRoadmap {
		b.WriteString(s.renderRoadmap(inner))
		b.WriteString("\n")
	}

	b.WriteString(theme.Title.Render("  " + s.card.Topic))
	b.WriteString("\n")

	for _, st := range s.seq.Stages() {
		if !s.seq.Shown(st) {
			break
		}
		offsets[st] = strings.Count(b.String(), "\n")

		section := theme.StageTitle.Render("▌ "+st.Title()) + "\n" + s.renderStage(st, inner)
		if s.fadeIn || s.seq.State(st) == disclosure.Visible {
			section = theme.Faded.Render(ansi.Strip(section))
		}
		b.WriteString("\n")
		b.WriteString(indent(section, 2))
		b.WriteString("\n")
	}
	return b.String(), offsets
}

func (s *PlayerScreen) renderStage(st disclosure.Stage, width int) string {
	c := s.card
	var body string
	switch st {
	case disclosure.Vignette:
		body = markdown.Render(c.Vignette, width)
	case disclosure.Foundation:
		body = markdown.Render(c.Foundation, width)
	case disclosure.Algorithm:
		body = markdown.Render(s.prose, width)
		if panel := s.renderPanel(width); panel != "" {
			body += "\n" + panel
		}
	case disclosure.Keys:
		body = markdown.Render(c.Keys, width)
	case disclosure.MCQ:
		mc := components.NewMultiChoice(s.quiz, s.seq.IsInteractive(st), width)
		body = mc.View()
		if fb := mc.Feedback(); fb != "" {
			body += "\n" + fb
		}
		return body
	case disclosure.SRS:
		return markdown.Render(c.FinalText(), width) + "\n\n" + s.renderRatings()
	}

	if _, ok := s.seq.Next(st); ok {
		btn := components.NewButton("Continue", s.seq.IsInteractive(st) && s.seq.Armed(st), !s.seq.Armed(st))
		body += "\n" + btn.View()
	}
	return body
}

func (s *PlayerScreen) renderPanel(width int) string {
	p := s.panel
	source := lipgloss.NewStyle().Foreground(theme.TextDim).Render(indent(p.Source, 2))

	switch p.Status {
	case diagram.StatusPending:
		return theme.Hint.Render("Rendering decision tree...")
	case diagram.StatusRendered:
		info := theme.Correct.Render("Decision tree rendered") + "\n" +
			theme.Subtitle.Render(fmt.Sprintf("%s  %d bytes", p.ID, len(p.SVG)))
		if p.Path != "" {
			info += "\n" + theme.Body.Render("Saved to "+p.Path)
		}
		info += "\n\n" + source
		return theme.Panel.Width(width).Render(info)
	case diagram.StatusFailed:
		text := "Syntax error in decision tree\n" + ansi.Wrap(p.Err, width-4, "")
		if p.ShowSource {
			text += "\n\n▾ source\n" + p.Source
		} else {
			text += "\n\n▸ source (v)"
		}
		return theme.ErrorBox.Width(width).Render(text)
	}
	return ""
}

func (s *PlayerScreen) renderRatings() string {
	parts := make([]string, 0, 4)
	for _, r := range card.AllRatings() {
		label := fmt.Sprintf("%d %s", int(r), r.String())
		if s.submitting || !s.seq.IsInteractive(disclosure.SRS) {
			parts = append(parts, theme.ButtonInactive.Render(label))
		} else {
			parts = append(parts, theme.ButtonActive.Render(label))
		}
	}
	row := strings.Join(parts, " ")
	if s.submitting {
		row += "\n" + theme.Hint.Render("Saving review...")
	}
	return row
}

func (s *PlayerScreen) clampScroll(body string, height int) int {
	lines := strings.Count(body, "\n") + 1
	maxScroll := lines - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	return s.scroll
}

func window(body string, offset, height int) string {
	lines := strings.Split(body, "\n")
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

func statsDone(st *card.Stats) int {
	if st == nil {
		return 0
	}
	return st.Generated
}

func statsTotal(st *card.Stats) int {
	if st == nil {
		return 0
	}
	return st.Total
}
