package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/ui/theme"
)

// Roadmap renders one coloured dot per topic.
type Roadmap struct {
	Items []card.RoadmapItem
	Width int
	// Cursor is the picked item, or -1 to focus automatically.
	Cursor int
}

// NewRoadmap creates a new roadmap panel with automatic focus.
func NewRoadmap(items []card.RoadmapItem, width int) Roadmap {
	return Roadmap{Items: items, Width: width, Cursor: -1}
}

// View renders the dot grid, a legend and the title of the focused item.
func (r Roadmap) View() string {
	if len(r.Items) == 0 {
		return theme.Hint.Render("Roadmap not available yet.")
	}

	idx := r.FocusIndex()
	var dots strings.Builder
	for i, item := range r.Items {
		lvl := item.Level.Normalize()
		dot := "●"
		if i == idx {
			dot = "◉"
		}
		dots.WriteString(lipgloss.NewStyle().Foreground(theme.LevelColor(string(lvl))).Render(dot))
		dots.WriteString(" ")
	}
	grid := dots.String()
	if r.Width > 0 {
		grid = ansi.Wrap(grid, r.Width, "")
	}

	counts := make(map[card.Level]int)
	for _, item := range r.Items {
		counts[item.Level.Normalize()]++
	}
	legend := make([]string, 0, 5)
	for _, lvl := range []card.Level{card.LevelPending, card.LevelFresh, card.LevelLearning, card.LevelMastered, card.LevelUrgent} {
		legend = append(legend,
			lipgloss.NewStyle().Foreground(theme.LevelColor(string(lvl))).Render("●")+
				theme.Subtitle.Render(fmt.Sprintf(" %s %d", lvl, counts[lvl])))
	}

	focus := r.Items[idx]
	caption := theme.Subtitle.Render(fmt.Sprintf("#%d ", idx+1)) + theme.Body.Render(focus.Title)
	if focus.Interval > 0 {
		caption += theme.Subtitle.Render(fmt.Sprintf("  every %dd", focus.Interval))
	}

	return grid + "\n\n" + strings.Join(legend, "  ") + "\n" + caption
}

// FocusIndex returns the cursor when it is in range, otherwise the first
// urgent item, otherwise the last one. It is -1 for an empty roadmap.
func (r Roadmap) FocusIndex() int {
	if r.Cursor >= 0 && r.Cursor < len(r.Items) {
		return r.Cursor
	}
	for i, item := range r.Items {
		if item.Level.Normalize() == card.LevelUrgent {
			return i
		}
	}
	return len(r.Items) - 1
}
