package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/router"
	"github.com/abhisek/battlecard/internal/screen"
	"github.com/abhisek/battlecard/internal/store"
	"github.com/abhisek/battlecard/internal/ui/components"
	"github.com/abhisek/battlecard/internal/ui/layout"
	"github.com/abhisek/battlecard/internal/ui/theme"
)

// historyLimit caps how many reviews the screen loads.
const historyLimit = 200

type historyLoadedMsg struct {
	Reviews []store.ReviewEventRecord
	Err     error
}

// HistoryScreen lists past review submissions from the local journal.
type HistoryScreen struct {
	eventRepo store.EventRepo
	reviews   []store.ReviewEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string

	filtering bool
	filter    components.TextInput
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil repo shows an empty journal.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		reviews, err := repo.QueryReviewEvents(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Reviews: reviews, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.reviews = msg.Reviews
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.filtering {
			return s, s.updateFilter(msg)
		}
		visible := s.visible()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "/":
			s.filtering = true
			s.filter = components.NewTextInput("topic", 40)
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(visible)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		s.filtering = false
		s.selected = 0
		s.expanded = make(map[int]bool)
		return nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	return cmd
}

// visible returns the reviews matching the topic filter.
func (s *HistoryScreen) visible() []store.ReviewEventRecord {
	q := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	if q == "" {
		return s.reviews
	}
	out := make([]store.ReviewEventRecord, 0, len(s.reviews))
	for _, r := range s.reviews {
		if strings.Contains(strings.ToLower(r.Topic), q) || strings.Contains(strings.ToLower(r.CardFilename), q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.filtering || s.filter.Value() != "" {
		b.WriteString("  " + s.filter.View() + "\n\n")
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n  No reviews yet. Finish a card to start your journal."))
		return b.String()
	}

	for i, r := range visible {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := lipgloss.NewStyle().Foreground(ratingColor(card.Rating(r.Rating))).Render(card.Rating(r.Rating).String())
		if !r.Success {
			status = theme.Incorrect.Render("failed")
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := style.Render(fmt.Sprintf("%s%s  %s", prefix, r.Timestamp.Format("Jan 02 15:04"), r.Topic)) +
			"  " + status
		b.WriteString(line)
		b.WriteString("\n")

		if s.expanded[i] {
			quizLine := "no checkpoint"
			if r.QuizAnswered {
				quizLine = "checkpoint missed"
				if r.QuizCorrect {
					quizLine = "checkpoint correct"
				}
			}
			detail := fmt.Sprintf("      %s  ·  %s", r.CardFilename, quizLine)
			if r.ErrorMessage != "" {
				detail += "\n      " + r.ErrorMessage
			}
			b.WriteString(theme.Subtitle.Render(detail))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func ratingColor(r card.Rating) color.Color {
	switch r {
	case card.Again:
		return theme.Error
	case card.Hard:
		return theme.Accent
	case card.Good:
		return theme.Secondary
	case card.Easy:
		return theme.Success
	default:
		return theme.Text
	}
}
