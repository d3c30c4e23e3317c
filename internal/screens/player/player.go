// Package player is the card-playing screen: it loads one due card at a
// time, reveals it stage by stage and submits the review rating.
package player

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/logger"
	"github.com/abhisek/battlecard/internal/quiz"
	"github.com/abhisek/battlecard/internal/router"
	"github.com/abhisek/battlecard/internal/screen"
	"github.com/abhisek/battlecard/internal/screens/history"
	"github.com/abhisek/battlecard/internal/store"
	"github.com/abhisek/battlecard/internal/ui/components"
	"github.com/abhisek/battlecard/internal/ui/layout"
)

// diagramTimeout bounds a single diagram render.
const diagramTimeout = 20 * time.Second

// phase is what the screen is currently showing.
type phase int

const (
	phaseSearching   phase = iota // fetch in flight, previous card cleared
	phaseReady                    // a card is installed
	phaseWaiting                  // backend is still generating (404)
	phaseUnavailable              // any other fetch failure
)

// TickFunc schedules a one-shot message, like tea.Tick.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Deps are the collaborators of the player screen.
type Deps struct {
	Client   api.Client
	Renderer diagram.Renderer
	Sink     diagram.Sink
	Journal  store.EventRepo
	Log      *logger.Logger
	Timing   disclosure.Timing
	// Topic, when set, is requested for the first card instead of the
	// scheduled one.
	Topic string

	// NewID and Tick default to diagram.NewID and tea.Tick.
	NewID func() string
	Tick  TickFunc
}

// PlayerScreen is the root screen of the TUI.
type PlayerScreen struct {
	deps Deps

	loadSeq uint64
	phase   phase
	loadErr string
	topic   string // requested topic for the next load

	// current card and everything derived from it
	card    *card.Card
	seq     *disclosure.Sequence
	quiz    *quiz.State
	panel   diagram.Panel
	prose   string
	fadeIn  bool
	scroll  int
	spinner int

	submitting bool
	submitErr  string

	stats         *card.Stats
	roadmap       []card.RoadmapItem
	showRoadmap   bool
	roadmapCursor int

	width int
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)

// New creates a PlayerScreen.
func New(deps Deps) *PlayerScreen {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.NewID == nil {
		deps.NewID = diagram.NewID
	}
	if deps.Tick == nil {
		deps.Tick = tea.Tick
	}
	if deps.Timing == (disclosure.Timing{}) {
		deps.Timing = disclosure.NewTiming(disclosure.DefaultRevealLatency)
	}
	return &PlayerScreen{deps: deps, topic: deps.Topic, roadmapCursor: -1, width: layout.MinWidth}
}

func (s *PlayerScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.refreshStats())
}

func (s *PlayerScreen) Title() string {
	if s.phase == phaseReady && s.card != nil {
		return s.card.Topic
	}
	return "Study"
}

// Stats returns the latest deck counters, or nil before the first refresh.
func (s *PlayerScreen) Stats() *card.Stats {
	return s.stats
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	if s.submitErr != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Dismiss"}}
	}
	switch s.phase {
	case phaseWaiting, phaseUnavailable:
		hints := []layout.KeyHint{{Key: "r", Description: "Retry"}}
		if s.showRoadmap && len(s.roadmap) > 0 {
			hints = append(hints, layout.KeyHint{Key: "←→ t", Description: "Study topic"})
		}
		return append(hints,
			layout.KeyHint{Key: "m", Description: "Roadmap"},
			layout.KeyHint{Key: "h", Description: "History"},
			layout.KeyHint{Key: "q", Description: "Quit"})
	case phaseSearching:
		return []layout.KeyHint{{Key: "q", Description: "Quit"}}
	}

	hints := make([]layout.KeyHint, 0, 8)
	if s.showRoadmap && len(s.roadmap) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Pick topic"},
			layout.KeyHint{Key: "t", Description: "Study topic"})
	}
	frontier := s.seq.Frontier()
	switch {
	case s.seq.Complete():
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Again/Hard/Good/Easy"})
	case frontier == disclosure.MCQ && s.quiz != nil && !s.quiz.Answered():
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "↑↓ Enter", Description: "Choose"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	}
	if s.panel.Status != diagram.StatusHidden && s.seq.Shown(disclosure.Algorithm) {
		hints = append(hints, layout.KeyHint{Key: "v", Description: "Diagram source"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "m", Description: "Roadmap"},
		layout.KeyHint{Key: "h", Description: "History"},
		layout.KeyHint{Key: "q", Description: "Quit"})
	return hints
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardLoadedMsg:
		return s, s.handleCardLoaded(msg)
	case fadeDoneMsg:
		if msg.Seq == s.loadSeq {
			s.fadeIn = false
		}
		return s, nil
	case unlockMsg:
		if msg.Seq == s.loadSeq && s.seq != nil {
			s.seq.Unlock(msg.Stage)
		}
		return s, nil
	case scrollMsg:
		if msg.Seq == s.loadSeq && s.seq != nil {
			s.scrollTo(msg.Stage)
		}
		return s, nil
	case feedbackDoneMsg:
		return s, s.handleFeedbackDone(msg)
	case diagramRenderedMsg:
		s.handleDiagram(msg)
		return s, nil
	case statsLoadedMsg:
		s.handleStats(msg)
		return s, nil
	case roadmapLoadedMsg:
		s.handleRoadmap(msg)
		return s, nil
	case reviewSubmittedMsg:
		return s, s.handleReviewSubmitted(msg)
	case spinnerTickMsg:
		if s.phase != phaseSearching {
			return s, nil
		}
		s.spinner++
		return s, s.spinnerTick()
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.submitErr != "" {
		s.submitErr = ""
		return nil
	}

	key := msg.String()
	if s.showRoadmap {
		switch key {
		case "left":
			s.moveRoadmapCursor(-1)
			return nil
		case "right":
			s.moveRoadmapCursor(1)
			return nil
		case "t":
			return s.studyFocusedTopic()
		}
	}
	switch key {
	case "q":
		return tea.Quit
	case "h":
		return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(s.deps.Journal)} }
	case "m":
		s.showRoadmap = !s.showRoadmap
		return nil
	case "r":
		if s.phase == phaseWaiting || s.phase == phaseUnavailable {
			return s.load()
		}
		return nil
	case "pgup":
		s.scrollBy(-10)
		return nil
	case "pgdown", "space":
		s.scrollBy(10)
		return nil
	case "home":
		s.scroll = 0
		return nil
	}

	if s.phase != phaseReady {
		return nil
	}

	switch key {
	case "enter":
		return s.handleEnter()
	case "up", "k":
		if s.quizFocused() {
			s.quiz.MoveFocus(-1)
		} else {
			s.scrollBy(-1)
		}
		return nil
	case "down", "j", "tab":
		if s.quizFocused() {
			s.quiz.MoveFocus(1)
		} else {
			s.scrollBy(1)
		}
		return nil
	case "v":
		if s.seq.Shown(disclosure.Algorithm) {
			s.panel.ToggleSource()
		}
		return nil
	case "1", "2", "3", "4":
		r, _ := card.ParseRating(key)
		return s.submit(r)
	}

	if _, ok := quiz.KeyIndex(key); ok {
		return s.handleQuizKey(key)
	}
	return nil
}

// handleEnter fires the advance control of the frontier stage, or selects
// the focused quiz option when the checkpoint is the frontier.
func (s *PlayerScreen) handleEnter() tea.Cmd {
	frontier := s.seq.Frontier()
	if frontier == disclosure.MCQ {
		if s.quizFocused() && s.quiz.SelectFocused() {
			return s.quizAnswered()
		}
		return nil
	}
	return s.advance(frontier)
}

// advance consumes the control of from and schedules the reveal of the
// next stage.
func (s *PlayerScreen) advance(from disclosure.Stage) tea.Cmd {
	next, ok := s.seq.Advance(from)
	if !ok {
		return nil
	}
	s.deps.Log.Debug("stage revealed", "card", s.card.Filename, "from", from.String(), "stage", next.String())
	return s.scheduleReveal(next)
}

func (s *PlayerScreen) scheduleReveal(st disclosure.Stage) tea.Cmd {
	seq := s.loadSeq
	return tea.Batch(
		s.deps.Tick(s.deps.Timing.Unlock, func(time.Time) tea.Msg { return unlockMsg{Seq: seq, Stage: st} }),
		s.deps.Tick(s.deps.Timing.Scroll, func(time.Time) tea.Msg { return scrollMsg{Seq: seq, Stage: st} }),
	)
}

// quizFocused reports whether the checkpoint is waiting for an answer.
func (s *PlayerScreen) quizFocused() bool {
	return s.quiz != nil && !s.quiz.Answered() && s.seq.IsInteractive(disclosure.MCQ)
}

func (s *PlayerScreen) handleQuizKey(key string) tea.Cmd {
	if s.quiz == nil || !s.seq.IsInteractive(disclosure.MCQ) {
		return nil
	}
	if !s.quiz.HandleKey(key) {
		return nil
	}
	return s.quizAnswered()
}

func (s *PlayerScreen) quizAnswered() tea.Cmd {
	s.quiz.Disarm()
	s.deps.Log.Info("quiz answered", "card", s.card.Filename,
		"option", s.quiz.Selected, "expected", s.quiz.CorrectIndex(), "correct", s.quiz.Correct)
	seq := s.loadSeq
	return s.deps.Tick(s.deps.Timing.Feedback, func(time.Time) tea.Msg { return feedbackDoneMsg{Seq: seq} })
}

func (s *PlayerScreen) handleFeedbackDone(msg feedbackDoneMsg) tea.Cmd {
	if msg.Seq != s.loadSeq || s.seq == nil {
		return nil
	}
	return s.advance(disclosure.MCQ)
}

// roadmapPanel is the roadmap component with the player's cursor applied.
func (s *PlayerScreen) roadmapPanel(width int) components.Roadmap {
	r := components.NewRoadmap(s.roadmap, width)
	r.Cursor = s.roadmapCursor
	return r
}

func (s *PlayerScreen) moveRoadmapCursor(delta int) {
	if len(s.roadmap) == 0 {
		return
	}
	i := s.roadmapPanel(0).FocusIndex() + delta
	if i < 0 {
		i = 0
	}
	if i >= len(s.roadmap) {
		i = len(s.roadmap) - 1
	}
	s.roadmapCursor = i
}

// studyFocusedTopic loads the card of the focused roadmap topic in place of
// the current one. It is ignored while a review is being submitted, since
// that submission's success would load again.
func (s *PlayerScreen) studyFocusedTopic() tea.Cmd {
	if s.submitting {
		return nil
	}
	i := s.roadmapPanel(0).FocusIndex()
	if i < 0 {
		return nil
	}
	s.topic = s.roadmap[i].Title
	s.showRoadmap = false
	s.roadmapCursor = -1
	s.deps.Log.Info("studying topic", "topic", s.topic)
	return s.load()
}

func (s *PlayerScreen) scrollBy(delta int) {
	s.scroll += delta
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func (s *PlayerScreen) scrollTo(st disclosure.Stage) {
	_, offsets := s.renderBody(s.width)
	if off, ok := offsets[st]; ok {
		s.scroll = off
	}
}

func (s *PlayerScreen) spinnerTick() tea.Cmd {
	return s.deps.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return spinnerTickMsg(t) })
}
