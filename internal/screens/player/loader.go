package player

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/quiz"
)

// load starts fetching the next card under a new load sequence. The
// current card and all state derived from it are cleared first. A pending
// topic request is sent along until a card arrives.
func (s *PlayerScreen) load() tea.Cmd {
	s.loadSeq++
	s.reset()
	s.phase = phaseSearching
	s.loadErr = ""

	seq := s.loadSeq
	client := s.deps.Client
	topic := s.topic
	fetch := func() tea.Msg {
		c, err := client.NextCard(context.Background(), topic)
		return cardLoadedMsg{Seq: seq, Card: c, Err: err}
	}
	return tea.Batch(fetch, s.spinnerTick())
}

// reset drops the current card together with its stage, quiz and diagram
// state.
func (s *PlayerScreen) reset() {
	s.card = nil
	s.seq = nil
	s.quiz = nil
	s.panel = diagram.Panel{}
	s.prose = ""
	s.fadeIn = false
	s.scroll = 0
	s.submitting = false
}

func (s *PlayerScreen) handleCardLoaded(msg cardLoadedMsg) tea.Cmd {
	if msg.Seq != s.loadSeq {
		s.deps.Log.Debug("dropping stale card response", "seq", msg.Seq, "current", s.loadSeq)
		return nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrNotReady) {
			s.phase = phaseWaiting
			s.deps.Log.Info("no card ready, backend still generating")
		} else {
			s.phase = phaseUnavailable
			s.loadErr = msg.Err.Error()
			s.deps.Log.Error("card fetch failed", "error", msg.Err)
		}
		return nil
	}

	s.reset()
	s.topic = ""
	c := msg.Card
	s.card = c
	s.seq = disclosure.New(c.HasQuiz())
	if c.HasQuiz() {
		s.quiz = quiz.New(c.Quiz)
		s.quiz.Arm()
	}
	block := diagram.Extract(c.Algorithm)
	s.prose = block.Prose
	s.panel = diagram.NewPanel(block, s.deps.NewID)
	s.fadeIn = true
	s.phase = phaseReady

	s.deps.Log.Info("card installed", "card", c.Filename, "topic", c.Topic,
		"quiz", c.HasQuiz(), "diagram", block.Found)

	seq := s.loadSeq
	cmds := []tea.Cmd{
		s.deps.Tick(s.deps.Timing.Unlock, func(time.Time) tea.Msg { return fadeDoneMsg{Seq: seq} }),
	}
	if s.panel.Status == diagram.StatusPending {
		cmds = append(cmds, s.renderDiagram())
	}
	return tea.Batch(cmds...)
}

func (s *PlayerScreen) renderDiagram() tea.Cmd {
	seq := s.loadSeq
	id, source := s.panel.ID, s.panel.Source
	renderer, sink := s.deps.Renderer, s.deps.Sink
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), diagramTimeout)
		defer cancel()
		return diagramRenderedMsg{Seq: seq, Result: diagram.Render(ctx, renderer, sink, id, source)}
	}
}

func (s *PlayerScreen) handleDiagram(msg diagramRenderedMsg) {
	if msg.Seq != s.loadSeq {
		return
	}
	if !s.panel.Apply(msg.Result) {
		return
	}
	if msg.Result.Err != nil {
		s.deps.Log.Warn("diagram render failed", "id", msg.Result.ID, "error", msg.Result.Err)
		return
	}
	s.deps.Log.Debug("diagram rendered", "id", msg.Result.ID, "path", msg.Result.Path, "bytes", len(msg.Result.SVG))
}

// refreshStats fetches stats and roadmap independently of each other.
func (s *PlayerScreen) refreshStats() tea.Cmd {
	client := s.deps.Client
	return tea.Batch(
		func() tea.Msg {
			st, err := client.Stats(context.Background())
			return statsLoadedMsg{Stats: st, Err: err}
		},
		func() tea.Msg {
			items, err := client.Roadmap(context.Background())
			return roadmapLoadedMsg{Items: items, Err: err}
		},
	)
}

func (s *PlayerScreen) handleStats(msg statsLoadedMsg) {
	if msg.Err != nil {
		s.deps.Log.Warn("stats refresh failed", "error", msg.Err)
		return
	}
	s.stats = msg.Stats
}

func (s *PlayerScreen) handleRoadmap(msg roadmapLoadedMsg) {
	if msg.Err != nil {
		s.deps.Log.Warn("roadmap refresh failed", "error", msg.Err)
		return
	}
	s.roadmap = msg.Items
}
