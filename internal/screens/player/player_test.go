package player

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/screen"
	"github.com/abhisek/battlecard/internal/store"
)

type fakeClient struct {
	mu        sync.Mutex
	cards     []*card.Card
	cardErr   error
	submitErr error
	road      []card.RoadmapItem

	topics      []string
	nextCalls   int
	statsCalls  int
	roadCalls   int
	submissions []card.Review
}

func (f *fakeClient) NextCard(_ context.Context, topic string) (*card.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextCalls++
	f.topics = append(f.topics, topic)
	if f.cardErr != nil {
		return nil, f.cardErr
	}
	if len(f.cards) == 0 {
		return nil, api.ErrNotReady
	}
	c := f.cards[0]
	f.cards = f.cards[1:]
	return c, nil
}

func (f *fakeClient) Stats(context.Context) (*card.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	return &card.Stats{Generated: 3, Total: 10, DueReviews: 1, DaysLeft: 20}, nil
}

func (f *fakeClient) Roadmap(context.Context) ([]card.RoadmapItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roadCalls++
	if f.road != nil {
		return f.road, nil
	}
	return []card.RoadmapItem{{Title: "Sepsis", Level: card.LevelFresh}}, nil
}

func (f *fakeClient) SubmitReview(_ context.Context, r card.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, r)
	return f.submitErr
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Render(context.Context, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "<svg></svg>", nil
}

type journalRepo struct {
	store.EventRepo
	reviews []store.ReviewEventData
}

func (j *journalRepo) AppendReviewEvent(_ context.Context, d store.ReviewEventData) error {
	j.reviews = append(j.reviews, d)
	return nil
}

// immediateTick fires tick callbacks without waiting.
func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Now()) }
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleCard(name string) *card.Card {
	return &card.Card{
		Filename:   name,
		Topic:      "Septic shock",
		Vignette:   "A 64-year-old with fever and hypotension.",
		Foundation: "Distributive shock.",
		Algorithm:  "Start here.\n```mermaid\n  graph TD\n    A-->B\n```\nThen fluids.",
		Keys:       "**MAP > 65**",
		Pearls:     "Lactate clearance.",
		Quiz: &card.Quiz{
			Question: "First vasopressor?",
			Options:  []string{"A) Dopamine", "B) Norepinephrine", "C) Vasopressin"},
			Answer:   "B",
		},
	}
}

func newTestScreen(client *fakeClient, opts ...func(*Deps)) (*PlayerScreen, *journalRepo) {
	journal := &journalRepo{}
	deps := Deps{
		Client:   client,
		Renderer: fakeRenderer{},
		Journal:  journal,
		Timing:   disclosure.NewTiming(time.Millisecond),
		NewID:    func() string { return "mermaid-svg-test" },
		Tick:     immediateTick,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return New(deps), journal
}

// drain runs cmd and every command it produces, feeding results back into
// the screen until nothing is left. Spinner ticks are not fed back since
// they reschedule themselves while a load is pending.
func drain(t *testing.T, s *PlayerScreen, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch m := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, m...)
		case spinnerTickMsg:
		default:
			var scr screen.Screen
			var next tea.Cmd
			scr, next = s.Update(m)
			s = scr.(*PlayerScreen)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, s *PlayerScreen, key tea.KeyPressMsg) {
	t.Helper()
	_, cmd := s.Update(key)
	drain(t, s, cmd)
}

// walkToQuiz advances through the prose stages.
func walkToQuiz(t *testing.T, s *PlayerScreen) {
	t.Helper()
	for _, st := range []disclosure.Stage{disclosure.Vignette, disclosure.Foundation, disclosure.Algorithm, disclosure.Keys} {
		require.True(t, s.seq.IsInteractive(st), st.String())
		press(t, s, specialKey(tea.KeyEnter))
	}
}

func TestInit_LoadsCardAndStats(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.Init())

	require.Equal(t, phaseReady, s.phase)
	assert.Equal(t, "a.md", s.card.Filename)
	assert.Equal(t, "Septic shock", s.Title())
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.Vignette))
	assert.Equal(t, disclosure.Locked, s.seq.State(disclosure.Foundation))
	assert.False(t, s.fadeIn)
	assert.Equal(t, 3, s.Stats().Generated)
	assert.Len(t, s.roadmap, 1)

	assert.Equal(t, diagram.StatusRendered, s.panel.Status)
	assert.Equal(t, "graph TD\nA-->B", s.panel.Source)
	assert.NotContains(t, s.prose, "mermaid")
}

func TestLoad_NotReadyWaits(t *testing.T) {
	client := &fakeClient{}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	assert.Equal(t, phaseWaiting, s.phase)
	assert.Nil(t, s.card)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "generating cards")

	client.cards = []*card.Card{sampleCard("a.md")}
	press(t, s, keyPress('r'))
	assert.Equal(t, phaseReady, s.phase)
	assert.Equal(t, 2, client.nextCalls)
}

func TestLoad_UnavailableShowsError(t *testing.T) {
	client := &fakeClient{cardErr: &api.UnavailableError{Endpoint: "/card", Status: 500, Err: errors.New("boom")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	assert.Equal(t, phaseUnavailable, s.phase)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "HTTP 500")
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	s.load()
	s.Update(cardLoadedMsg{Seq: s.loadSeq - 1, Card: sampleCard("old.md")})
	assert.Nil(t, s.card)
	assert.Equal(t, phaseSearching, s.phase)
}

func TestStaleTimersIgnored(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md"), sampleCard("b.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())
	old := s.loadSeq

	drain(t, s, s.load())
	s.Update(unlockMsg{Seq: old, Stage: disclosure.Foundation})
	s.Update(diagramRenderedMsg{Seq: old, Result: diagram.Result{ID: "mermaid-svg-test", Err: errors.New("late")}})

	assert.Equal(t, "b.md", s.card.Filename)
	assert.Equal(t, disclosure.Locked, s.seq.State(disclosure.Foundation))
	assert.Equal(t, diagram.StatusRendered, s.panel.Status)
}

func TestAdvance_RevealsNextStageOnly(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	press(t, s, specialKey(tea.KeyEnter))
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.Foundation))
	assert.Equal(t, disclosure.Locked, s.seq.State(disclosure.Algorithm))
	assert.False(t, s.seq.Armed(disclosure.Vignette))
	assert.Greater(t, s.scroll, 0, "view scrolls to the revealed stage")

	press(t, s, specialKey(tea.KeyEnter))
	press(t, s, specialKey(tea.KeyEnter))
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.Keys))
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.Vignette), "stages never regress")
}

func TestQuiz_LetterKeyAnswersOnce(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	press(t, s, keyPress('b'))
	assert.False(t, s.quiz.Answered(), "letters are inert before the checkpoint unlocks")

	walkToQuiz(t, s)
	require.True(t, s.seq.IsInteractive(disclosure.MCQ))

	press(t, s, keyPress('B'))
	assert.True(t, s.quiz.Answered())
	assert.True(t, s.quiz.Correct)
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.SRS))

	press(t, s, keyPress('a'))
	assert.Equal(t, 1, s.quiz.Selected)
}

func TestQuiz_LetterMatchesFocusedEnter(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md"), sampleCard("b.md")}}
	byKey, _ := newTestScreen(client)
	drain(t, byKey, byKey.load())
	walkToQuiz(t, byKey)
	press(t, byKey, keyPress('c'))

	byFocus, _ := newTestScreen(client)
	drain(t, byFocus, byFocus.load())
	walkToQuiz(t, byFocus)
	press(t, byFocus, specialKey(tea.KeyDown))
	press(t, byFocus, specialKey(tea.KeyDown))
	press(t, byFocus, specialKey(tea.KeyEnter))

	assert.Equal(t, 2, byKey.quiz.Selected)
	assert.Equal(t, byKey.quiz.Selected, byFocus.quiz.Selected)
	assert.Equal(t, byKey.quiz.Correct, byFocus.quiz.Correct)
	assert.False(t, byKey.quiz.Correct)
}

func TestQuiz_MissingOptionIgnored(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())
	walkToQuiz(t, s)

	press(t, s, keyPress('d'))
	assert.False(t, s.quiz.Answered())
	assert.True(t, s.quiz.Armed())
}

func TestNoQuiz_KeysLeadToFinalStage(t *testing.T) {
	c := sampleCard("a.md")
	c.Quiz = nil
	client := &fakeClient{cards: []*card.Card{c}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	walkToQuiz(t, s)
	assert.False(t, s.seq.Contains(disclosure.MCQ))
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.SRS))
}

func TestSubmit_RequiresFinalStage(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())

	press(t, s, keyPress('3'))
	assert.Empty(t, client.submissions)

	// Still refused with the checkpoint open.
	walkToQuiz(t, s)
	require.False(t, s.seq.Complete())
	press(t, s, keyPress('3'))
	assert.Empty(t, client.submissions)
}

func TestSubmit_SuccessLoadsOnceAndRefreshesOnce(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md"), sampleCard("b.md")}}
	s, journal := newTestScreen(client)
	drain(t, s, s.load())
	walkToQuiz(t, s)
	press(t, s, keyPress('b'))

	nextBefore, statsBefore, roadBefore := client.nextCalls, client.statsCalls, client.roadCalls
	press(t, s, keyPress('3'))

	require.Len(t, client.submissions, 1)
	assert.Equal(t, card.Review{CardFilename: "a.md", Rating: card.Good}, client.submissions[0])
	assert.Equal(t, nextBefore+1, client.nextCalls)
	assert.Equal(t, statsBefore+1, client.statsCalls)
	assert.Equal(t, roadBefore+1, client.roadCalls)

	assert.Equal(t, "b.md", s.card.Filename)
	assert.Equal(t, disclosure.Locked, s.seq.State(disclosure.Foundation))
	assert.False(t, s.quiz.Answered())

	require.Len(t, journal.reviews, 1)
	assert.True(t, journal.reviews[0].Success)
	assert.True(t, journal.reviews[0].QuizCorrect)
}

func TestSubmit_InFlightGuard(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.load())
	walkToQuiz(t, s)
	press(t, s, keyPress('a'))

	_, first := s.Update(keyPress('2'))
	_, second := s.Update(keyPress('4'))
	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestSubmit_FailureKeepsState(t *testing.T) {
	client := &fakeClient{
		cards:     []*card.Card{sampleCard("a.md")},
		submitErr: &api.SubmitError{Status: 503, Err: errors.New("down")},
	}
	s, journal := newTestScreen(client)
	drain(t, s, s.load())
	walkToQuiz(t, s)
	press(t, s, keyPress('b'))

	press(t, s, keyPress('1'))

	assert.NotEmpty(t, s.submitErr)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Review was not saved")
	assert.Equal(t, "a.md", s.card.Filename)
	assert.True(t, s.quiz.Answered())
	assert.Equal(t, disclosure.Unlocked, s.seq.State(disclosure.SRS))
	assert.Equal(t, 1, client.nextCalls)
	require.Len(t, journal.reviews, 1)
	assert.False(t, journal.reviews[0].Success)

	press(t, s, keyPress('x'))
	assert.Empty(t, s.submitErr)

	client.submitErr = nil
	client.cards = []*card.Card{sampleCard("b.md")}
	press(t, s, keyPress('1'))
	assert.Equal(t, "b.md", s.card.Filename)
}

func TestDiagram_FailureShowsSource(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	s.deps.Renderer = fakeRenderer{err: &diagram.RenderError{Message: "Parse error on line 1"}}
	drain(t, s, s.load())

	press(t, s, specialKey(tea.KeyEnter))
	press(t, s, specialKey(tea.KeyEnter))

	assert.Equal(t, diagram.StatusFailed, s.panel.Status)
	out := ansi.Strip(strings.Join(strings.Fields(s.View(120, 200)), " "))
	assert.Contains(t, out, "Syntax error in decision tree")
	assert.Contains(t, out, "Parse error on line 1")
	assert.NotContains(t, out, "A-->B")

	press(t, s, keyPress('v'))
	assert.True(t, s.panel.ShowSource)
	assert.Contains(t, ansi.Strip(s.View(120, 200)), "A-->B")
	assert.True(t, s.seq.IsInteractive(disclosure.Algorithm))
}

func TestRoadmapToggle(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.Init())

	press(t, s, keyPress('m'))
	assert.True(t, s.showRoadmap)
	assert.Contains(t, ansi.Strip(s.View(100, 60)), "3/10")
}

func TestTopic_RequestedUntilCardArrives(t *testing.T) {
	client := &fakeClient{}
	s, _ := newTestScreen(client, func(d *Deps) { d.Topic = "Burns" })
	drain(t, s, s.Init())
	require.Equal(t, phaseWaiting, s.phase)

	client.cards = []*card.Card{sampleCard("a.md")}
	press(t, s, keyPress('r'))
	require.Equal(t, phaseReady, s.phase)
	assert.Equal(t, []string{"Burns", "Burns"}, client.topics)
	assert.Empty(t, s.topic)
}

func TestRoadmap_StudyFocusedTopic(t *testing.T) {
	client := &fakeClient{
		cards: []*card.Card{sampleCard("a.md"), sampleCard("b.md")},
		road: []card.RoadmapItem{
			{Title: "Sepsis", Level: card.LevelFresh},
			{Title: "Burns", Level: card.LevelUrgent},
			{Title: "Trauma", Level: card.LevelPending},
		},
	}
	s, _ := newTestScreen(client)
	drain(t, s, s.Init())
	require.Equal(t, []string{""}, client.topics)

	press(t, s, keyPress('m'))
	assert.Contains(t, ansi.Strip(s.View(100, 60)), "#2 Burns")

	press(t, s, specialKey(tea.KeyRight))
	assert.Equal(t, 2, s.roadmapCursor)
	press(t, s, specialKey(tea.KeyLeft))
	press(t, s, specialKey(tea.KeyLeft))
	press(t, s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.roadmapCursor)

	press(t, s, keyPress('t'))
	assert.Equal(t, []string{"", "Sepsis"}, client.topics)
	assert.False(t, s.showRoadmap)
	require.Equal(t, phaseReady, s.phase)
	assert.Equal(t, "b.md", s.card.Filename)
	assert.Empty(t, s.topic)
}

func TestRoadmap_StudyIgnoredWhileSubmitting(t *testing.T) {
	client := &fakeClient{cards: []*card.Card{sampleCard("a.md")}}
	s, _ := newTestScreen(client)
	drain(t, s, s.Init())

	press(t, s, keyPress('m'))
	s.submitting = true
	press(t, s, keyPress('t'))
	assert.Equal(t, 1, client.nextCalls)
	assert.True(t, s.showRoadmap)
}
