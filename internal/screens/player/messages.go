package player

import (
	"time"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
)

// Messages produced by async work carry the load sequence they belong to.
// Anything tagged with a superseded sequence is dropped on arrival.

// cardLoadedMsg is sent when a GET /card completes.
type cardLoadedMsg struct {
	Seq  uint64
	Card *card.Card
	Err  error
}

// fadeDoneMsg ends the faded-in rendering of a freshly installed card.
type fadeDoneMsg struct {
	Seq uint64
}

// unlockMsg promotes a visible stage to unlocked.
type unlockMsg struct {
	Seq   uint64
	Stage disclosure.Stage
}

// scrollMsg brings a newly revealed stage to the top of the view.
type scrollMsg struct {
	Seq   uint64
	Stage disclosure.Stage
}

// feedbackDoneMsg ends the quiz feedback hold.
type feedbackDoneMsg struct {
	Seq uint64
}

// diagramRenderedMsg carries a render result for the algorithm panel.
type diagramRenderedMsg struct {
	Seq    uint64
	Result diagram.Result
}

// statsLoadedMsg is sent when a GET /stats completes.
type statsLoadedMsg struct {
	Stats *card.Stats
	Err   error
}

// roadmapLoadedMsg is sent when a GET /roadmap completes.
type roadmapLoadedMsg struct {
	Items []card.RoadmapItem
	Err   error
}

// reviewSubmittedMsg is sent when a POST /review completes.
type reviewSubmittedMsg struct {
	Seq    uint64
	Rating card.Rating
	Err    error
}

// spinnerTickMsg animates the searching indicator.
type spinnerTickMsg time.Time
