package card

import "strings"

// PendingPearls is shown in the final stage when a card carries no pearls.
const PendingPearls = "*Pending deeper review...*"

// Card is one study unit as served by the backend.
type Card struct {
	// Filename is the opaque identifier used for review submission.
	Filename   string `json:"filename"`
	Topic      string `json:"topic"`
	Vignette   string `json:"vignette"`
	Foundation string `json:"foundation"`
	Algorithm  string `json:"algorithm"`
	Keys       string `json:"keys"`
	Pearls     string `json:"pearls"`
	Quiz       *Quiz  `json:"mcq"`
}

// Quiz is the embedded multiple-choice checkpoint.
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// HasQuiz reports whether the card carries a usable quiz. A quiz without a
// question or without options is treated as absent.
func (c *Card) HasQuiz() bool {
	if c == nil || c.Quiz == nil {
		return false
	}
	return strings.TrimSpace(c.Quiz.Question) != "" && len(c.Quiz.Options) > 0
}

// FinalText returns the content of the last stage, falling back to the
// pending placeholder.
func (c *Card) FinalText() string {
	if strings.TrimSpace(c.Pearls) == "" {
		return PendingPearls
	}
	return c.Pearls
}

// Stats is the backend's progress summary.
type Stats struct {
	Generated  int `json:"generated"`
	Total      int `json:"total"`
	DueReviews int `json:"due_reviews"`
	DaysLeft   int `json:"days_left"`
	PendingGen int `json:"pending_gen,omitempty"`
}

// Level is the roadmap colour bucket of a topic.
type Level string

const (
	LevelPending  Level = "pending"
	LevelFresh    Level = "fresh"
	LevelLearning Level = "learning"
	LevelMastered Level = "mastered"
	LevelUrgent   Level = "urgent"
)

// Normalize maps unknown levels to pending.
func (l Level) Normalize() Level {
	switch l {
	case LevelFresh, LevelLearning, LevelMastered, LevelUrgent:
		return l
	default:
		return LevelPending
	}
}

// RoadmapItem is one progress dot.
type RoadmapItem struct {
	ID       int    `json:"id,omitempty"`
	Title    string `json:"title"`
	Level    Level  `json:"level"`
	Interval int    `json:"interval,omitempty"`
}

// Review is the body posted to the review endpoint.
type Review struct {
	CardFilename string `json:"card_filename"`
	Rating       Rating `json:"rating"`
}
