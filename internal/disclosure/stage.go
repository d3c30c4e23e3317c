// Package disclosure reveals a card's sections one stage at a time.
package disclosure

// Stage identifies a section of a card.
type Stage int

const (
	Vignette Stage = iota
	Foundation
	Algorithm
	Keys
	MCQ
	SRS
)

// AllStages lists every stage in reveal order.
var AllStages = []Stage{Vignette, Foundation, Algorithm, Keys, MCQ, SRS}

var stageNames = map[Stage]string{
	Vignette:   "vignette",
	Foundation: "foundation",
	Algorithm:  "algorithm",
	Keys:       "keys",
	MCQ:        "mcq",
	SRS:        "srs",
}

var stageTitles = map[Stage]string{
	Vignette:   "Clinical Vignette",
	Foundation: "Foundation",
	Algorithm:  "Algorithm",
	Keys:       "Key Points",
	MCQ:        "Checkpoint",
	SRS:        "Pearls & Review",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return "unknown"
}

// Title is the heading shown above the stage.
func (s Stage) Title() string {
	return stageTitles[s]
}

// StageState is the visibility of a stage.
type StageState int

const (
	// Locked stages are hidden and inert.
	Locked StageState = iota
	// Visible stages are shown but not yet interactive.
	Visible
	// Unlocked stages are shown and interactive.
	Unlocked
)

func (s StageState) String() string {
	switch s {
	case Visible:
		return "visible"
	case Unlocked:
		return "unlocked"
	default:
		return "locked"
	}
}
