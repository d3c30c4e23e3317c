// Package quiz grades the multiple-choice checkpoint of a card.
package quiz

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/battlecard/internal/card"
)

// KeyedOptions is the number of options reachable by letter key.
const KeyedOptions = 4

// State tracks one quiz instance. A fresh State is created for every card.
type State struct {
	// Question and Options are shown in the order the backend sent them.
	Question string
	Options  []string
	Answer   string

	// Focus is the option Enter would select.
	Focus int

	// Selected is the chosen option index, or -1 before any selection.
	Selected int

	// Locked is set by the first selection and never cleared.
	Locked bool

	// Correct reports the outcome of the selection.
	Correct bool

	keysArmed bool
}

// New builds the quiz state for q. A nil or empty quiz yields a state with
// no options that can never be answered.
func New(q *card.Quiz) *State {
	s := &State{Selected: -1}
	if q == nil {
		return s
	}
	s.Question = q.Question
	s.Options = append([]string(nil), q.Options...)
	s.Answer = q.Answer
	return s
}

// IsCorrect reports whether option matches answer on its first character.
// The backend records answers as "B" or "B) text", so the letter prefix of
// the option is what gets compared. An empty answer matches nothing.
func IsCorrect(option, answer string) bool {
	a, _ := utf8.DecodeRuneInString(answer)
	if a == utf8.RuneError {
		return false
	}
	o, _ := utf8.DecodeRuneInString(option)
	return o == a
}

// KeyIndex maps a letter key A-D (either case) to an option index.
func KeyIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := strings.ToUpper(key)[0]
	if c < 'A' || c >= 'A'+KeyedOptions {
		return 0, false
	}
	return int(c - 'A'), true
}

// Label returns the letter shown next to option i.
func Label(i int) string {
	return string(rune('A' + i))
}

// HasLabel reports whether option already starts with its own letter, as
// in "A) ..." or "a. ...".
func HasLabel(i int, option string) bool {
	label := Label(i)
	for _, l := range []string{label, strings.ToLower(label)} {
		if strings.HasPrefix(option, l+")") || strings.HasPrefix(option, l+".") {
			return true
		}
	}
	return false
}

// Display returns the option text with its letter, adding the letter only
// when the option does not carry it already.
func Display(i int, option string) string {
	if HasLabel(i, option) {
		return option
	}
	return Label(i) + ")  " + option
}

// Answered reports whether a selection has been made.
func (s *State) Answered() bool {
	return s.Locked
}

// Select grades option i. Only the first selection on a State counts;
// later calls and out-of-range indexes return false.
func (s *State) Select(i int) bool {
	if s.Locked || i < 0 || i >= len(s.Options) {
		return false
	}
	s.Locked = true
	s.Selected = i
	s.Focus = i
	s.Correct = IsCorrect(s.Options[i], s.Answer)
	s.keysArmed = false
	return true
}

// SelectFocused grades the focused option.
func (s *State) SelectFocused() bool {
	return s.Select(s.Focus)
}

// MoveFocus shifts the focus by delta, clamped to the option list.
func (s *State) MoveFocus(delta int) {
	if s.Locked || len(s.Options) == 0 {
		return
	}
	s.Focus += delta
	if s.Focus < 0 {
		s.Focus = 0
	}
	if s.Focus > len(s.Options)-1 {
		s.Focus = len(s.Options) - 1
	}
}

// Arm enables letter-key selection. It has no effect after a selection.
func (s *State) Arm() {
	if !s.Locked {
		s.keysArmed = true
	}
}

// Disarm disables letter-key selection.
func (s *State) Disarm() {
	s.keysArmed = false
}

// Armed reports whether a letter key would be handled.
func (s *State) Armed() bool {
	return s.keysArmed
}

// HandleKey selects the option named by key when letter keys are armed.
// Letters without a matching option are ignored and leave the guard armed.
func (s *State) HandleKey(key string) bool {
	if !s.keysArmed {
		return false
	}
	i, ok := KeyIndex(key)
	if !ok || i >= len(s.Options) {
		return false
	}
	return s.Select(i)
}

// CorrectIndex returns the first option matching the answer, or -1.
func (s *State) CorrectIndex() int {
	for i, opt := range s.Options {
		if IsCorrect(opt, s.Answer) {
			return i
		}
	}
	return -1
}
