package disclosure

// Sequence is the ordered list of stages bound to the current card together
// with each stage's state and the one-shot advance guards.
type Sequence struct {
	stages []Stage
	states map[Stage]StageState
	armed  map[Stage]bool
}

// New binds a sequence for a card. Cards without a quiz skip the mcq stage.
// The first stage starts unlocked and every stage but the last gets an armed
// advance control.
func New(hasQuiz bool) *Sequence {
	seq := &Sequence{
		states: make(map[Stage]StageState),
		armed:  make(map[Stage]bool),
	}
	for _, st := range AllStages {
		if st == MCQ && !hasQuiz {
			continue
		}
		seq.stages = append(seq.stages, st)
	}
	for i, st := range seq.stages {
		seq.states[st] = Locked
		if i < len(seq.stages)-1 {
			seq.armed[st] = true
		}
	}
	seq.states[seq.stages[0]] = Unlocked
	return seq
}

// Stages returns the bound stages in order.
func (s *Sequence) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

// Contains reports whether st is part of the sequence.
func (s *Sequence) Contains(st Stage) bool {
	_, ok := s.states[st]
	return ok
}

// State returns the state of st. Stages outside the sequence are locked.
func (s *Sequence) State(st Stage) StageState {
	return s.states[st]
}

// Shown reports whether st is rendered.
func (s *Sequence) Shown(st Stage) bool {
	return s.states[st] != Locked
}

// IsInteractive reports whether st accepts input.
func (s *Sequence) IsInteractive(st Stage) bool {
	return s.states[st] == Unlocked
}

// Armed reports whether the advance control of st can still fire.
func (s *Sequence) Armed(st Stage) bool {
	return s.armed[st]
}

// Next returns the stage after from.
func (s *Sequence) Next(from Stage) (Stage, bool) {
	for i, st := range s.stages {
		if st == from && i+1 < len(s.stages) {
			return s.stages[i+1], true
		}
	}
	return 0, false
}

// Advance fires the advance control of from. It consumes the control and
// makes the next stage visible, returning that stage. It fails if from is
// not interactive or its control has already fired.
func (s *Sequence) Advance(from Stage) (Stage, bool) {
	if !s.IsInteractive(from) || !s.armed[from] {
		return 0, false
	}
	next, ok := s.Next(from)
	if !ok {
		return 0, false
	}
	s.armed[from] = false
	if s.states[next] == Locked {
		s.states[next] = Visible
	}
	return next, true
}

// Unlock promotes a visible stage to unlocked.
func (s *Sequence) Unlock(st Stage) bool {
	if s.states[st] != Visible {
		return false
	}
	s.states[st] = Unlocked
	return true
}

// Frontier returns the last stage that is shown.
func (s *Sequence) Frontier() Stage {
	last := s.stages[0]
	for _, st := range s.stages {
		if s.states[st] != Locked {
			last = st
		}
	}
	return last
}

// Complete reports whether the final stage is unlocked.
func (s *Sequence) Complete() bool {
	return s.IsInteractive(s.stages[len(s.stages)-1])
}
