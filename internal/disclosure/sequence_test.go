package disclosure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithQuiz(t *testing.T) {
	seq := New(true)

	assert.Equal(t, AllStages, seq.Stages())
	assert.Equal(t, Unlocked, seq.State(Vignette))
	for _, st := range AllStages[1:] {
		assert.Equal(t, Locked, seq.State(st), st.String())
	}
	assert.True(t, seq.Armed(Keys))
	assert.False(t, seq.Armed(SRS))
}

func TestNew_WithoutQuiz(t *testing.T) {
	seq := New(false)

	assert.False(t, seq.Contains(MCQ))
	next, ok := seq.Next(Keys)
	require.True(t, ok)
	assert.Equal(t, SRS, next)
}

func TestAdvance_Locality(t *testing.T) {
	seq := New(true)

	next, ok := seq.Advance(Vignette)
	require.True(t, ok)
	assert.Equal(t, Foundation, next)
	assert.Equal(t, Visible, seq.State(Foundation))
	assert.Equal(t, Locked, seq.State(Algorithm))

	_, ok = seq.Advance(Vignette)
	assert.False(t, ok, "advance control is one-shot")
	assert.Equal(t, Locked, seq.State(Algorithm))
}

func TestAdvance_RequiresInteractive(t *testing.T) {
	seq := New(true)

	_, ok := seq.Advance(Algorithm)
	assert.False(t, ok)

	seq.Advance(Vignette)
	_, ok = seq.Advance(Foundation)
	assert.False(t, ok, "visible stage is not interactive yet")
	assert.True(t, seq.Armed(Foundation))

	require.True(t, seq.Unlock(Foundation))
	_, ok = seq.Advance(Foundation)
	assert.True(t, ok)
}

func TestUnlock_OnlyFromVisible(t *testing.T) {
	seq := New(true)
	assert.False(t, seq.Unlock(Foundation))
	assert.False(t, seq.Unlock(Vignette))
	assert.Equal(t, Unlocked, seq.State(Vignette))
}

func TestFullWalk_NoRegression(t *testing.T) {
	seq := New(true)
	stages := seq.Stages()

	for i := 0; i < len(stages)-1; i++ {
		next, ok := seq.Advance(stages[i])
		require.True(t, ok, stages[i].String())
		require.True(t, seq.Unlock(next))
		for _, prev := range stages[:i+2] {
			assert.Equal(t, Unlocked, seq.State(prev))
		}
	}
	assert.True(t, seq.Complete())
	assert.Equal(t, SRS, seq.Frontier())

	_, ok := seq.Advance(SRS)
	assert.False(t, ok)
}

func TestFrontier(t *testing.T) {
	seq := New(false)
	assert.Equal(t, Vignette, seq.Frontier())
	seq.Advance(Vignette)
	assert.Equal(t, Foundation, seq.Frontier())
}

func TestNewTiming(t *testing.T) {
	tm := NewTiming(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, tm.Unlock)
	assert.Equal(t, 100*time.Millisecond, tm.Scroll)
	assert.Equal(t, 600*time.Millisecond, tm.Feedback)

	assert.Equal(t, NewTiming(DefaultRevealLatency), NewTiming(0))
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, "mcq", MCQ.String())
	assert.Equal(t, "Clinical Vignette", Vignette.Title())
	assert.Equal(t, "unlocked", Unlocked.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
