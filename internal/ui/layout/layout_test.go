package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/battlecard/internal/card"
)

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "--/--  due --  -- days left", StatsLine(nil))
	assert.Equal(t, "12/40  due 3  9 days left",
		StatsLine(&card.Stats{Generated: 12, Total: 40, DueReviews: 3, DaysLeft: 9}))
	assert.Contains(t, StatsLine(&card.Stats{PendingGen: 2}), "+2 queued")
}

func TestRenderHeader(t *testing.T) {
	out := ansi.Strip(RenderHeader("Sepsis", &card.Stats{Generated: 1, Total: 2}, 100))
	assert.Contains(t, out, "Battlecard")
	assert.Contains(t, out, "Sepsis")
	assert.Contains(t, out, "1/2")
}

func TestRenderFooter(t *testing.T) {
	out := ansi.Strip(RenderFooter([]KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "q", Description: "Quit"}}, 80))
	assert.Contains(t, out, "Enter Continue")
	assert.Contains(t, out, "q Quit")
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader("x", nil, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, strings.Repeat("line\n", 100), footer, 80, 30)
	assert.Equal(t, 30, strings.Count(frame, "\n")+1)
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(40, 30))
	assert.False(t, IsTooSmall(80, 24))
}
