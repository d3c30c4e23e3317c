package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func plain(md string, width int) string {
	return ansi.Strip(Render(md, width))
}

func TestRender_Blocks(t *testing.T) {
	out := plain("# Sepsis\n\nEarly **fluids** and *antibiotics*.\n\n- qSOFA\n- Lactate\n\n1. Cultures\n2. Broad spectrum\n", 0)

	assert.Contains(t, out, "Sepsis")
	assert.Contains(t, out, "Early fluids and antibiotics.")
	assert.Contains(t, out, "• qSOFA")
	assert.Contains(t, out, "• Lactate")
	assert.Contains(t, out, "1. Cultures")
	assert.Contains(t, out, "2. Broad spectrum")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "# ")
}

func TestRender_DropsHTML(t *testing.T) {
	out := plain("Before\n\n<script>alert(1)</script>\n\nAfter <b>inline</b>\n", 0)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "After")
	assert.Contains(t, out, "inline")
}

func TestRender_CodeAndLinks(t *testing.T) {
	out := plain("Use `MAP > 65`.\n\n```\ngraph TD\nA-->B\n```\n\nSee [guide](https://example.com).\n", 0)
	assert.Contains(t, out, "MAP > 65")
	assert.Contains(t, out, "    graph TD")
	assert.Contains(t, out, "    A-->B")
	assert.Contains(t, out, "guide (https://example.com)")
}

func TestRender_Wraps(t *testing.T) {
	out := plain(strings.Repeat("word ", 40), 20)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 20, line)
	}
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", plain("", 40))
}
