// Package markdown renders card markdown as styled terminal text.
package markdown

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/russross/blackfriday/v2"

	"github.com/abhisek/battlecard/internal/ui/theme"
)

const extensions = blackfriday.CommonExtensions | blackfriday.HardLineBreak

// Render converts markdown to lipgloss-styled text wrapped at width
// (no wrapping when width <= 0). Raw HTML is dropped.
func Render(text string, width int) string {
	r := &termRenderer{}
	out := blackfriday.Run([]byte(text),
		blackfriday.WithExtensions(extensions),
		blackfriday.WithRenderer(r),
	)
	s := strings.TrimRight(string(out), "\n ")
	if width > 0 {
		s = ansi.Wrap(s, width, "")
	}
	return s
}

// termRenderer implements blackfriday.Renderer for a terminal.
type termRenderer struct {
	strong, emph, del, link, quote int
	heading                        int
	lists                          []listState
}

type listState struct {
	ordered bool
	tight   bool
	n       int
}

var (
	headingStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	codeStyle    = lipgloss.NewStyle().Foreground(theme.Accent)
	quoteStyle   = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(theme.Border)
	linkDest     = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func (r *termRenderer) RenderHeader(io.Writer, *blackfriday.Node) {}
func (r *termRenderer) RenderFooter(io.Writer, *blackfriday.Node) {}

func (r *termRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Text:
		if len(node.Literal) > 0 {
			io.WriteString(w, r.inlineStyle().Render(string(node.Literal)))
		}

	case blackfriday.Strong:
		r.strong += delta(entering)
	case blackfriday.Emph:
		r.emph += delta(entering)
	case blackfriday.Del:
		r.del += delta(entering)

	case blackfriday.Code:
		io.WriteString(w, codeStyle.Render(string(node.Literal)))

	case blackfriday.Link:
		r.link += delta(entering)
		if !entering && len(node.LinkData.Destination) > 0 {
			io.WriteString(w, linkDest.Render(" ("+string(node.LinkData.Destination)+")"))
		}

	case blackfriday.Image:
		if entering {
			io.WriteString(w, linkDest.Render("[image] "))
		}

	case blackfriday.Softbreak:
		io.WriteString(w, " ")
	case blackfriday.Hardbreak:
		io.WriteString(w, "\n"+r.indent())

	case blackfriday.Heading:
		if entering {
			r.heading = node.HeadingData.Level
		} else {
			r.heading = 0
			io.WriteString(w, "\n\n")
		}

	case blackfriday.Paragraph:
		if entering {
			if r.quote > 0 {
				io.WriteString(w, quoteStyle.Render("│ "))
			}
			return blackfriday.GoToNext
		}
		io.WriteString(w, "\n")
		if !r.inTightList() {
			io.WriteString(w, "\n")
		}

	case blackfriday.BlockQuote:
		r.quote += delta(entering)

	case blackfriday.List:
		if entering {
			r.lists = append(r.lists, listState{
				ordered: node.ListData.ListFlags&blackfriday.ListTypeOrdered != 0,
				tight:   node.ListData.Tight,
			})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if len(r.lists) == 0 {
				io.WriteString(w, "\n")
			}
		}

	case blackfriday.Item:
		if entering && len(r.lists) > 0 {
			top := &r.lists[len(r.lists)-1]
			top.n++
			bullet := "• "
			if top.ordered {
				bullet = strconv.Itoa(top.n) + ". "
			}
			io.WriteString(w, strings.Repeat("  ", len(r.lists)-1)+bullet)
		}

	case blackfriday.CodeBlock:
		var b bytes.Buffer
		for _, line := range strings.Split(strings.TrimRight(string(node.Literal), "\n"), "\n") {
			b.WriteString("    " + codeStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
		w.Write(b.Bytes())

	case blackfriday.HorizontalRule:
		io.WriteString(w, ruleStyle.Render(strings.Repeat("─", 24))+"\n\n")

	case blackfriday.TableCell:
		if entering && node.Prev != nil {
			io.WriteString(w, ruleStyle.Render(" │ "))
		}
	case blackfriday.TableRow:
		if !entering {
			io.WriteString(w, "\n")
		}
	case blackfriday.Table:
		if !entering {
			io.WriteString(w, "\n")
		}

	case blackfriday.HTMLBlock, blackfriday.HTMLSpan:
		// Dropped: output must stay plain terminal text.
	}
	return blackfriday.GoToNext
}

func (r *termRenderer) inlineStyle() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(theme.Text)
	if r.heading > 0 {
		s = headingStyle
		if r.heading > 2 {
			s = s.Foreground(theme.Secondary)
		}
	}
	if r.quote > 0 {
		s = s.Inherit(quoteStyle)
	}
	if r.strong > 0 {
		s = s.Bold(true)
	}
	if r.emph > 0 {
		s = s.Italic(true)
	}
	if r.del > 0 {
		s = s.Strikethrough(true)
	}
	if r.link > 0 {
		s = s.Underline(true)
	}
	return s
}

func (r *termRenderer) inTightList() bool {
	return len(r.lists) > 0 && r.lists[len(r.lists)-1].tight
}

func (r *termRenderer) indent() string {
	if len(r.lists) == 0 {
		return ""
	}
	return strings.Repeat("  ", len(r.lists))
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}
