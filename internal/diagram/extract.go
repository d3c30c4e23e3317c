// Package diagram isolates an embedded mermaid diagram from card text and
// renders it through an external service.
package diagram

import "strings"

// Fence markers delimiting a diagram block.
const (
	FenceOpen  = "```mermaid"
	FenceClose = "```"
)

// Block is the result of scanning a text for a diagram.
type Block struct {
	// Prose is the text with the first diagram block removed, or the whole
	// text when there is none.
	Prose string
	// Source is the normalized diagram source.
	Source string
	// Raw is the fenced block exactly as it appeared.
	Raw   string
	Found bool
}

// Extract finds the first fenced diagram block in text. An opener without a
// closing fence does not count as a block.
func Extract(text string) Block {
	start := strings.Index(text, FenceOpen)
	if start < 0 {
		return Block{Prose: text}
	}
	innerStart := start + len(FenceOpen)
	end := strings.Index(text[innerStart:], FenceClose)
	if end < 0 {
		return Block{Prose: text}
	}
	innerEnd := innerStart + end
	blockEnd := innerEnd + len(FenceClose)

	return Block{
		Prose:  text[:start] + text[blockEnd:],
		Source: Normalize(text[innerStart:innerEnd]),
		Raw:    text[start:blockEnd],
		Found:  true,
	}
}

// Normalize trims the source and strips surrounding whitespace from every
// line. Indentation carries no meaning in flowchart sources but confuses the
// mermaid parser when the block is nested in markdown.
func Normalize(src string) string {
	lines := strings.Split(strings.TrimSpace(src), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
