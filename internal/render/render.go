// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render draws dump text with highlighted spans and rule text with
// flagged lines for a terminal.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/cleancore/pkg/types"
)

// Marker decorates a highlighted or flagged run of text.
type Marker func(string) string

var (
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff00"))
	errorStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#4d1a1a"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#606060"))
)

// Highlight is the marker for matched spans.
func Highlight(s string) string { return highlightStyle.Render(s) }

// Flag is the marker for invalid rule lines.
func Flag(s string) string { return errorStyle.Render(s) }

// Options control dump rendering.
type Options struct {
	// LineNumbers prefixes each line with its 1-based number.
	LineNumbers bool

	// Mark decorates highlighted runs (default Highlight).
	Mark Marker

	// Gutter decorates line numbers (default dim grey).
	Gutter Marker
}

// Dump renders lines with spans marked. Overlapping spans on a line are
// merged into one marked run.
func Dump(lines []string, spans []types.Span, opts Options) string {
	if opts.Mark == nil {
		opts.Mark = Highlight
	}
	if opts.Gutter == nil {
		opts.Gutter = func(s string) string { return gutterStyle.Render(s) }
	}

	byLine := make(map[int][]types.Span)
	for _, s := range spans {
		byLine[s.Line] = append(byLine[s.Line], s)
	}

	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		if opts.LineNumbers {
			b.WriteString(opts.Gutter(fmt.Sprintf("%*d", width, i+1)))
			b.WriteString("  ")
		}
		b.WriteString(markLine(line, byLine[i+1], opts.Mark))
		b.WriteByte('\n')
	}
	return b.String()
}

type run struct{ start, end int }

func markLine(line string, spans []types.Span, mark Marker) string {
	if len(spans) == 0 {
		return line
	}
	runes := []rune(line)

	runs := make([]run, 0, len(spans))
	for _, s := range spans {
		start, end := max(s.Start, 0), min(s.End, len(runes))
		if start < end {
			runs = append(runs, run{start, end})
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].start < runs[j].start })

	var merged []run
	for _, r := range runs {
		if n := len(merged); n > 0 && r.start <= merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, r.end)
			continue
		}
		merged = append(merged, r)
	}

	var b strings.Builder
	pos := 0
	for _, r := range merged {
		b.WriteString(string(runes[pos:r.start]))
		b.WriteString(mark(string(runes[r.start:r.end])))
		pos = r.end
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

// Flagged renders rule text with the given 1-based lines marked.
func Flagged(lines []string, flagged map[int]bool, mark Marker) string {
	if mark == nil {
		mark = Flag
	}
	var b strings.Builder
	for i, line := range lines {
		if flagged[i+1] {
			line = mark(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
