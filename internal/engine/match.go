// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine applies line rules to dump text. Match locates and trims
// one segment per rule and returns highlight spans; Collect turns spans
// back into an ordered list of values for export. Both are pure functions
// of their inputs.
package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cleancore/pkg/types"
)

// Two or more consecutive whitespace characters delimit columns.
var columnGap = regexp.MustCompile(`[\s\v\x{85}\p{Z}]{2,}`)

// Segments splits a dump line into whitespace-delimited columns. Edge
// whitespace is trimmed and empty segments are dropped.
func Segments(line string) []string {
	var out []string
	for _, s := range columnGap.Split(line, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Trim removes prefix from the start of segment when it is present, then
// suffix from the end of the remainder when it is present. trimmed reports
// whether the prefix was removed.
func Trim(segment, prefix, suffix string) (value string, trimmed bool) {
	value = segment
	if prefix != "" && strings.HasPrefix(value, prefix) {
		value = value[len(prefix):]
		trimmed = true
	}
	if suffix != "" && strings.HasSuffix(value, suffix) {
		value = value[:len(value)-len(suffix)]
	}
	return value, trimmed
}

// Match runs every rule against lines and returns the resulting spans in
// rule order. Rules that are inert, reference a missing line, or find no
// segment contribute nothing.
//
// The span start is recovered from the first occurrence of the matched
// segment's text in the line, so a segment repeated earlier on the same
// line is highlighted at the earlier position.
func Match(rules []types.Rule, lines []string) []types.Span {
	var spans []types.Span
	for i, r := range rules {
		if span, ok := matchRule(r, lines); ok {
			span.Rule = i
			spans = append(spans, span)
		}
	}
	return spans
}

func matchRule(r types.Rule, lines []string) (types.Span, bool) {
	if r.Inert() || r.Line < 1 || r.Line > len(lines) {
		return types.Span{}, false
	}
	line := lines[r.Line-1]

	var segment string
	for _, s := range Segments(line) {
		if strings.Contains(s, r.Partial) {
			segment = s
			break
		}
	}
	if segment == "" {
		return types.Span{}, false
	}

	value, trimmed := Trim(segment, r.Prefix, r.Suffix)
	if value == "" {
		return types.Span{}, false
	}

	start := utf8.RuneCountInString(line[:strings.Index(line, segment)])
	if trimmed {
		start += utf8.RuneCountInString(r.Prefix)
	}
	return types.Span{
		Line:  r.Line,
		Start: start,
		End:   start + utf8.RuneCountInString(value),
		Text:  value,
	}, true
}
