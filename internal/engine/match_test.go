// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cleancore/pkg/types"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"padded columns", "  foo   BAR123   baz  ", []string{"foo", "BAR123", "baz"}},
		{"single spaces stay inside a segment", "first name  last name", []string{"first name", "last name"}},
		{"tabs delimit", "a\t\tb \tc", []string{"a", "b", "c"}},
		{"single tab does not delimit", "a\tb", []string{"a\tb"}},
		{"no-break spaces delimit", "a\u00a0\u00a0b", []string{"a", "b"}},
		{"blank", "    ", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.line))
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name, seg, prefix, suffix string
		want                      string
		trimmed                   bool
	}{
		{"both", "ID_X42_Z", "ID_", "_Z", "X42", true},
		{"prefix absent leaves value", "X42_Z", "ID_", "", "X42_Z", false},
		{"suffix checked after prefix", "ID_Z", "ID_", "ID_Z", "Z", true},
		{"prefix elsewhere is not trimmed", "aID_b", "ID_", "", "aID_b", false},
		{"everything trimmed", "ID__Z", "ID_", "_Z", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, trimmed := Trim(tt.seg, tt.prefix, tt.suffix)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.trimmed, trimmed)
		})
	}
}

func TestMatchSingleRule(t *testing.T) {
	lines := []string{"  foo   BAR123   baz  "}
	spans := Match([]types.Rule{{Line: 1, Partial: "BAR"}}, lines)

	require.Len(t, spans, 1)
	assert.Equal(t, types.Span{Line: 1, Start: 8, End: 14, Text: "BAR123", Rule: 0}, spans[0])
	assert.Equal(t, "BAR123", lines[0][spans[0].Start:spans[0].End])
}

func TestMatchPrefixSuffix(t *testing.T) {
	lines := []string{"header", "name  ID_X42_Z  other"}
	spans := Match([]types.Rule{{Line: 2, Partial: "X", Prefix: "ID_", Suffix: "_Z"}}, lines)

	require.Len(t, spans, 1)
	assert.Equal(t, "X42", spans[0].Text)
	assert.Equal(t, 2, spans[0].Line)
	assert.Equal(t, "X42", lines[1][spans[0].Start:spans[0].End])
}

func TestMatchPrefixMismatchKeepsSegment(t *testing.T) {
	spans := Match([]types.Rule{{Line: 1, Partial: "42", Prefix: "NO_"}}, []string{"x  ID_42  y"})
	require.Len(t, spans, 1)
	assert.Equal(t, "ID_42", spans[0].Text)
	assert.Equal(t, 3, spans[0].Start)
}

func TestMatchSkips(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "alpha  beta"
	}
	tests := []struct {
		name string
		rule types.Rule
	}{
		{"line beyond dump", types.Rule{Line: 50, Partial: "alpha"}},
		{"line zero", types.Rule{Line: 0, Partial: "alpha"}},
		{"empty partial", types.Rule{Line: 1}},
		{"no segment contains partial", types.Rule{Line: 1, Partial: "gamma"}},
		{"partial spans a column gap", types.Rule{Line: 1, Partial: "alpha  beta"}},
		{"trimmed to nothing", types.Rule{Line: 1, Partial: "beta", Prefix: "be", Suffix: "ta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Match([]types.Rule{tt.rule}, lines))
		})
	}
}

func TestMatchFirstSegmentWins(t *testing.T) {
	spans := Match([]types.Rule{{Line: 1, Partial: "val"}}, []string{"val1  val2"})
	require.Len(t, spans, 1)
	assert.Equal(t, "val1", spans[0].Text)
}

func TestMatchEmptyTrimDoesNotFallThrough(t *testing.T) {
	// The first segment containing the partial is the match even when
	// trimming empties it.
	spans := Match([]types.Rule{{Line: 1, Partial: "k", Prefix: "k"}}, []string{"k  kv"})
	assert.Empty(t, spans)
}

func TestMatchOffsetFromFirstOccurrence(t *testing.T) {
	line := "abc-xyz  key  abc-xyz"
	spans := Match([]types.Rule{{Line: 1, Partial: "xyz", Prefix: "abc-"}}, []string{line})
	require.Len(t, spans, 1)
	assert.Equal(t, 4, spans[0].Start)
	assert.Equal(t, 7, spans[0].End)
}

func TestMatchCharacterOffsets(t *testing.T) {
	line := "café  Ünïcode  end"
	spans := Match([]types.Rule{{Line: 1, Partial: "code", Prefix: "Ün"}}, []string{line})
	require.Len(t, spans, 1)
	assert.Equal(t, "ïcode", spans[0].Text)
	assert.Equal(t, 8, spans[0].Start)
	assert.Equal(t, 13, spans[0].End)
	assert.Equal(t, "ïcode", string([]rune(line)[spans[0].Start:spans[0].End]))
}

func TestMatchAdditiveAndRuleIndex(t *testing.T) {
	rules := []types.Rule{
		{Line: 1, Partial: "val"},
		{Line: 9, Partial: "val"},
		{Line: 1, Partial: "al"},
		{Line: 2, Partial: "b"},
	}
	spans := Match(rules, []string{"val1  val2", "a  b"})
	require.Len(t, spans, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{spans[0].Rule, spans[1].Rule, spans[2].Rule})
	// Overlapping spans are kept as-is.
	assert.Equal(t, spans[0].Start, spans[1].Start)
}
