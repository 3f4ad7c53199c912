// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cleancore/pkg/types"
)

func ruleSteps(rules ...types.Rule) []types.Step {
	steps := make([]types.Step, len(rules))
	for i, r := range rules {
		steps[i] = types.Step{Rule: r}
	}
	return steps
}

var separator = types.Step{Separator: true}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    types.CollectMode
		wantErr bool
	}{
		{"", types.ModeExact, false},
		{"exact", types.ModeExact, false},
		{"Exact-Cardinality", types.ModeExact, false},
		{"dedup", types.ModeDedup, false},
		{" deduplicated ", types.ModeDedup, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCollectExactOnePerRule(t *testing.T) {
	rules := []types.Rule{
		{Line: 2, Partial: "b"},
		{Line: 1, Partial: "a"},
		{Line: 3, Partial: "c"},
	}
	lines := []string{"x  a1", "b2  y", "z  c3"}
	res := Collect(ruleSteps(rules...), Match(rules, lines), types.ModeExact)

	assert.Equal(t, []string{"b2", "a1", "c3"}, res.Values)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "b2\na1\nc3", res.Text())
}

func TestCollectExactSameLineConsumesInOrder(t *testing.T) {
	rules := []types.Rule{
		{Line: 3, Partial: "val"},
		{Line: 3, Partial: "val"},
	}
	lines := []string{"", "", "val1  val2"}
	spans := Match(rules, lines)
	require.Len(t, spans, 2)

	res := Collect(ruleSteps(rules...), spans, types.ModeExact)
	assert.Equal(t, []string{"val1", "val1"}, res.Values)
}

func TestCollectExactTieBreaksByStart(t *testing.T) {
	spans := []types.Span{
		{Line: 1, Start: 10, End: 12, Text: "second"},
		{Line: 1, Start: 2, End: 4, Text: "first"},
	}
	steps := ruleSteps(types.Rule{Line: 1, Partial: "x"}, types.Rule{Line: 1, Partial: "y"}, types.Rule{Line: 1, Partial: "z"})
	res := Collect(steps, spans, types.ModeExact)
	assert.Equal(t, []string{"first", "second"}, res.Values)
	assert.Equal(t, 2, res.Count)
}

func TestCollectExactSeparatorsAndInertRules(t *testing.T) {
	spans := []types.Span{
		{Line: 1, Start: 0, End: 1, Text: "a"},
		{Line: 2, Start: 0, End: 1, Text: "b"},
	}
	steps := []types.Step{
		{Rule: types.Rule{Line: 1, Partial: "a"}},
		separator,
		{Rule: types.Rule{Line: 2}},
		{Rule: types.Rule{Line: 2, Partial: "b"}},
		{Rule: types.Rule{Line: 4, Partial: "missing"}},
		separator,
	}
	res := Collect(steps, spans, types.ModeExact)
	assert.Equal(t, []string{"a", "", "b", ""}, res.Values)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "a\n\nb\n", res.Text())
}

func TestCollectDedup(t *testing.T) {
	spans := []types.Span{
		{Line: 2, Start: 0, Text: "beta"},
		{Line: 1, Start: 5, Text: "alpha"},
		{Line: 1, Start: 0, Text: "beta"},
		{Line: 3, Start: 0, Text: "alpha"},
		{Line: 3, Start: 9, Text: "gamma"},
	}
	res := Collect([]types.Step{separator}, spans, types.ModeDedup)
	assert.Equal(t, []string{"beta", "alpha", "gamma"}, res.Values)
	assert.Equal(t, 3, res.Count)
}

func TestCollectDropsBlankSpanText(t *testing.T) {
	spans := []types.Span{{Line: 1, Text: "   "}, {Line: 1, Start: 4, Text: " v "}}
	res := Collect(ruleSteps(types.Rule{Line: 1, Partial: "v"}), spans, types.ModeExact)
	assert.Equal(t, []string{"v"}, res.Values)
}

func TestCollectNothing(t *testing.T) {
	res := Collect(ruleSteps(types.Rule{Line: 1, Partial: "a"}), nil, types.ModeExact)
	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, "", res.Text())
}
