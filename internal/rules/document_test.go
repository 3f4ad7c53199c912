// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cleancore/pkg/types"
)

const sampleText = `## === INVOICES ===
# comment

1; "INV"; "INV-"
## \n
2; "total"
bogus line
3; ""
`

func TestParseDocument(t *testing.T) {
	doc := Parse(sampleText)
	require.Len(t, doc.Lines, 8)

	rules := doc.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "INV", rules[0].Partial)
	assert.Equal(t, "INV-", rules[0].Prefix)
	assert.True(t, rules[2].Inert())

	steps := doc.Steps()
	require.Len(t, steps, 4)
	assert.False(t, steps[0].Separator)
	assert.True(t, steps[1].Separator)
	assert.Equal(t, 2, steps[2].Rule.Line)

	issues := doc.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, 7, issues[0].Line)
	assert.Equal(t, "bogus line", issues[0].Text)
	assert.Contains(t, issues[0].String(), "line 7")
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.in), "%q", tt.in)
	}
}

func TestStepsPreferRawLines(t *testing.T) {
	rs := Parse(sampleText).ToRuleSet("invoices")
	assert.Len(t, Steps(rs), 4)
	assert.Len(t, Effective(rs), 3)

	rs.RawLines = nil
	steps := Steps(rs)
	require.Len(t, steps, 3)
	for _, s := range steps {
		assert.False(t, s.Separator)
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2025, 11, 21, 9, 30, 0, 0, time.UTC)

	withRaw := types.RuleSet{Name: "x", RawLines: []string{"# keep", `1; "a"`}}
	assert.Equal(t, "# keep\n1; \"a\"", Render(withRaw, now))

	entries := types.RuleSet{Name: "Straße", Entries: []types.Rule{
		{Line: 1, Partial: "a"},
		{Line: 2, Partial: "b", Suffix: "s"},
	}}
	got := Render(entries, now)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "## === STRASSE ===", lines[0])
	assert.Equal(t, "## 21.11.2025 09:30", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, `1; "a"`, lines[3])
	assert.Equal(t, `2; "b"; ""; "s"`, lines[4])

	reparsed := Parse(got).Rules()
	require.Len(t, reparsed, 2)
	assert.Equal(t, "s", reparsed[1].Suffix)
}

func TestTemplateHasNoRules(t *testing.T) {
	doc := ParseLines(Template("new", time.Now()))
	assert.Empty(t, doc.Rules())
	assert.Empty(t, doc.Steps())
	assert.Empty(t, doc.Issues())
	assert.Equal(t, "## === NEW ===", doc.Lines[0].Text)
}
