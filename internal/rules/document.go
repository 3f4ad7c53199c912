// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/cleancore/pkg/types"
)

const stampFormat = "02.01.2006 15:04"

// Line is one classified line of rule text.
type Line struct {
	// Number is the 1-based line number within the text.
	Number int
	Text   string
	Kind   Kind
	Rule   types.Rule
	Err    error
}

// Document is parsed rule text. Invalid lines are kept so they can be
// flagged, but never contribute rules.
type Document struct {
	Lines []Line
}

// Issue describes an invalid rule line.
type Issue struct {
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
	Err  string `json:"error" yaml:"error"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s (%s)", i.Line, i.Err, strings.TrimSpace(i.Text))
}

// Parse classifies every line of text.
func Parse(text string) Document {
	return ParseLines(SplitLines(text))
}

// ParseLines classifies raw lines.
func ParseLines(lines []string) Document {
	doc := Document{Lines: make([]Line, len(lines))}
	for i, text := range lines {
		kind, rule, err := Classify(text)
		doc.Lines[i] = Line{Number: i + 1, Text: text, Kind: kind, Rule: rule, Err: err}
	}
	return doc
}

// Rules returns the valid rules in order, including inert ones.
func (d Document) Rules() []types.Rule {
	var out []types.Rule
	for _, l := range d.Lines {
		if l.Kind == KindRule {
			out = append(out, l.Rule)
		}
	}
	return out
}

// Steps returns rules and separators in order for the collect pass.
func (d Document) Steps() []types.Step {
	var out []types.Step
	for _, l := range d.Lines {
		switch l.Kind {
		case KindRule:
			out = append(out, types.Step{Rule: l.Rule})
		case KindSeparator:
			out = append(out, types.Step{Separator: true})
		}
	}
	return out
}

// Issues lists invalid lines.
func (d Document) Issues() []Issue {
	var out []Issue
	for _, l := range d.Lines {
		if l.Kind == KindInvalid {
			out = append(out, Issue{Line: l.Number, Text: l.Text, Err: l.Err.Error()})
		}
	}
	return out
}

// Raw returns the original lines.
func (d Document) Raw() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Text
	}
	return out
}

// SplitLines splits text on \n, \r\n or \r. A trailing line break does not
// produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// ToRuleSet builds the stored form of a parsed document.
func (d Document) ToRuleSet(name string) types.RuleSet {
	return types.RuleSet{Name: name, Entries: d.Rules(), RawLines: d.Raw()}
}

// Steps returns the collect steps of a stored rule set. Raw lines win when
// present because only they carry separators.
func Steps(rs types.RuleSet) []types.Step {
	if len(rs.RawLines) > 0 {
		return ParseLines(rs.RawLines).Steps()
	}
	out := make([]types.Step, len(rs.Entries))
	for i, r := range rs.Entries {
		out[i] = types.Step{Rule: r}
	}
	return out
}

// Effective returns the rules a stored rule set executes.
func Effective(rs types.RuleSet) []types.Rule {
	if len(rs.RawLines) > 0 {
		return ParseLines(rs.RawLines).Rules()
	}
	return rs.Entries
}

// Render regenerates editable text for a rule set. Raw lines are returned
// verbatim; otherwise a header is written followed by serialized entries.
func Render(rs types.RuleSet, now time.Time) string {
	if len(rs.RawLines) > 0 {
		return strings.Join(rs.RawLines, "\n")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## === %s ===\n", upper(rs.Name))
	fmt.Fprintf(&b, "## %s\n\n", now.Format(stampFormat))
	for _, r := range rs.Entries {
		b.WriteString(Serialize(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// Template returns the initial raw lines of a new rule set.
func Template(name string, now time.Time) []string {
	return []string{
		fmt.Sprintf("## === %s ===", upper(name)),
		fmt.Sprintf("## Created %s", now.Format(stampFormat)),
		`## line; "partial"; "prefix_to_cut"; "suffix_to_cut"`,
		`## Use ` + SeparatorToken + ` for blank line in extract`,
		"",
	}
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
