// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for cleancore: rules, rule
// sets, the catalog of named rule sets, highlight spans, and settings.
package types

// DefaultRuleSet is the name of the rule set that always exists.
const DefaultRuleSet = "default"

// Rule is a single line-targeted match and trim instruction.
type Rule struct {
	// Line is the 1-based dump line the rule scans.
	Line int `json:"line" yaml:"line"`

	// Partial is the substring a candidate segment must contain. An empty
	// partial makes the rule inert.
	Partial string `json:"partial" yaml:"partial"`

	// Prefix is trimmed from the start of the matched segment when present.
	Prefix string `json:"prefix" yaml:"prefix"`

	// Suffix is trimmed from the end of the prefix-trimmed segment when present.
	Suffix string `json:"suffix" yaml:"suffix"`

	// Raw is the editable line the rule was parsed from, if any.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Inert reports whether the rule can never match.
func (r Rule) Inert() bool {
	return r.Partial == ""
}

// Step is one collect-pass instruction: a rule, or a blank-line separator
// that forces an empty value into the output.
type Step struct {
	Separator bool
	Rule      Rule
}

// RuleSet is a named, ordered collection of rules. RawLines keeps the
// editable text (comments, separators, formatting) across reloads.
type RuleSet struct {
	Name     string   `json:"name" yaml:"name"`
	Entries  []Rule   `json:"entries" yaml:"entries"`
	RawLines []string `json:"raw_lines" yaml:"raw_lines"`
}

// Catalog is the ordered set of named rule sets. Names are unique.
type Catalog struct {
	Sets []RuleSet `json:"configs" yaml:"configs"`
}

// Index returns the position of the named rule set, or -1.
func (c *Catalog) Index(name string) int {
	for i := range c.Sets {
		if c.Sets[i].Name == name {
			return i
		}
	}
	return -1
}

// Get returns the named rule set, or nil when it does not exist.
func (c *Catalog) Get(name string) *RuleSet {
	if i := c.Index(name); i >= 0 {
		return &c.Sets[i]
	}
	return nil
}

// Names lists rule set names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Sets))
	for i, s := range c.Sets {
		names[i] = s.Name
	}
	return names
}

// NewCatalog returns a catalog holding only an empty default rule set.
func NewCatalog() *Catalog {
	return &Catalog{Sets: []RuleSet{{Name: DefaultRuleSet}}}
}

// Span is a highlighted range on one dump line, produced by a match pass.
// Start and End are character (code point) offsets; End is exclusive.
type Span struct {
	Line  int    `json:"line" yaml:"line"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`

	// Rule is the index of the producing rule in the executed rule list.
	Rule int `json:"rule" yaml:"rule"`
}

// CollectMode selects the collect-pass output policy.
type CollectMode string

const (
	// ModeExact emits at most one value per rule, in rule order, with
	// separators honoured.
	ModeExact CollectMode = "exact"

	// ModeDedup emits each distinct matched value once, in first-seen order.
	ModeDedup CollectMode = "dedup"
)
