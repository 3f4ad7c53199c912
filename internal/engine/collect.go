// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/cleancore/pkg/types"
)

// Result is the output of a collect pass.
type Result struct {
	Values []string `json:"values" yaml:"values"`

	// Count is the number of non-empty values.
	Count int `json:"count" yaml:"count"`
}

// Text joins the values with newlines for the clipboard.
func (r Result) Text() string {
	return strings.Join(r.Values, "\n")
}

// Empty reports whether nothing was collected.
func (r Result) Empty() bool {
	return len(r.Values) == 0
}

// ParseMode resolves a collect mode name.
func ParseMode(s string) (types.CollectMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "exact-cardinality":
		return types.ModeExact, nil
	case "dedup", "deduplicated":
		return types.ModeDedup, nil
	}
	return "", fmt.Errorf("unknown collect mode %q: use exact or dedup", s)
}

// Collect turns spans into ordered values. ModeDedup emits each distinct
// span text once in (line, start) order; any other mode is exact: one value
// per rule step taken from the first unconsumed span on the rule's line,
// and an empty value per separator step.
func Collect(steps []types.Step, spans []types.Span, mode types.CollectMode) Result {
	ordered := sortSpans(spans)

	var values []string
	if mode == types.ModeDedup {
		values = dedup(ordered)
	} else {
		values = exact(steps, ordered)
	}

	res := Result{Values: values}
	for _, v := range values {
		if v != "" {
			res.Count++
		}
	}
	return res
}

// sortSpans orders spans by line then start offset. Spans whose text is
// only whitespace are dropped.
func sortSpans(spans []types.Span) []types.Span {
	out := make([]types.Span, 0, len(spans))
	for _, s := range spans {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text != "" {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Start < out[j].Start
	})
	return out
}

func exact(steps []types.Step, spans []types.Span) []string {
	var values []string
	used := make([]bool, len(spans))
	for _, st := range steps {
		if st.Separator {
			values = append(values, "")
			continue
		}
		if st.Rule.Inert() {
			continue
		}
		for i, s := range spans {
			if !used[i] && s.Line == st.Rule.Line {
				used[i] = true
				values = append(values, s.Text)
				break
			}
		}
	}
	return values
}

func dedup(spans []types.Span) []string {
	var values []string
	seen := make(map[string]bool, len(spans))
	for _, s := range spans {
		if seen[s.Text] {
			continue
		}
		seen[s.Text] = true
		values = append(values, s.Text)
	}
	return values
}
