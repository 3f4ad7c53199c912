// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules parses and renders the editable rule text format:
//
//	<line>; "<partial>"; "<prefix>"; "<suffix>"
//
// Prefix and suffix are optional. Lines starting with '#' are comments;
// the reserved comment "## \n" is a blank-line separator for extraction.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/cleancore/pkg/types"
)

// CommentMarker starts a comment line.
const CommentMarker = "#"

// SeparatorToken is the reserved comment that inserts a blank value during
// exact extraction.
const SeparatorToken = `## \n`

// ws matches any Unicode space, including no-break and other separators
// that pasted text often carries.
const ws = `[\s\v\x{85}\p{Z}]*`

var ruleLine = regexp.MustCompile(strings.NewReplacer("~", ws).Replace(
	`^~(\d+)~;~"([^"]*)"(?:~;~"([^"]*)")?(?:~;~"([^"]*)")?~$`))

var (
	// ErrSyntax marks a line that is neither a rule, a comment, nor blank.
	ErrSyntax = errors.New(`expected: line; "partial"; "prefix"; "suffix"`)

	// ErrLineNumber marks a rule whose line number is not a positive integer.
	ErrLineNumber = errors.New("line number must be a positive integer")
)

// Kind classifies one line of rule text.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindSeparator
	KindRule
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindSeparator:
		return "separator"
	case KindRule:
		return "rule"
	default:
		return "invalid"
	}
}

// ParseLine parses a single rule line. Prefix and suffix are trimmed of
// surrounding whitespace; the partial is kept verbatim.
func ParseLine(text string) (types.Rule, error) {
	m := ruleLine.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return types.Rule{}, ErrSyntax
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return types.Rule{}, fmt.Errorf("%w: %q", ErrLineNumber, m[1])
	}
	return types.Rule{
		Line:    n,
		Partial: m[2],
		Prefix:  strings.TrimSpace(m[3]),
		Suffix:  strings.TrimSpace(m[4]),
		Raw:     text,
	}, nil
}

// IsSeparator reports whether text is the blank-line separator comment.
func IsSeparator(text string) bool {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "##") {
		return false
	}
	return strings.TrimSpace(s[2:]) == `\n`
}

// Classify determines what kind of line text is. For KindRule the parsed
// rule is returned; for KindInvalid the parse error.
func Classify(text string) (Kind, types.Rule, error) {
	s := strings.TrimSpace(text)
	switch {
	case s == "":
		return KindBlank, types.Rule{}, nil
	case IsSeparator(s):
		return KindSeparator, types.Rule{}, nil
	case strings.HasPrefix(s, CommentMarker):
		return KindComment, types.Rule{}, nil
	}
	r, err := ParseLine(text)
	if err != nil {
		return KindInvalid, types.Rule{}, err
	}
	return KindRule, r, nil
}

// Serialize renders a rule as an editable line. Empty prefix and suffix
// are omitted; an empty prefix is kept as "" when a suffix follows it.
func Serialize(r types.Rule) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Line))
	writeQuoted(&b, r.Partial)
	if r.Prefix != "" || r.Suffix != "" {
		writeQuoted(&b, r.Prefix)
	}
	if r.Suffix != "" {
		writeQuoted(&b, r.Suffix)
	}
	return b.String()
}

// The format has no escapes, so values are written between quotes as-is.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteString(`; "`)
	b.WriteString(s)
	b.WriteByte('"')
}
