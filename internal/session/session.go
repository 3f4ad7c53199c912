// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state of one editing session: the catalog, the
// current rule set, the dump text and the spans of the last execution.
// Each user action is a method; rule matching and collection are delegated
// to the engine, and every catalog change is persisted before returning.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/cleancore/internal/catalog"
	"github.com/pdiddy/cleancore/internal/engine"
	"github.com/pdiddy/cleancore/internal/rules"
	"github.com/pdiddy/cleancore/internal/store"
	"github.com/pdiddy/cleancore/pkg/types"
)

// ErrNothingToExtract reports an extraction with no highlighted text. It is
// informational, not a failure.
var ErrNothingToExtract = errors.New("no highlighted text found")

// Session is owned by the UI layer and is not safe for concurrent use.
type Session struct {
	store    store.Store
	catalog  *types.Catalog
	current  string
	settings types.UserSettings

	dump  []string
	spans []types.Span

	// Now is the clock used for generated headers.
	Now func() time.Time
}

// New loads the catalog from st and selects the rule set remembered in
// settings, or the first one.
func New(ctx context.Context, st store.Store, settings types.UserSettings) (*Session, error) {
	c, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	catalog.Normalize(c)

	s := &Session{
		store:    st,
		catalog:  c,
		settings: settings,
		Now:      time.Now,
	}
	if c.Index(settings.CurrentConfig) >= 0 {
		s.current = settings.CurrentConfig
	} else {
		s.current = c.Sets[0].Name
	}
	return s, nil
}

// Names lists rule set names in catalog order.
func (s *Session) Names() []string { return s.catalog.Names() }

// Catalog returns a copy of the catalog.
func (s *Session) Catalog() *types.Catalog {
	out := &types.Catalog{Sets: make([]types.RuleSet, len(s.catalog.Sets))}
	copy(out.Sets, s.catalog.Sets)
	return out
}

// CurrentName returns the name of the selected rule set.
func (s *Session) CurrentName() string { return s.current }

// Current returns the selected rule set.
func (s *Session) Current() types.RuleSet {
	if rs := s.catalog.Get(s.current); rs != nil {
		return *rs
	}
	return types.RuleSet{Name: s.current}
}

// Get returns the named rule set.
func (s *Session) Get(name string) (types.RuleSet, error) {
	rs := s.catalog.Get(name)
	if rs == nil {
		return types.RuleSet{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, name)
	}
	return *rs, nil
}

// Select makes name the current rule set. Spans of the previous rule set
// are discarded.
func (s *Session) Select(name string) error {
	if s.catalog.Index(name) < 0 {
		return fmt.Errorf("%w: %q", catalog.ErrNotFound, name)
	}
	s.current = name
	s.spans = nil
	return nil
}

// Add creates a rule set from the editing template and selects it.
func (s *Session) Add(ctx context.Context, name string) (types.RuleSet, error) {
	rs, err := catalog.Add(s.catalog, name, s.Now())
	if err != nil {
		return types.RuleSet{}, err
	}
	created := *rs
	s.current = created.Name
	s.spans = nil
	return created, s.persist(ctx)
}

// Rename renames the current rule set.
func (s *Session) Rename(ctx context.Context, newName string) error {
	name, err := catalog.Rename(s.catalog, s.current, newName)
	if err != nil {
		return err
	}
	s.current = name
	return s.persist(ctx)
}

// Delete removes the current rule set and selects the first remaining one.
// It returns the removed name.
func (s *Session) Delete(ctx context.Context) (string, error) {
	name := s.current
	if err := catalog.Delete(s.catalog, name); err != nil {
		return "", err
	}
	s.current = s.catalog.Sets[0].Name
	s.spans = nil
	return name, s.persist(ctx)
}

// Text returns the editable text of the current rule set.
func (s *Session) Text() string {
	return rules.Render(s.Current(), s.Now())
}

// Validate reports invalid lines of rule text without changing anything.
func (s *Session) Validate(text string) []rules.Issue {
	return rules.Parse(text).Issues()
}

// SaveText parses text and stores it as the current rule set. Invalid lines
// are kept in the raw text but excluded from the stored rules.
func (s *Session) SaveText(ctx context.Context, text string) (rules.Document, error) {
	doc := rules.Parse(text)
	catalog.Put(s.catalog, doc.ToRuleSet(s.current))
	s.spans = nil
	return doc, s.persist(ctx)
}

// Import merges every rule set of c into the catalog, replacing rule sets
// with the same name. It returns the number of rule sets imported.
func (s *Session) Import(ctx context.Context, c *types.Catalog) (int, error) {
	for _, rs := range c.Sets {
		catalog.Put(s.catalog, rs)
	}
	return len(c.Sets), s.persist(ctx)
}

// SetDump replaces the dump text and discards spans from earlier runs.
func (s *Session) SetDump(text string) {
	s.dump = rules.SplitLines(text)
	s.spans = nil
}

// Dump returns the dump lines.
func (s *Session) Dump() []string { return s.dump }

// Spans returns the spans of the last execution.
func (s *Session) Spans() []types.Span { return s.spans }

// Execute matches the current rule set against the dump text.
func (s *Session) Execute() []types.Span {
	s.spans = engine.Match(rules.Effective(s.Current()), s.dump)
	return s.spans
}

// SaveAndExecute stores text as the current rule set, then executes it.
func (s *Session) SaveAndExecute(ctx context.Context, text string) (rules.Document, []types.Span, error) {
	doc, err := s.SaveText(ctx, text)
	if err != nil {
		return doc, nil, err
	}
	return doc, s.Execute(), nil
}

// Extract collects the spans of the last execution. With no spans it
// returns ErrNothingToExtract.
func (s *Session) Extract(mode types.CollectMode) (engine.Result, error) {
	if len(s.spans) == 0 {
		return engine.Result{}, ErrNothingToExtract
	}
	res := engine.Collect(rules.Steps(s.Current()), s.spans, mode)
	if res.Empty() {
		return res, ErrNothingToExtract
	}
	return res, nil
}

// ChangeFont adjusts the font size by delta within bounds and returns it.
func (s *Session) ChangeFont(delta int) int {
	s.settings.FontSize = types.ClampFontSize(s.settings.FontSize + delta)
	return s.settings.FontSize
}

// Settings returns the session settings with the current selection.
func (s *Session) Settings() types.UserSettings {
	out := s.settings
	out.CurrentConfig = s.current
	return out
}

func (s *Session) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.catalog); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}
