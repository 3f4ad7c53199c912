// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/pdiddy/cleancore/internal/rules"
	"github.com/pdiddy/cleancore/pkg/types"
)

// FileStore keeps the catalog in a single JSON document:
//
//	{"configs": {"<name>": {"entries": [...], "raw_lines": [...]}}}
//
// Object key order is catalog order. Comments are tolerated on load.
type FileStore struct {
	path string
	warn io.Writer
}

// NewFileStore returns a store backed by dataDir/config.json.
func NewFileStore(dataDir string, warn io.Writer) *FileStore {
	if warn == nil {
		warn = io.Discard
	}
	return &FileStore{path: filepath.Join(dataDir, jsonFile), warn: warn}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// storedSet is the on-disk value for one rule set.
type storedSet struct {
	Entries  []types.Rule `json:"entries"`
	RawLines []string     `json:"raw_lines"`
}

// Load reads the catalog. A missing file yields the default catalog
// silently; an unreadable or malformed file yields it with a warning.
func (s *FileStore) Load(ctx context.Context) (*types.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return types.NewCatalog(), nil
	}
	if err != nil {
		fmt.Fprintf(s.warn, "warning: reading %s: %v; using default config\n", s.path, err)
		return types.NewCatalog(), nil
	}

	c, err := decodeCatalog(jsonc.ToJSON(data))
	if err != nil {
		fmt.Fprintf(s.warn, "warning: %s is malformed: %v; using default config\n", s.path, err)
		return types.NewCatalog(), nil
	}
	if len(c.Sets) == 0 {
		return types.NewCatalog(), nil
	}
	return c, nil
}

// Save writes the whole catalog, replacing the file.
func (s *FileStore) Save(ctx context.Context, c *types.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeCatalog(c)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func decodeCatalog(data []byte) (*types.Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	c := &types.Catalog{}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if key != "configs" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		if err := decodeConfigs(dec, c); err != nil {
			return nil, fmt.Errorf("configs: %w", err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return c, nil
}

// decodeConfigs walks the configs object token by token so that key order
// survives.
func decodeConfigs(dec *json.Decoder, c *types.Catalog) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		rs, err := decodeSet(name, raw)
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		if c.Index(name) >= 0 {
			continue
		}
		c.Sets = append(c.Sets, rs)
	}
	return expectDelim(dec, '}')
}

// decodeSet accepts the current object form and the legacy form where a
// config is a bare list of entries.
func decodeSet(name string, raw json.RawMessage) (types.RuleSet, error) {
	rs := types.RuleSet{Name: name}
	var entries []json.RawMessage

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return rs, err
		}
	} else {
		var stored struct {
			Entries  []json.RawMessage `json:"entries"`
			RawLines []string          `json:"raw_lines"`
		}
		if err := json.Unmarshal(raw, &stored); err != nil {
			return rs, err
		}
		entries = stored.Entries
		rs.RawLines = stored.RawLines
	}

	for _, e := range entries {
		if r, ok := decodeEntry(e); ok {
			rs.Entries = append(rs.Entries, r)
		}
	}
	return rs, nil
}

// decodeEntry accepts a rule object or a raw rule line. Lines that do not
// parse are dropped.
func decodeEntry(raw json.RawMessage) (types.Rule, bool) {
	var line string
	if err := json.Unmarshal(raw, &line); err == nil {
		r, err := rules.ParseLine(line)
		return r, err == nil
	}
	r := types.Rule{Line: 1}
	if err := json.Unmarshal(raw, &r); err != nil {
		return types.Rule{}, false
	}
	return r, true
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func encodeCatalog(c *types.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteString(`{"configs":{`)
	for i, rs := range c.Sets {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(rs.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		stored := storedSet{Entries: rs.Entries, RawLines: rs.RawLines}
		if stored.Entries == nil {
			stored.Entries = []types.Rule{}
		}
		if stored.RawLines == nil {
			stored.RawLines = []string{}
		}
		if err := enc.Encode(stored); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
