// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog implements the create, rename, delete and replace
// operations on a catalog of named rule sets. The default rule set is
// protected: it is never renamed or deleted.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/cleancore/internal/rules"
	"github.com/pdiddy/cleancore/pkg/types"
)

var (
	ErrEmptyName  = errors.New("name cannot be empty")
	ErrExists     = errors.New("config already exists")
	ErrNotFound   = errors.New("config not found")
	ErrProtected  = errors.New(`"default" config is protected`)
	ErrLastConfig = errors.New("cannot delete the last config")
)

// Normalize makes sure the catalog holds a default rule set, inserting an
// empty one first when it is missing.
func Normalize(c *types.Catalog) {
	if c.Index(types.DefaultRuleSet) >= 0 {
		return
	}
	c.Sets = slices.Insert(c.Sets, 0, types.RuleSet{Name: types.DefaultRuleSet})
}

// Add appends a new rule set seeded with the editing template.
func Add(c *types.Catalog, name string, now time.Time) (*types.RuleSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if c.Index(name) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}
	c.Sets = append(c.Sets, types.RuleSet{
		Name:     name,
		RawLines: rules.Template(name, now),
	})
	return &c.Sets[len(c.Sets)-1], nil
}

// Rename changes a rule set's name in place, keeping its position, and
// returns the name applied. Renaming to the current name is a no-op.
func Rename(c *types.Catalog, oldName, newName string) (string, error) {
	if oldName == types.DefaultRuleSet {
		return "", ErrProtected
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", ErrEmptyName
	}
	i := c.Index(oldName)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}
	if newName == oldName {
		return oldName, nil
	}
	if c.Index(newName) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrExists, newName)
	}
	c.Sets[i].Name = newName
	return newName, nil
}

// Delete removes a rule set. The default rule set cannot be deleted, and
// the catalog never ends up empty.
func Delete(c *types.Catalog, name string) error {
	if name == types.DefaultRuleSet {
		if len(c.Sets) == 1 {
			return ErrLastConfig
		}
		return ErrProtected
	}
	i := c.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c.Sets = slices.Delete(c.Sets, i, i+1)
	if len(c.Sets) == 0 {
		c.Sets = append(c.Sets, types.RuleSet{Name: types.DefaultRuleSet})
	}
	return nil
}

// Put replaces the rule set with the same name, or appends it.
func Put(c *types.Catalog, rs types.RuleSet) {
	if i := c.Index(rs.Name); i >= 0 {
		c.Sets[i] = rs
		return
	}
	c.Sets = append(c.Sets, rs)
}
