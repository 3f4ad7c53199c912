// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the catalog of rule sets. Two backends share the
// Store interface: a JSON document (config.json) and a SQLite database
// (cleancore.db). Unreadable or malformed data never aborts a load: the
// store warns and returns a catalog holding only an empty default rule
// set, leaving the stored data untouched.
package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/cleancore/pkg/types"
)

const (
	jsonFile = "config.json"
	dbFile   = "cleancore.db"
)

// Store loads and saves a catalog. Save replaces everything stored.
type Store interface {
	Load(ctx context.Context) (*types.Catalog, error)
	Save(ctx context.Context, c *types.Catalog) error
	Close() error
}

// Open creates the data directory and returns the configured backend.
// Warnings about unreadable data are written to warn.
func Open(cfg types.StoreConfig, warn io.Writer) (Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	switch cfg.Backend {
	case types.BackendJSON, "":
		return NewFileStore(cfg.DataDir, warn), nil
	case types.BackendSQLite:
		return NewSQLStore(cfg.DataDir, cfg.SQLiteDriver, warn)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use json or sqlite", cfg.Backend)
	}
}
