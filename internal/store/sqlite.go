// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/pdiddy/cleancore/pkg/types"
)

// Driver names accepted for the sqlite backend.
const (
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// SQLStore keeps the catalog in a SQLite database with one row per rule
// set and one row per rule.
type SQLStore struct {
	db   *sql.DB
	path string
	warn io.Writer

	// schemaErr is set when the database could not be initialised, e.g.
	// because the file is not a SQLite database. Loads then fall back to
	// the default catalog and saves fail.
	schemaErr error
}

// NewSQLStore opens or creates dataDir/cleancore.db using driver (default
// DriverCgo).
func NewSQLStore(dataDir, driver string, warn io.Writer) (*SQLStore, error) {
	if driver == "" {
		driver = DriverCgo
	}
	if warn == nil {
		warn = io.Discard
	}
	path := filepath.Join(dataDir, dbFile)

	var dsn string
	switch driver {
	case DriverCgo:
		dsn = path + "?_journal_mode=WAL&_foreign_keys=on"
	case DriverPure:
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	default:
		return nil, fmt.Errorf("unsupported sqlite driver %q: use %s or %s", driver, DriverCgo, DriverPure)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLStore{db: db, path: path, warn: warn}
	if err := s.createSchema(); err != nil {
		s.schemaErr = fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file.
func (s *SQLStore) Path() string { return s.path }

// Close releases the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rule_sets (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			raw_lines TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS rules (
			rule_set TEXT NOT NULL REFERENCES rule_sets(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			line INTEGER NOT NULL,
			partial TEXT NOT NULL,
			prefix TEXT NOT NULL DEFAULT '',
			suffix TEXT NOT NULL DEFAULT '',
			raw TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (rule_set, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load reads the catalog in stored order. Database errors and malformed
// rows yield the default catalog with a warning.
func (s *SQLStore) Load(ctx context.Context) (*types.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.schemaErr != nil {
		fmt.Fprintf(s.warn, "warning: %s: %v; using default config\n", s.path, s.schemaErr)
		return types.NewCatalog(), nil
	}
	c, err := s.load(ctx)
	if err != nil {
		fmt.Fprintf(s.warn, "warning: reading %s: %v; using default config\n", s.path, err)
		return types.NewCatalog(), nil
	}
	if len(c.Sets) == 0 {
		return types.NewCatalog(), nil
	}
	return c, nil
}

func (s *SQLStore) load(ctx context.Context) (*types.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, raw_lines FROM rule_sets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying rule sets: %w", err)
	}
	defer rows.Close()

	c := &types.Catalog{}
	for rows.Next() {
		var (
			rs       types.RuleSet
			rawLines string
		)
		if err := rows.Scan(&rs.Name, &rawLines); err != nil {
			return nil, fmt.Errorf("scanning rule set: %w", err)
		}
		if err := json.Unmarshal([]byte(rawLines), &rs.RawLines); err != nil {
			return nil, fmt.Errorf("rule set %q: raw lines: %w", rs.Name, err)
		}
		c.Sets = append(c.Sets, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ruleRows, err := s.db.QueryContext(ctx,
		`SELECT rule_set, line, partial, prefix, suffix, raw FROM rules ORDER BY rule_set, position`)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var (
			name string
			r    types.Rule
		)
		if err := ruleRows.Scan(&name, &r.Line, &r.Partial, &r.Prefix, &r.Suffix, &r.Raw); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		if rs := c.Get(name); rs != nil {
			rs.Entries = append(rs.Entries, r)
		}
	}
	return c, ruleRows.Err()
}

// Save replaces the stored catalog in one transaction.
func (s *SQLStore) Save(ctx context.Context, c *types.Catalog) error {
	if s.schemaErr != nil {
		return s.schemaErr
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM rules`, `DELETE FROM rule_sets`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	setStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rule_sets (name, position, raw_lines) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer setStmt.Close()

	ruleStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rules (rule_set, position, line, partial, prefix, suffix, raw)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer ruleStmt.Close()

	for i, rs := range c.Sets {
		rawLines := rs.RawLines
		if rawLines == nil {
			rawLines = []string{}
		}
		rawJSON, _ := json.Marshal(rawLines)
		if _, err := setStmt.ExecContext(ctx, rs.Name, i, string(rawJSON)); err != nil {
			return fmt.Errorf("inserting rule set %q: %w", rs.Name, err)
		}
		for j, r := range rs.Entries {
			_, err := ruleStmt.ExecContext(ctx, rs.Name, j, r.Line, r.Partial, r.Prefix, r.Suffix, r.Raw)
			if err != nil {
				return fmt.Errorf("inserting rule %d of %q: %w", j+1, rs.Name, err)
			}
		}
	}

	return tx.Commit()
}
