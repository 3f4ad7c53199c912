// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings stores per-user window and session preferences in a
// JSON file keyed by local username. Stored values are merged over
// defaults; a missing or malformed file yields the defaults.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/pdiddy/cleancore/pkg/types"
)

const (
	settingsFile = "user_settings.json"
	fallbackUser = "default_user"
)

// File is the user settings document in a data directory.
type File struct {
	path string
	warn io.Writer
}

// NewFile returns the settings file in dataDir.
func NewFile(dataDir string, warn io.Writer) *File {
	if warn == nil {
		warn = io.Discard
	}
	return &File{path: filepath.Join(dataDir, settingsFile), warn: warn}
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

// Load returns the settings for username merged over the defaults.
func (f *File) Load(username string) types.UserSettings {
	s := types.DefaultUserSettings()
	users := f.readAll()
	if raw, ok := users[username]; ok {
		if err := json.Unmarshal(raw, &s); err != nil {
			fmt.Fprintf(f.warn, "warning: settings for %s are malformed: %v; using defaults\n", username, err)
			s = types.DefaultUserSettings()
		}
	}
	s.FontSize = types.ClampFontSize(s.FontSize)
	return s
}

// Save stores the settings for username, keeping other users' entries.
func (f *File) Save(username string, s types.UserSettings) error {
	users := f.readAll()
	if users == nil {
		users = make(map[string]json.RawMessage)
	}

	s.FontSize = types.ClampFontSize(s.FontSize)
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	users[username] = raw

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

func (f *File) readAll() map[string]json.RawMessage {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(f.warn, "warning: reading %s: %v; using defaults\n", f.path, err)
		}
		return nil
	}
	var users map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &users); err != nil {
		fmt.Fprintf(f.warn, "warning: %s is malformed: %v; using defaults\n", f.path, err)
		return nil
	}
	return users
}

// Username resolves the local user name used as the settings key: the OS
// account, then $USER or $USERNAME, then "default_user". The result only
// holds letters, digits, '_' and '-'.
func Username() string {
	var candidates []string
	if u, err := user.Current(); err == nil {
		candidates = append(candidates, u.Username)
	}
	candidates = append(candidates, os.Getenv("USER"), os.Getenv("USERNAME"))

	for _, c := range candidates {
		if name := Sanitize(c); name != "" {
			return name
		}
	}
	return fallbackUser
}

// Sanitize drops a Windows domain qualifier and every character other than
// letters, digits, '_' and '-'.
func Sanitize(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return r
		}
		return -1
	}, name)
}
