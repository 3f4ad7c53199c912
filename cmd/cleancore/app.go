// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cleancore/internal/engine"
	"github.com/pdiddy/cleancore/internal/session"
	"github.com/pdiddy/cleancore/internal/settings"
	"github.com/pdiddy/cleancore/internal/store"
	"github.com/pdiddy/cleancore/pkg/types"
)

// app bundles what every command needs: resolved configuration, the store,
// the user's settings file and a session.
type app struct {
	cfg     types.AppConfig
	store   store.Store
	prefs   *settings.File
	user    string
	session *session.Session
	stdout  io.Writer
	stderr  io.Writer
}

// loadConfig resolves types.AppConfig from flags, environment and file.
func loadConfig() (types.AppConfig, error) {
	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return types.AppConfig{}, fmt.Errorf("resolving data directory: %w", err)
		}
		dataDir = filepath.Join(dir, "cleancore", "data")
	}

	mode, err := engine.ParseMode(viper.GetString("mode"))
	if err != nil {
		return types.AppConfig{}, err
	}

	return types.AppConfig{
		Store: types.StoreConfig{
			DataDir:      dataDir,
			Backend:      types.StoreBackend(viper.GetString("backend")),
			SQLiteDriver: viper.GetString("sqlite_driver"),
		},
		Mode:      mode,
		Clipboard: viper.GetBool("clipboard"),
	}, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	st, err := store.Open(cfg.Store, stderr)
	if err != nil {
		return nil, err
	}

	user := settings.Username()
	prefs := settings.NewFile(cfg.Store.DataDir, stderr)

	sess, err := session.New(cmd.Context(), st, prefs.Load(user))
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   st,
		prefs:   prefs,
		user:    user,
		session: sess,
		stdout:  cmd.OutOrStdout(),
		stderr:  stderr,
	}, nil
}

// Close writes the user's settings, including the selected rule set, then
// releases the store.
func (a *app) Close() error {
	return errors.Join(
		a.prefs.Save(a.user, a.session.Settings()),
		a.store.Close(),
	)
}

// withApp opens the app, runs fn and closes the app, reporting the first
// error.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(cmd.Context(), a)
}

// readInput reads path, or standard input when path is "" or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
