// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cleancore/internal/phrases"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change per-user settings",
	Long: `Settings are stored per user in user_settings.json in the data
directory. They record window geometry, font size and the current config.`,
}

// --- show subcommand ---

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the greeting and the current user's settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		fmt.Fprintln(a.stdout, phrases.Greeting(a.user, phrases.Load(a.cfg.Store.DataDir)))
		fmt.Fprintln(a.stdout)

		s := a.session.Settings()
		fmt.Fprintf(a.stdout, "%-15s %s\n", "User:", a.user)
		fmt.Fprintf(a.stdout, "%-15s %s\n", "Settings file:", a.prefs.Path())
		fmt.Fprintf(a.stdout, "%-15s %dx%d at %d,%d\n", "Window:", s.Width, s.Height, s.X, s.Y)
		fmt.Fprintf(a.stdout, "%-15s %d\n", "Font size:", s.FontSize)
		fmt.Fprintf(a.stdout, "%-15s %s\n", "Config:", s.CurrentConfig)
		fmt.Fprintf(a.stdout, "%-15s %s\n", "Backend:", a.cfg.Store.Backend)
		fmt.Fprintf(a.stdout, "%-15s %s\n", "Data dir:", a.cfg.Store.DataDir)
		return nil
	})
}

// --- font subcommand ---

var settingsFontCmd = &cobra.Command{
	Use:   "font <delta>",
	Short: "Change the font size by delta",
	Long: `Font changes the font size by delta, clamped to 8..28. Pass negative
deltas after "--", for example: cleancore settings font -- -2`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsFont,
}

func runSettingsFont(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid font delta %q: %w", args[0], err)
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		fmt.Fprintf(a.stdout, "Font size: %d\n", a.session.ChangeFont(delta))
		return nil
	})
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsFontCmd)
	rootCmd.AddCommand(settingsCmd)
}
