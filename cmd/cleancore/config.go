// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cleancore/internal/render"
	"github.com/pdiddy/cleancore/internal/rules"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rule configs (list, show, add, rename, delete, use, set)",
	Long: `Config manages the named rule configs. One config is current at a time;
it is remembered per user between runs. The "default" config always exists
and cannot be deleted or renamed.`,
}

// --- list subcommand ---

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configs, marking the current one",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func runConfigList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		current := a.session.CurrentName()
		for _, name := range a.session.Names() {
			marker := " "
			if name == current {
				marker = "*"
			}
			fmt.Fprintf(a.stdout, "%s %s\n", marker, name)
		}
		return nil
	})
}

// --- show subcommand ---

var configShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the editable text of a config (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		rs := a.session.Current()
		if len(args) == 1 {
			var err error
			if rs, err = a.session.Get(args[0]); err != nil {
				return err
			}
		}
		fmt.Fprint(a.stdout, rules.Render(rs, a.session.Now()))
		return nil
	})
}

// --- add subcommand ---

var configAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a config from the editing template and make it current",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigAdd,
}

func runConfigAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		rs, err := a.session.Add(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Config '%s' created.\n", rs.Name)
		return nil
	})
}

// --- rename subcommand ---

var configRenameCmd = &cobra.Command{
	Use:   "rename <new-name>",
	Short: "Rename the current config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigRename,
}

func runConfigRename(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		old := a.session.CurrentName()
		if err := a.session.Rename(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Config '%s' renamed to '%s'.\n", old, a.session.CurrentName())
		return nil
	})
}

// --- delete subcommand ---

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the current config",
	Long: `Delete removes the current config after confirmation and selects the
first remaining one. Use --yes to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: runConfigDelete,
}

func runConfigDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		name := a.session.CurrentName()
		if !yes {
			fmt.Fprintf(a.stdout, "Delete config '%s'? [y/N] ", name)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Fprintln(a.stdout, "Cancelled.")
				return nil
			}
		}

		deleted, err := a.session.Delete(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Config '%s' deleted. Current config: %s\n", deleted, a.session.CurrentName())
		return nil
	})
}

// --- use subcommand ---

var configUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a config current",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUse,
}

func runConfigUse(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.session.Select(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Current config: %s\n", a.session.CurrentName())
		return nil
	})
}

// --- set subcommand ---

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the current config's rules with text from a file or stdin",
	Long: `Set reads rule text and stores it as the current config. Invalid lines
are kept in the text but are not applied; each one is reported.`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	text, err := readInput(cmd, file)
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		doc, err := a.session.SaveText(ctx, text)
		if err != nil {
			return err
		}
		reportIssues(a, doc.Issues())
		fmt.Fprintf(a.stdout, "Config '%s' saved (%d rules).\n", a.session.CurrentName(), len(doc.Rules()))
		return nil
	})
}

// --- check subcommand ---

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate rule text without saving it",
	Long: `Check reads rule text (default: the current config) and prints it with
invalid lines flagged. Use --strict to exit non-zero when any line is
invalid.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	strict, _ := cmd.Flags().GetBool("strict")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		text := a.session.Text()
		if cmd.Flags().Changed("file") {
			var err error
			if text, err = readInput(cmd, file); err != nil {
				return err
			}
		}

		issues := a.session.Validate(text)
		flagged := make(map[int]bool, len(issues))
		for _, is := range issues {
			flagged[is.Line] = true
		}
		fmt.Fprint(a.stdout, render.Flagged(rules.SplitLines(text), flagged, nil))
		reportIssues(a, issues)

		if len(issues) == 0 {
			fmt.Fprintln(a.stdout, "All lines valid.")
			return nil
		}
		if strict {
			return fmt.Errorf("%d invalid line(s)", len(issues))
		}
		return nil
	})
}

func reportIssues(a *app, issues []rules.Issue) {
	for _, is := range issues {
		fmt.Fprintf(a.stderr, "warning: %s\n", is)
	}
}

func init() {
	configDeleteCmd.Flags().BoolP("yes", "y", false, "delete without confirmation")
	configSetCmd.Flags().StringP("file", "f", "", "rule text file (default: stdin)")
	checkCmd.Flags().StringP("file", "f", "", "rule text file, - for stdin (default: current config)")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when any line is invalid")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configAddCmd)
	configCmd.AddCommand(configRenameCmd)
	configCmd.AddCommand(configDeleteCmd)
	configCmd.AddCommand(configUseCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(checkCmd)
}
