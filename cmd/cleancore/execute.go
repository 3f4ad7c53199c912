// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cleancore/internal/clipboard"
	"github.com/pdiddy/cleancore/internal/engine"
	"github.com/pdiddy/cleancore/internal/render"
	"github.com/pdiddy/cleancore/internal/session"
	"github.com/pdiddy/cleancore/pkg/types"
)

// --- execute subcommand ---

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Highlight what the current config matches in a text dump",
	Long: `Execute reads a text dump (from --dump or stdin), applies the current
config's rules and prints the dump with every match highlighted.

With --rules, the rule text is first saved as the current config.`,
	Args: cobra.NoArgs,
	RunE: runExecute,
}

func runExecute(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		spans, err := executeDump(ctx, cmd, a)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(spans)
		}

		fmt.Fprint(a.stdout, render.Dump(a.session.Dump(), spans, render.Options{LineNumbers: true}))
		fmt.Fprintf(a.stdout, "\n%d match(es) for config '%s'\n", len(spans), a.session.CurrentName())
		return nil
	})
}

// executeDump loads the dump, optionally saves new rule text, and runs the
// match pass.
func executeDump(ctx context.Context, cmd *cobra.Command, a *app) ([]types.Span, error) {
	dumpPath, _ := cmd.Flags().GetString("dump")
	rulesPath, _ := cmd.Flags().GetString("rules")

	if dumpPath == "-" && rulesPath == "-" {
		return nil, fmt.Errorf("--dump and --rules cannot both read stdin")
	}

	dump, err := readInput(cmd, dumpPath)
	if err != nil {
		return nil, err
	}
	a.session.SetDump(dump)

	if rulesPath == "" {
		return a.session.Execute(), nil
	}

	text, err := readInput(cmd, rulesPath)
	if err != nil {
		return nil, err
	}
	doc, spans, err := a.session.SaveAndExecute(ctx, text)
	if err != nil {
		return nil, err
	}
	reportIssues(a, doc.Issues())
	return spans, nil
}

// --- extract subcommand ---

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract matched values and copy them to the clipboard",
	Long: `Extract runs the current config against a text dump and collects the
highlighted values. In exact mode each rule takes the next unused match on
its line, in rule order, and separator lines ("## \n") yield an empty
value. In dedup mode each distinct value appears once in dump order.

Values are printed one per line and copied to the system clipboard unless
--no-clipboard is set.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	noClipboard, _ := cmd.Flags().GetBool("no-clipboard")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		mode := a.cfg.Mode

		if _, err := executeDump(ctx, cmd, a); err != nil {
			return err
		}

		res, err := a.session.Extract(mode)
		if errors.Is(err, session.ErrNothingToExtract) {
			fmt.Fprintln(a.stdout, "No bold text found. Execute rules first.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(a.stdout, res.Text())

		if noClipboard || !a.cfg.Clipboard {
			return nil
		}
		if err := clipboard.Default(a.stderr).Copy(res.Text()); err != nil {
			return err
		}
		fmt.Fprintln(a.stderr, copiedMessage(res, mode))
		return nil
	})
}

func copiedMessage(res engine.Result, mode types.CollectMode) string {
	if mode == types.ModeDedup {
		return fmt.Sprintf("%d unique value(s) copied!", res.Count)
	}
	return fmt.Sprintf("Exactly %d value(s) copied (1 per config line)!", res.Count)
}

func init() {
	for _, c := range []*cobra.Command{executeCmd, extractCmd} {
		c.Flags().StringP("dump", "d", "", "text dump file (default: stdin)")
		c.Flags().StringP("rules", "r", "", "save rule text from this file as the current config first")
	}
	executeCmd.Flags().Bool("json", false, "print matches as JSON")
	extractCmd.Flags().StringP("mode", "m", "exact", "collect mode: exact or dedup")
	extractCmd.Flags().Bool("no-clipboard", false, "print values without copying them")

	viper.BindPFlag("mode", extractCmd.Flags().Lookup("mode"))

	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(extractCmd)
}
