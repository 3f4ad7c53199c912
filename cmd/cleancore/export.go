// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cleancore/internal/store"
)

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all configs to YAML or JSON",
	Long: `Export writes every config, including its raw text, to a YAML or JSON
file that "import" can read back on any backend.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = "cleancore-export." + format
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		c := a.session.Catalog()
		if err := store.Export(c, out, format); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Exported %d config(s) to %s\n", len(c.Sets), out)
		return nil
	})
}

// --- import subcommand ---

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import configs from a YAML or JSON export",
	Long: `Import reads a file written by "export" and merges its configs into the
catalog. Configs with the same name are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	c, err := store.Import(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		n, err := a.session.Import(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Imported %d config(s) from %s\n", n, args[0])
		return nil
	})
}

func init() {
	exportCmd.Flags().String("format", store.FormatYAML, "export format: yaml or json")
	exportCmd.Flags().StringP("out", "o", "", "output file (default: cleancore-export.<format>)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
