// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cleancore CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cleancore CLI.
var rootCmd = &cobra.Command{
	Use:   "cleancore",
	Short: "Extract column values from pasted text with line rules",
	Long: `cleancore applies small extraction rules to pasted text. Each rule names a
line of the text, a substring the wanted column must contain, and optional
prefix and suffix strings to cut:

    line; "partial"; "prefix"; "suffix"

Rules are kept in named configs. Use "config" to manage them, "execute" to
highlight matches in a dump, and "extract" to copy the matched values.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cleancore.yaml or ~/.config/cleancore/cleancore.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding rule configs and user settings (default: ~/.config/cleancore/data)")
	rootCmd.PersistentFlags().String("backend", "json", "rule storage backend: json or sqlite")
	rootCmd.PersistentFlags().String("sqlite-driver", "sqlite3", "sqlite driver: sqlite3 (cgo) or sqlite (pure Go)")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("sqlite_driver", rootCmd.PersistentFlags().Lookup("sqlite-driver"))

	viper.SetDefault("mode", "exact")
	viper.SetDefault("clipboard", true)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cleancore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "cleancore"))
		}
	}

	viper.SetEnvPrefix("CLEANCORE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
