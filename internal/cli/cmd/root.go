// Package cmd provides Cobra CLI commands for bezier.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/bezier/internal/cli"
)

var (
	app *cli.App

	configFile string
	ephemeral  bool
	jsonOutput bool

	rootCmd = &cobra.Command{
		Use:   "bezier",
		Short: "Browser chrome state without the browser",
		Long: `Bezier - the state core of a browser, driven from the terminal.

Bezier keeps tabs, tab groups, history, bookmarks, downloads, themes and
extensions in a persisted store and exposes them through this CLI and an
HTTP API.

Features:
  - Fuzzy command palette over tabs, bookmarks and history
  - Real downloads with pause, resume and cancel
  - Catppuccin-style themes with custom palettes and presets
  - SQLite, redis, file or in-memory storage
  - Session import from Firefox profiles
  - Live event stream over websocket in serve mode`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsApp(cmd) {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile, Ephemeral: ephemeral})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeApp()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/bezier/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// skipsApp reports whether cmd runs without stores.
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "schema", "version":
		return true
	}
	return cmd.Annotations["app"] == "none"
}

func closeApp() {
	if app == nil {
		return
	}
	if err := app.Close(); err != nil {
		app.Logger.Warn().Err(err).Msg("closing state storage")
	}
	app = nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeApp()
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
