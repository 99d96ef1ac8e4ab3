// Package cmd implements the CLI commands for dodstats: analyzing Day of
// Defeat demo files and inspecting previously stored results.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/report"
)

// dbPath is the file path to the SQLite database, set via the --db flag.
var dbPath string

// quiet suppresses verbose column legends when true, set via the --quiet flag.
var quiet bool

// rootCmd is the top-level cobra command for the dodstats CLI.
var rootCmd = &cobra.Command{
	Use:   "dodstats",
	Short: "Day of Defeat demo analysis tool",
	Long:  "Parse Day of Defeat .dem files and report per-round, per-player, and per-weapon statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		report.Verbose = !quiet
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".dodstats", "dodstats.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "hide column legends before each table")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dropCmd)
}

// mustUserHome returns the current user's home directory, falling back to "."
// if it cannot be determined.
func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
