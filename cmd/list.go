package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored demos",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	demos, err := db.ListDemos()
	if err != nil {
		return fmt.Errorf("list demos: %w", err)
	}
	if len(demos) == 0 {
		fmt.Fprintln(os.Stdout, "No demos stored yet. Run 'dodstats analyze <demo.dem>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %s\n", "HASH", "MAP", "TYPE", "ANALYZED")
	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %s\n", "──────────────", "────────────", "──────────", "────────────────────")
	for _, d := range demos {
		matchType := d.MatchType
		if matchType == "" {
			matchType = "-"
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %s\n", d.Hash[:min(12, len(d.Hash))], d.MapName, matchType, d.Analyzed)
	}
	return nil
}
