package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/report"
	"github.com/doddemo/analyzer/internal/storage"
)

// showCmd is the cobra command that re-displays a stored demo's analysis by hash prefix.
var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show stored demo analysis by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showResolveNames bool

func init() {
	showCmd.Flags().BoolVar(&showResolveNames, "resolve-names", false, "look up Steam persona names (requires STEAM_API_KEY)")
}

// runShow looks up a demo by hash prefix and prints all its report tables.
func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	id, mapName, found, err := db.GetDemoByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query demo: %w", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No demo found with hash prefix %q\n", prefix)
		return nil
	}

	result, err := storage.LoadResult(db, id, mapName)
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}
	if showResolveNames {
		result.Players = resolvePersonaNames(result.Players)
	}

	report.PrintDemoSummary(os.Stdout, result)
	report.PrintRosterTable(os.Stdout, result)
	report.PrintScoreboardTableTo(os.Stdout, result)
	report.PrintRoundLogTable(os.Stdout, result)
	report.PrintWeaponBreakdownTable(os.Stdout, result)
	report.PrintTeamScoreTimelineTable(os.Stdout, result)
	return nil
}
