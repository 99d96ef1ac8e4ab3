package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/report"
	"github.com/doddemo/analyzer/internal/storage"
)

// rosterCmd prints the name/team/class/SteamID roster for one stored demo.
var rosterCmd = &cobra.Command{
	Use:   "roster <hash-prefix>",
	Short: "Show the player roster for one stored demo",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoster,
}

var rosterResolveNames bool

func init() {
	rosterCmd.Flags().BoolVar(&rosterResolveNames, "resolve-names", false, "look up Steam persona names (requires STEAM_API_KEY)")
}

func runRoster(cmd *cobra.Command, args []string) error {
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
	if rosterResolveNames {
		result.Players = resolvePersonaNames(result.Players)
	}

	report.PrintRosterTable(os.Stdout, result)
	return nil
}
