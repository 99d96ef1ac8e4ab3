package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/projection"
	"github.com/doddemo/analyzer/internal/storage"
)

// roundsCmd is the cobra command for per-round kill drill-down for one player.
var roundsCmd = &cobra.Command{
	Use:   "rounds <hash-prefix> <player-id>",
	Short: "Per-round kill drill-down for one player in one demo",
	Long: `Print every recorded kill for one player, grouped by round. The
player may be identified by name or by the identity shown in the roster
table's STEAM ID column.`,
	Args: cobra.ExactArgs(2),
	RunE: runRounds,
}

func runRounds(cmd *cobra.Command, args []string) error {
	prefix, identifier := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	demoID, _, found, err := db.GetDemoByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query demo: %w", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No demo found with hash prefix %q\n", prefix)
		return nil
	}

	playerID, name, found, err := db.FindPlayer(demoID, identifier)
	if err != nil {
		return fmt.Errorf("find player: %w", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No player %q found in demo %s\n", identifier, prefix)
		return nil
	}

	kills, err := db.GetPlayerRoundKills(playerID)
	if err != nil {
		return fmt.Errorf("get round kills: %w", err)
	}
	if len(kills) == 0 {
		fmt.Fprintf(os.Stdout, "%s recorded no kills in this demo.\n", name)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nKills for %s\n", name)
	table := tablewriter.NewTable(os.Stdout)
	table.Header("ROUND", "TIME", "WEAPON")
	for _, k := range kills {
		table.Append(fmt.Sprintf("%d", k.RoundSeq+1),
			projection.FormatDuration(time.Duration(k.TimeMs)*time.Millisecond), k.Weapon)
	}
	table.Render()
	return nil
}
