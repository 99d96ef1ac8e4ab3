package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/doddemo/analyzer/internal/report"
	"github.com/doddemo/analyzer/internal/steamapi"
)

// resolvePersonaNames fills in PersonaName for every player whose SteamID is
// a STEAM_0:Y:Z rendering of an id64, using the Steam Web API key from
// $STEAM_API_KEY. Errors
// are reported to stderr and otherwise ignored — persona enrichment is
// best-effort, never required to see a demo's stats.
func resolvePersonaNames(players []report.PlayerRow) []report.PlayerRow {
	apiKey := os.Getenv("STEAM_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "warn: --resolve-names requires STEAM_API_KEY to be set")
		return players
	}

	var id64s []string
	playerID64s := make([]string, len(players))
	for i, p := range players {
		var y, z uint64
		if n, _ := fmt.Sscanf(p.SteamID, "STEAM_0:%d:%d", &y, &z); n == 2 {
			playerID64s[i] = strconv.FormatUint(76561197960265728+z*2+y, 10)
			id64s = append(id64s, playerID64s[i])
		}
	}
	if len(id64s) == 0 {
		return players
	}

	client := steamapi.NewClient(apiKey)
	summaries, err := client.GetPlayerSummaries(id64s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warn: resolve persona names: %v\n", err)
		return players
	}

	for i := range players {
		if s, ok := summaries[playerID64s[i]]; ok && playerID64s[i] != "" {
			players[i].PersonaName = s.PersonaName
		}
	}
	return players
}
