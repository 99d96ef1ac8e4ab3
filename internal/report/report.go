// Package report formats an analysis result as terminal tables using
// tablewriter and fatih/color. Result decouples table rendering from
// internal/analysis.State so the same Print* functions serve a
// freshly-computed analysis and one reloaded from internal/storage.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/doddemo/analyzer/internal/analysis"
	"github.com/doddemo/analyzer/internal/projection"
	"github.com/doddemo/analyzer/internal/wire"
)

// Verbose controls whether a one-line column legend is printed before each
// table. It defaults to true; the CLI sets it to false when --quiet is passed.
var Verbose = true

// WeaponRow is one (weapon, kills, teamkills) entry of a player's breakdown.
type WeaponRow struct {
	Weapon    string
	Kills     int
	TeamKills int
}

// PlayerRow is one roster/scoreboard entry.
type PlayerRow struct {
	Team        string // "" for unassigned
	Name        string
	SteamID     string // rendered STEAM_0:Y:Z, or the raw PlayerGlobalId when not an id64
	PersonaName string // Steam persona name, populated by internal/steamapi when requested
	Class       string // "" if never observed
	Connected   bool
	Score       int
	Kills       int
	Deaths      int
	Weapons     []WeaponRow
}

// RoundRow is one round's outcome.
type RoundRow struct {
	Active      bool
	Duration    string // "in progress" when Active
	Winner      string // "-" if none
	WinnerKills int
}

// TeamScoreRow is one team-score timeline entry.
type TeamScoreRow struct {
	Time   string
	Team   string
	Points int
}

// Result is everything the Print* functions need, independent of whether it
// came from a live analysis.State or a reloaded storage row set.
type Result struct {
	MapName     string
	AlliesScore int32
	AxisScore   int32
	Players     []PlayerRow
	Rounds      []RoundRow
	TeamScores  []TeamScoreRow
}

// BuildResult projects a live analysis.State into a Result, applying the
// scoreboard ordering comparator.
func BuildResult(mapName string, state *analysis.State) Result {
	players := make([]*analysis.Player, len(state.Players))
	copy(players, state.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return projection.CompareForScoreboard(scoreboardRow(players[i]), scoreboardRow(players[j])) < 0
	})

	result := Result{
		MapName:     mapName,
		AlliesScore: state.TeamScoreEntries().GetTeamScore(wire.TeamAllies),
		AxisScore:   state.TeamScoreEntries().GetTeamScore(wire.TeamAxis),
	}

	for _, p := range players {
		team := ""
		if p.Team != nil {
			team = p.Team.String()
		}
		class := ""
		if p.Class != nil {
			class = p.Class.String()
		}
		steamID, ok := projection.SteamID(string(p.ID))
		if !ok {
			steamID = string(p.ID)
		}
		row := PlayerRow{
			Team: team, Name: p.Name, SteamID: steamID, Class: class,
			Connected: p.Connection.Connected, Score: int(p.Score), Kills: int(p.Kills), Deaths: int(p.Deaths),
		}
		for weapon, tally := range p.WeaponBreakdown {
			if tally.Kills == 0 && tally.TeamKills == 0 {
				continue
			}
			row.Weapons = append(row.Weapons, WeaponRow{Weapon: weapon.String(), Kills: tally.Kills, TeamKills: tally.TeamKills})
		}
		sort.Slice(row.Weapons, func(i, j int) bool { return row.Weapons[i].Weapon < row.Weapons[j].Weapon })
		result.Players = append(result.Players, row)
	}

	for _, r := range state.Rounds {
		if r.IsActive {
			result.Rounds = append(result.Rounds, RoundRow{Active: true, Duration: "in progress", Winner: "-"})
			continue
		}
		row := RoundRow{Duration: projection.FormatDuration(r.EndTime.Sub(r.StartTime)), Winner: "-"}
		if r.Winner != nil {
			row.Winner = r.Winner.Winner.String()
			row.WinnerKills = int(r.Winner.WinnerKills)
		}
		result.Rounds = append(result.Rounds, row)
	}

	for _, entry := range state.TeamScoreEntries() {
		result.TeamScores = append(result.TeamScores, TeamScoreRow{
			Time: projection.FormatDuration(entry.Time.ViewdemoOffset), Team: entry.Team.String(), Points: int(entry.Points),
		})
	}

	return result
}

func printSection(w io.Writer, title, desc string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	if Verbose {
		fmt.Fprintf(w, "%s\n", desc)
	}
}

func leftTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
	}))
}

func rightTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintDemoSummary prints a one-line summary header for the demo.
func PrintDemoSummary(w io.Writer, r Result) {
	fmt.Fprintf(w, "\nMap: %s  |  Score: Allies %d – Axis %d\n\n", r.MapName, r.AlliesScore, r.AxisScore)
}

func teamLabel(team string) string {
	if team == "" {
		return "-"
	}
	return team
}

// PrintRosterTable prints a compact name/team/identity listing.
func PrintRosterTable(w io.Writer, r Result) {
	fmt.Fprintf(w, "Players (use the Steam id with: rounds <hash-prefix> <player-id>)\n")
	table := leftTable(w)
	table.Header("TEAM", "NAME", "CLASS", "STEAM ID", "PERSONA")
	for _, p := range r.Players {
		class := p.Class
		if class == "" {
			class = "-"
		}
		persona := p.PersonaName
		if persona == "" {
			persona = "-"
		}
		table.Append(teamLabel(p.Team), p.Name, class, p.SteamID, persona)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintScoreboardTable prints the scoreboard to stdout.
func PrintScoreboardTable(r Result) {
	PrintScoreboardTableTo(os.Stdout, r)
}

// PrintScoreboardTableTo writes the scoreboard to the provided writer.
func PrintScoreboardTableTo(w io.Writer, r Result) {
	printSection(w, "Scoreboard",
		"SCORE=objective score  K=kills  D=deaths  CLASS=last observed class")
	table := rightTable(w)
	table.Header(" ", "NAME", "TEAM", "CLASS", "SCORE", "K", "D")
	for _, p := range r.Players {
		class := p.Class
		if class == "" {
			class = "-"
		}
		marker := " "
		if !p.Connected {
			marker = color.HiBlackString("x")
		}
		table.Append(marker, p.Name, teamLabel(p.Team), class,
			strconv.Itoa(p.Score), strconv.Itoa(p.Kills), strconv.Itoa(p.Deaths))
	}
	table.Render()
}

// PrintRoundLogTable prints each round's outcome and duration.
func PrintRoundLogTable(w io.Writer, r Result) {
	printSection(w, "Rounds", "WINNER=Allies/Axis, - for a round still in progress or ended without a winner")
	table := leftTable(w)
	table.Header("#", "DURATION", "WINNER", "WINNER KILLS")
	for i, round := range r.Rounds {
		kills := "-"
		if round.Winner != "-" {
			kills = strconv.Itoa(round.WinnerKills)
		}
		table.Append(strconv.Itoa(i+1), round.Duration, round.Winner, kills)
	}
	table.Render()
}

// PrintWeaponBreakdownTable prints one row per (player, weapon) with a
// nonzero kill or teamkill count.
func PrintWeaponBreakdownTable(w io.Writer, r Result) {
	printSection(w, "Weapon Breakdown", "K=kills with weapon  TK=teamkills with weapon")
	table := rightTable(w)
	table.Header("NAME", "WEAPON", "K", "TK")
	for _, p := range r.Players {
		for _, wr := range p.Weapons {
			table.Append(p.Name, wr.Weapon, strconv.Itoa(wr.Kills), strconv.Itoa(wr.TeamKills))
		}
	}
	table.Render()
}

// PrintTeamScoreTimelineTable prints the team-score timeline in observed order.
func PrintTeamScoreTimelineTable(w io.Writer, r Result) {
	printSection(w, "Team Score Timeline", "TIME=viewdemo offset when the score changed")
	table := leftTable(w)
	table.Header("TIME", "TEAM", "POINTS")
	for _, entry := range r.TeamScores {
		table.Append(entry.Time, entry.Team, strconv.Itoa(entry.Points))
	}
	table.Render()
}

func scoreboardRow(p *analysis.Player) projection.ScoreboardRow {
	return projection.ScoreboardRow{Team: p.Team, Points: p.Score, Kills: p.Kills, Deaths: p.Deaths}
}
