package projection

import (
	"testing"
	"time"

	"github.com/doddemo/analyzer/internal/wire"
)

func TestSteamIDFormula(t *testing.T) {
	got, ok := SteamID("76561197960265729")
	if !ok {
		t.Fatal("expected a valid id64 to project")
	}
	if got != "STEAM_0:1:0" {
		t.Fatalf("expected STEAM_0:1:0, got %s", got)
	}
}

func TestSteamIDRejectsNonID64(t *testing.T) {
	if _, ok := SteamID("not-a-number"); ok {
		t.Fatal("expected non-numeric id to reject")
	}
	if _, ok := SteamID("123"); ok {
		t.Fatal("expected below-base id to reject")
	}
}

func TestCompareForScoreboardOrdersByTeamThenStats(t *testing.T) {
	allies := wire.TeamAllies
	axis := wire.TeamAxis
	a := ScoreboardRow{Team: &allies, Points: 10, Kills: 5, Deaths: 2}
	b := ScoreboardRow{Team: &axis, Points: 100, Kills: 50, Deaths: 0}
	if CompareForScoreboard(a, b) >= 0 {
		t.Fatal("allies must sort before axis regardless of stats")
	}

	a2 := ScoreboardRow{Team: &allies, Points: 10, Kills: 5, Deaths: 2}
	b2 := ScoreboardRow{Team: &allies, Points: 20, Kills: 1, Deaths: 9}
	if CompareForScoreboard(a2, b2) <= 0 {
		t.Fatal("higher points must sort first within a team")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(90 * time.Second); got != "1:30" {
		t.Fatalf("expected 1:30, got %s", got)
	}
}
