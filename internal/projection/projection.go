// Package projection derives renderer-facing values from an
// internal/analysis.State without mutating it: Steam ID rendering,
// scoreboard ordering, and duration formatting.
package projection

import (
	"fmt"
	"strconv"
	"time"

	"github.com/doddemo/analyzer/internal/wire"
)

// steamID64Base is the offset between a Steam account number and its
// public id64 form (76561197960265728).
const steamID64Base = 76561197960265728

// SteamID renders a PlayerGlobalId as a classic STEAM_0:Y:Z identifier when
// it is a valid decimal id64 at or above steamID64Base, per spec.md §3. The
// second return value is false for ids that are not id64s (the UUID
// fallback forms), in which case the caller should fall back to the raw
// PlayerGlobalId string for display.
func SteamID(id string) (string, bool) {
	account64, err := strconv.ParseUint(id, 10, 64)
	if err != nil || account64 < steamID64Base {
		return "", false
	}
	account := account64 - steamID64Base
	y := account & 1
	z := account >> 1
	return fmt.Sprintf("STEAM_0:%d:%d", y, z), true
}

// ScoreboardRow is the minimal shape CompareForScoreboard orders: a team
// assignment plus the (points, kills, deaths) triple from spec.md §3.
type ScoreboardRow struct {
	Team   *wire.Team
	Points int32
	Kills  int32
	Deaths int32
}

func teamRank(t *wire.Team) int {
	if t == nil {
		return 3
	}
	switch *t {
	case wire.TeamAllies:
		return 0
	case wire.TeamAxis:
		return 1
	default:
		return 2
	}
}

// CompareForScoreboard orders two rows the way the original game's
// scoreboard does: grouped by team (Allies, then Axis, then
// Spectators/unassigned), then within a team by descending points,
// descending kills, ascending deaths. Returns <0 if a sorts before b, >0 if
// after, 0 if equivalent.
func CompareForScoreboard(a, b ScoreboardRow) int {
	if ra, rb := teamRank(a.Team), teamRank(b.Team); ra != rb {
		return ra - rb
	}
	if a.Points != b.Points {
		return int(b.Points - a.Points)
	}
	if a.Kills != b.Kills {
		return int(b.Kills - a.Kills)
	}
	return int(a.Deaths - b.Deaths)
}

// FormatDuration renders a time.Duration as the clock text report tables
// use: M:SS, minutes unbounded.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
