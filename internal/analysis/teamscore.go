package analysis

import (
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

// teamScoreEntry is one point of the append-only timeline of spec.md §3.
type teamScoreEntry struct {
	Time   GameTime
	Team   wire.Team
	Points int32
}

// TeamScores is the append-only `(GameTime, Team, points)` timeline of
// spec.md §3.
type TeamScores []teamScoreEntry

// GetTeamScore returns the points of the latest timeline entry for team, or
// 0 if the team never appears.
func (ts TeamScores) GetTeamScore(team wire.Team) int32 {
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].Team == team {
			return ts[i].Points
		}
	}
	return 0
}

// TeamScoreEntries exposes the timeline for renderers and storage. The
// element type is unexported; callers access its exported Time/Team/Points
// fields without naming it.
func (s *State) TeamScoreEntries() TeamScores {
	return s.TeamScores
}

// applyTeamScores is the team-score update function (spec.md §4.4.6).
func applyTeamScores(s *State, ev event.AnalyzerEvent) {
	if ev.Kind != event.UserMessageKind {
		return
	}
	msg, ok := ev.User.(demomsg.TeamScore)
	if !ok {
		return
	}
	s.TeamScores = append(s.TeamScores, teamScoreEntry{
		Time:   s.CurrentTime,
		Team:   msg.Team,
		Points: int32(msg.Score),
	})
}
