package analysis

import (
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

// ClanMatchState is the clan-match FSM's current state (spec.md §3).
type ClanMatchState int

const (
	WaitingForReset ClanMatchState = iota
	WaitingForNormal
	MatchIsLive
)

// ClanMatchDetection is the clan-match FSM of spec.md §4.4.8. ResetTime is
// meaningful only while State is WaitingForNormal.
type ClanMatchDetection struct {
	State     ClanMatchState
	ResetTime GameTime
}

// applyClanMatch is the clan-match detection update function (spec.md
// §4.4.8), parameterized by s.maxNormalDuration (default
// DefaultMaxNormalDuration).
func applyClanMatch(s *State, ev event.AnalyzerEvent) {
	switch s.ClanMatch.State {
	case WaitingForReset:
		if ev.Kind != event.UserMessageKind {
			return
		}
		if rs, ok := ev.User.(demomsg.RoundState); ok && rs.Value == demomsg.RoundStateReset {
			s.ClanMatch = ClanMatchDetection{State: WaitingForNormal, ResetTime: s.CurrentTime}
		}

	case WaitingForNormal:
		if ev.Kind == event.UserMessageKind {
			if rs, ok := ev.User.(demomsg.RoundState); ok && rs.Value == demomsg.RoundStateNormal {
				if allStatsZero(s) {
					goLive(s)
					return
				}
			}
		}
		// Runs for every event, not only UserMessageKind: the rearm to
		// WaitingForReset fires once the deadline passes regardless of what
		// event observed it.
		if s.CurrentTime.Sub(s.ClanMatch.ResetTime) > s.maxNormalDuration {
			s.ClanMatch = ClanMatchDetection{State: WaitingForReset}
		}

	case MatchIsLive:
		if ev.Kind != event.UserMessageKind {
			return
		}
		if _, ok := ev.User.(demomsg.ClanTimer); ok {
			s.ClanMatch = ClanMatchDetection{State: WaitingForReset}
		}
	}
}

// allStatsZero is the zero-score guard: every player's score is 0 and
// neither team carries a nonzero timeline score.
func allStatsZero(s *State) bool {
	for _, p := range s.Players {
		if p.Score != 0 {
			return false
		}
	}
	return s.TeamScores.GetTeamScore(wire.TeamAllies) == 0 && s.TeamScores.GetTeamScore(wire.TeamAxis) == 0
}

func goLive(s *State) {
	resetTime := s.ClanMatch.ResetTime
	s.ClanMatch = ClanMatchDetection{State: MatchIsLive}
	s.Rounds = []Round{{IsActive: true, StartTime: resetTime}}
	s.TeamScores = nil
	for _, p := range s.Players {
		p.KillStreaks = nil
		p.WeaponBreakdown = make(map[wire.Weapon]WeaponTally)
	}
}
