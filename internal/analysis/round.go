package analysis

import (
	"fmt"

	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

// WinnerStats pairs the winning team with its kill count for the round, the
// `Option<(Team, kills_by_winner)>` of spec.md §3.
type WinnerStats struct {
	Winner      wire.Team
	WinnerKills int32
}

// Round is the sum type of spec.md §3: exactly one of Active/Completed is
// set, selected by IsActive.
type Round struct {
	IsActive bool

	StartTime GameTime
	EndTime   GameTime // Completed only

	AlliesKills int32 // Active only
	AxisKills   int32 // Active only

	Winner *WinnerStats // Completed only, may be nil
}

// applyRounds is the rounds update function (spec.md §4.4.7).
func applyRounds(s *State, ev event.AnalyzerEvent) error {
	switch ev.Kind {
	case event.Initialization:
		if len(s.Rounds) == 0 {
			s.Rounds = append(s.Rounds, Round{IsActive: true, StartTime: s.CurrentTime})
		}
		return nil

	case event.Finalization:
		if n := len(s.Rounds); n > 0 && s.Rounds[n-1].IsActive {
			active := s.Rounds[n-1]
			s.Rounds[n-1] = Round{StartTime: active.StartTime, EndTime: s.CurrentTime}
		}
		return nil

	case event.UserMessageKind:
		switch msg := ev.User.(type) {
		case demomsg.RoundState:
			return applyRoundState(s, msg)
		case demomsg.DeathMsg:
			applyRoundKillTally(s, msg)
		}
	}
	return nil
}

func applyRoundState(s *State, msg demomsg.RoundState) error {
	switch msg.Value {
	case demomsg.RoundStateReset:
		s.Rounds = append(s.Rounds, Round{IsActive: true, StartTime: s.CurrentTime})

	case demomsg.RoundStateAlliesWin, demomsg.RoundStateAxisWin:
		n := len(s.Rounds)
		if n == 0 || !s.Rounds[n-1].IsActive {
			return fmt.Errorf("analysis: %s arrived with no active round at tail", msg.Value)
		}
		active := s.Rounds[n-1]
		winner := wire.TeamAllies
		winnerKills := active.AlliesKills
		if msg.Value == demomsg.RoundStateAxisWin {
			winner = wire.TeamAxis
			winnerKills = active.AxisKills
		}
		s.Rounds[n-1] = Round{
			StartTime: active.StartTime,
			EndTime:   s.CurrentTime,
			Winner:    &WinnerStats{Winner: winner, WinnerKills: winnerKills},
		}
	}
	return nil
}

// RoundIndexAt returns the sequence number of the round containing t, or -1
// if t falls outside every recorded round (e.g. before the first reset).
func (s *State) RoundIndexAt(t GameTime) int {
	for i, r := range s.Rounds {
		if t.ViewdemoOffset < r.StartTime.ViewdemoOffset {
			continue
		}
		if r.IsActive || t.ViewdemoOffset <= r.EndTime.ViewdemoOffset {
			return i
		}
	}
	return -1
}

func applyRoundKillTally(s *State, msg demomsg.DeathMsg) {
	n := len(s.Rounds)
	if n == 0 || !s.Rounds[n-1].IsActive {
		return
	}

	killer := s.findByClientIndex(msg.KillerClientIndex - 1)
	victim := s.findByClientIndex(msg.VictimClientIndex - 1)

	if isTeamKill(killer, victim) {
		return
	}
	if killer == nil || killer.Team == nil {
		return
	}

	active := &s.Rounds[n-1]
	if *killer.Team == wire.TeamAllies {
		active.AlliesKills++
	} else {
		active.AxisKills++
	}
}
