package analysis

import (
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
)

// applyScoreboard is the scoreboard update function (spec.md §4.4.3).
func applyScoreboard(s *State, ev event.AnalyzerEvent) {
	if ev.Kind != event.UserMessageKind {
		return
	}

	switch msg := ev.User.(type) {
	case demomsg.PClass:
		if p := s.findByClientIndex(msg.ClientIndex - 1); p != nil {
			class := msg.Class
			p.Class = &class
		}

	case demomsg.PTeam:
		if p := s.findByClientIndex(msg.ClientIndex - 1); p != nil {
			team := msg.Team
			p.Team = &team
		}

	case demomsg.ScoreShort:
		if p := s.findByClientIndex(msg.ClientIndex - 1); p != nil {
			p.Score = int32(msg.Score)
			p.Kills = int32(msg.Kills)
			p.Deaths = int32(msg.Deaths)
		}

	case demomsg.ObjScore:
		if p := s.findByClientIndex(msg.ClientIndex - 1); p != nil {
			p.Score = int32(msg.Score)
		}

	case demomsg.Frags:
		if p := s.findByClientIndex(msg.ClientIndex - 1); p != nil {
			p.Kills = int32(msg.Frags)
		}
	}
}
