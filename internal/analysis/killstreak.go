package analysis

import (
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
)

// isTeamKill decides spec.md §4.4.4's is_teamkill: both players found and
// sharing the same non-None team.
func isTeamKill(killer, victim *Player) bool {
	if killer == nil || victim == nil {
		return false
	}
	if killer.Team == nil || victim.Team == nil {
		return false
	}
	return *killer.Team == *victim.Team
}

// applyKillStreaks is the kill-streak update function (spec.md §4.4.4).
func applyKillStreaks(s *State, ev event.AnalyzerEvent) {
	if ev.Kind != event.UserMessageKind {
		return
	}

	switch msg := ev.User.(type) {
	case demomsg.DeathMsg:
		killer := s.findByClientIndex(msg.KillerClientIndex - 1)
		victim := s.findByClientIndex(msg.VictimClientIndex - 1)
		teamKill := isTeamKill(killer, victim)

		if victim != nil {
			victim.KillStreaks = append(victim.KillStreaks, KillStreak{})
		}
		if teamKill {
			return
		}
		if killer == nil {
			return
		}
		if len(killer.KillStreaks) == 0 {
			killer.KillStreaks = append(killer.KillStreaks, KillStreak{})
		}
		last := len(killer.KillStreaks) - 1
		killer.KillStreaks[last] = append(killer.KillStreaks[last], KillEntry{Time: s.CurrentTime, Weapon: msg.Weapon})

	case demomsg.RoundState:
		if msg.Value == demomsg.RoundStateReset {
			for _, p := range s.Players {
				p.KillStreaks = append(p.KillStreaks, KillStreak{})
			}
		}
	}
}

// applyWeaponBreakdown is the weapon-breakdown update function (spec.md
// §4.4.5).
func applyWeaponBreakdown(s *State, ev event.AnalyzerEvent) {
	if ev.Kind != event.UserMessageKind {
		return
	}
	msg, ok := ev.User.(demomsg.DeathMsg)
	if !ok {
		return
	}

	killer := s.findByClientIndex(msg.KillerClientIndex - 1)
	if killer == nil {
		return
	}
	victim := s.findByClientIndex(msg.VictimClientIndex - 1)

	tally := killer.WeaponBreakdown[msg.Weapon]
	if isTeamKill(killer, victim) {
		tally.TeamKills++
	} else {
		tally.Kills++
	}
	killer.WeaponBreakdown[msg.Weapon] = tally
}
