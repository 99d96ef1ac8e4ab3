// Package analysis implements the event-sourced analysis pipeline: the
// shared AnalyzerState and the fixed sequence of update functions the
// driver folds every event through (spec.md §4, §4.5).
package analysis

import (
	"time"

	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/event"
)

// Run folds an ordered AnalyzerEvent stream into a final State, applying the
// update functions in the fixed order spec.md §4.5 mandates: timing,
// player identity, scoreboard, kill-streaks, weapon-breakdown, team-scores,
// rounds, clan-match. It returns an error if an AlliesWin/AxisWin round
// state arrives with no Active round at the tail (spec.md §7) — the one
// fatal condition in this pipeline.
func Run(events []event.AnalyzerEvent, maxNormalDuration time.Duration) (*State, error) {
	s := NewState(maxNormalDuration)

	for _, ev := range events {
		applyTiming(s, ev)

		if ev.Kind == event.EngineMessageKind {
			if sui, ok := ev.Engine.(container.SvcUpdateUserInfo); ok {
				applyPlayerIdentity(s, sui)
			}
		}

		applyScoreboard(s, ev)
		applyKillStreaks(s, ev)
		applyWeaponBreakdown(s, ev)
		applyTeamScores(s, ev)
		if err := applyRounds(s, ev); err != nil {
			return nil, err
		}
		applyClanMatch(s, ev)
	}

	return s, nil
}
