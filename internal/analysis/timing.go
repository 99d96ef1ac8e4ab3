package analysis

import (
	"time"

	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/event"
)

// applyTiming is the timing update function (spec.md §4.4.1).
func applyTiming(s *State, ev event.AnalyzerEvent) {
	if ev.Kind != event.EngineMessageKind {
		return
	}
	svcTime, ok := ev.Engine.(container.SvcTime)
	if !ok || svcTime.Time <= 0 {
		return
	}
	s.CurrentTime.advanceViewdemo(time.Duration(svcTime.Time * float32(time.Second)))
}
