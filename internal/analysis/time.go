package analysis

import "time"

// GameTime is a monotonic-by-design offset from recording start. Two
// offsets coexist per spec.md §3: ViewdemoOffset (the clock shown during
// replay, taken from SvcTime) and RealOffset (derived from container frame
// timestamps, not currently surfaced by internal/container). Arithmetic
// between two GameTimes uses ViewdemoOffset.
type GameTime struct {
	ViewdemoOffset time.Duration
	RealOffset     time.Duration
}

// advanceViewdemo applies the monotonic clamp from spec.md §4.4.1: a value
// at or below the current offset is ignored unless the current offset is
// still zero (never advanced). Callers only invoke this with d > 0 (the
// SvcTime guard lives in the timing update function), so a zero
// ViewdemoOffset unambiguously means "never set".
func (t *GameTime) advanceViewdemo(d time.Duration) {
	if d > t.ViewdemoOffset || t.ViewdemoOffset == 0 {
		t.ViewdemoOffset = d
	}
}

// advanceReal applies the same monotonic clamp to RealOffset.
func (t *GameTime) advanceReal(d time.Duration) {
	if d > t.RealOffset || t.RealOffset == 0 {
		t.RealOffset = d
	}
}

// Sub returns t - other using ViewdemoOffset, per spec.md §3.
func (t GameTime) Sub(other GameTime) time.Duration {
	return t.ViewdemoOffset - other.ViewdemoOffset
}
