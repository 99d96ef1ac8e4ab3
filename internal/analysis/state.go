package analysis

import "time"

// DefaultMaxNormalDuration is the clan-match detector's default timeout
// (spec.md §4.4.8).
const DefaultMaxNormalDuration = 10 * time.Second

// DemoInfo is the opaque container-header pass-through spec.md §6 requires.
type DemoInfo struct {
	DemoProtocol    int32
	NetworkProtocol int32
	MapName         string
}

// State is the aggregate AnalyzerState of spec.md §3: the single mutable
// struct every update function reads and writes. Players are stored as a
// flat ordered sequence with linear lookup, per spec.md §9 — demos carry at
// most a few dozen players, so two-sided indexes would add bookkeeping
// without a measurable benefit.
type State struct {
	CurrentTime GameTime
	Players     []*Player
	Rounds      []Round
	TeamScores  TeamScores
	ClanMatch   ClanMatchDetection

	maxNormalDuration time.Duration
}

// NewState returns a zero-valued AnalyzerState parameterized by the
// clan-match detector's timeout (spec.md §4.4.8).
func NewState(maxNormalDuration time.Duration) *State {
	if maxNormalDuration <= 0 {
		maxNormalDuration = DefaultMaxNormalDuration
	}
	return &State{maxNormalDuration: maxNormalDuration}
}

// findByClientIndex returns the unique Connected player with the given
// client id, or nil. Linear scan per spec.md §4.3.
func (s *State) findByClientIndex(clientIndex uint8) *Player {
	for _, p := range s.Players {
		if p.Connection.Connected && p.Connection.ClientID == clientIndex {
			return p
		}
	}
	return nil
}

// findByID returns the player with the given PlayerGlobalId, or nil.
func (s *State) findByID(id PlayerGlobalId) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
