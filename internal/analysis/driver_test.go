package analysis

import (
	"testing"
	"time"

	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

func userInfo(index uint8, id uint32, sid string, name string, team string) event.AnalyzerEvent {
	blob := "\\name\\" + name + "\\team\\" + team
	if sid != "" {
		blob += "\\*sid\\" + sid
	}
	return event.AnalyzerEvent{
		Kind: event.EngineMessageKind,
		Engine: container.SvcUpdateUserInfo{
			Index:    index,
			ID:       id,
			UserInfo: []byte(blob),
		},
	}
}

func svcTime(t float32) event.AnalyzerEvent {
	return event.AnalyzerEvent{Kind: event.EngineMessageKind, Engine: container.SvcTime{Time: t}}
}

func userMsg(m demomsg.Message) event.AnalyzerEvent {
	return event.AnalyzerEvent{Kind: event.UserMessageKind, User: m}
}

func TestPlayerIdentityStableAcrossReconnect(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(1, 100, "76561197960265729", "alice", "allies"),
		{Kind: event.EngineMessageKind, Engine: container.SvcUpdateUserInfo{Index: 1, ID: 100}}, // empty userinfo, slot 1 disconnects
		userInfo(2, 100, "76561197960265729", "alice", "allies"),
		{Kind: event.Finalization},
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Players) != 1 {
		t.Fatalf("expected 1 player across reconnect, got %d", len(s.Players))
	}
	if !s.Players[0].Connection.Connected || s.Players[0].Connection.ClientID != 2 {
		t.Fatalf("expected player reconnected on slot 2, got %+v", s.Players[0].Connection)
	}
}

func TestSlotUniquenessOnOccupantReplace(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(1, 100, "76561197960265729", "alice", "allies"),
		userInfo(1, 200, "76561197960265730", "bob", "axis"),
		{Kind: event.Finalization},
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	connected := 0
	for _, p := range s.Players {
		if p.Connection.Connected {
			connected++
			if p.Name != "bob" {
				t.Fatalf("expected bob to hold slot 1, got %s", p.Name)
			}
		}
	}
	if connected != 1 {
		t.Fatalf("expected exactly 1 connected player on slot 1, got %d", connected)
	}
}

func TestRoundTailAtMostOneActive(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateAlliesWin}), // completes the initial round
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateAlliesWin}),
	}
	_, err := Run(events, 0)
	if err == nil {
		t.Fatal("expected fatal error for AlliesWin with no active round")
	}
}

func TestRoundLifecycle(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		svcTime(1.0),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateReset}),
		svcTime(2.0),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateAlliesWin}),
		{Kind: event.Finalization},
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Rounds) != 2 {
		t.Fatalf("expected 2 rounds (initial + reset), got %d", len(s.Rounds))
	}
	last := s.Rounds[len(s.Rounds)-1]
	if last.IsActive {
		t.Fatal("expected tail round completed after AlliesWin")
	}
	if last.Winner == nil || last.Winner.Winner != wire.TeamAllies {
		t.Fatalf("expected allies winner, got %+v", last.Winner)
	}
}

func TestKillStreakAccountingAndBoundaries(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(0, 1, "", "killer", "allies"), // wire index 1
		userInfo(1, 2, "", "victim", "axis"),   // wire index 2
		svcTime(1.0),
		userMsg(demomsg.DeathMsg{KillerClientIndex: 1, VictimClientIndex: 2, Weapon: wire.WeaponMp40}),
		svcTime(2.0),
		userMsg(demomsg.DeathMsg{KillerClientIndex: 1, VictimClientIndex: 2, Weapon: wire.WeaponMp40}),
		{Kind: event.Finalization},
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	killer := s.findByID(s.Players[0].ID)
	tally := killer.WeaponBreakdown[wire.WeaponMp40]
	if tally.Kills != 2 {
		t.Fatalf("expected 2 recorded kills in weapon breakdown, got %d", tally.Kills)
	}
	if len(killer.KillStreaks) != 1 || len(killer.KillStreaks[0]) != 2 {
		t.Fatalf("expected one streak of 2 kills, got %+v", killer.KillStreaks)
	}
	if killer.KillStreaks[0][1].Time.ViewdemoOffset < killer.KillStreaks[0][0].Time.ViewdemoOffset {
		t.Fatal("kill streak entries must be non-decreasing in time")
	}
}

func TestTeamKillDoesNotExtendStreakOrRoundTally(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(0, 1, "", "killer", "allies"), // wire index 1
		userInfo(1, 2, "", "victim", "allies"), // wire index 2
		userMsg(demomsg.DeathMsg{KillerClientIndex: 1, VictimClientIndex: 2, Weapon: wire.WeaponMp40}),
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	killer := s.findByID(s.Players[0].ID)
	if len(killer.KillStreaks) != 0 {
		t.Fatalf("teamkill must not extend killer's streak, got %+v", killer.KillStreaks)
	}
	tally := killer.WeaponBreakdown[wire.WeaponMp40]
	if tally.TeamKills != 1 || tally.Kills != 0 {
		t.Fatalf("expected 1 teamkill, 0 kills, got %+v", tally)
	}
	active := s.Rounds[len(s.Rounds)-1]
	if active.AlliesKills != 0 || active.AxisKills != 0 {
		t.Fatalf("teamkill must not contribute to round tally, got %+v", active)
	}
}

func TestClanMatchIdempotenceWithoutReset(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userMsg(demomsg.ScoreShort{ClientIndex: 1}),
		{Kind: event.Finalization},
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.ClanMatch.State != WaitingForReset {
		t.Fatalf("expected WaitingForReset with no Reset observed, got %v", s.ClanMatch.State)
	}
}

func TestClanMatchTimeout(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(1, 1, "", "alice", "allies"),
		userMsg(demomsg.ScoreShort{ClientIndex: 1, Score: 5}),
		svcTime(1.0),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateReset}),
		svcTime(20.0), // past the 5s threshold configured below
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateNormal}),
	}
	s, err := Run(events, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if s.ClanMatch.State != WaitingForReset {
		t.Fatalf("expected timeout to rearm WaitingForReset, got %v", s.ClanMatch.State)
	}
}

func TestClanMatchTimeoutWithNoTrailingUserMessage(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(1, 1, "", "alice", "allies"),
		svcTime(1.0),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateReset}),
		svcTime(20.0), // past the 5s threshold, no UserMessage follows
	}
	s, err := Run(events, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if s.ClanMatch.State != WaitingForReset {
		t.Fatalf("expected svcTime alone to rearm WaitingForReset, got %v", s.ClanMatch.State)
	}
}

func TestClanMatchGoesLiveAndClearsState(t *testing.T) {
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		userInfo(1, 1, "", "alice", "allies"),
		svcTime(1.0),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateReset}),
		userMsg(demomsg.RoundState{Value: demomsg.RoundStateNormal}),
	}
	s, err := Run(events, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.ClanMatch.State != MatchIsLive {
		t.Fatalf("expected MatchIsLive, got %v", s.ClanMatch.State)
	}
	if len(s.Rounds) != 1 || !s.Rounds[0].IsActive {
		t.Fatalf("expected exactly one fresh active round, got %+v", s.Rounds)
	}
	if len(s.TeamScores) != 0 {
		t.Fatal("expected team score timeline cleared")
	}
}
