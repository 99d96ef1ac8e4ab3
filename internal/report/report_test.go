package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/doddemo/analyzer/internal/analysis"
	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

func buildTestResult(t *testing.T) Result {
	t.Helper()
	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		{Kind: event.EngineMessageKind, Engine: container.SvcUpdateUserInfo{Index: 0, ID: 1, UserInfo: []byte(`\name\alice\team\allies`)}},
		{Kind: event.UserMessageKind, User: demomsg.DeathMsg{KillerClientIndex: 1, VictimClientIndex: 0, Weapon: wire.WeaponMp40}},
		{Kind: event.UserMessageKind, User: demomsg.TeamScore{Team: wire.TeamAllies, Score: 1}},
		{Kind: event.Finalization},
	}
	state, err := analysis.Run(events, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return BuildResult("dod_anzio", state)
}

func TestPrintScoreboardTableContainsPlayer(t *testing.T) {
	r := buildTestResult(t)
	var buf bytes.Buffer
	PrintScoreboardTableTo(&buf, r)
	if !strings.Contains(buf.String(), "alice") {
		t.Fatalf("expected scoreboard to mention alice, got:\n%s", buf.String())
	}
}

func TestPrintWeaponBreakdownTableContainsWeapon(t *testing.T) {
	r := buildTestResult(t)
	var buf bytes.Buffer
	PrintWeaponBreakdownTable(&buf, r)
	if !strings.Contains(buf.String(), "MP40") {
		t.Fatalf("expected weapon breakdown to mention the weapon, got:\n%s", buf.String())
	}
}

func TestPrintTeamScoreTimelineTableContainsEntry(t *testing.T) {
	r := buildTestResult(t)
	var buf bytes.Buffer
	PrintTeamScoreTimelineTable(&buf, r)
	if !strings.Contains(buf.String(), "Allies") {
		t.Fatalf("expected timeline to mention Allies, got:\n%s", buf.String())
	}
}
