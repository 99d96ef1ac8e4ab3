package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doddemo/analyzer/internal/analysis"
	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/demomsg"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/wire"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndListAnalysis(t *testing.T) {
	db := openTestDB(t)

	events := []event.AnalyzerEvent{
		{Kind: event.Initialization},
		{Kind: event.EngineMessageKind, Engine: container.SvcUpdateUserInfo{Index: 1, ID: 1, UserInfo: []byte(`\name\alice\team\allies`)}},
		{Kind: event.UserMessageKind, User: demomsg.TeamScore{Team: wire.TeamAllies, Score: 3}},
		{Kind: event.Finalization},
	}
	state, err := analysis.Run(events, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	meta := DemoMeta{
		Path:              "/tmp/match.dem",
		Hash:              "abc123deadbeef",
		Header:            container.Header{MapName: "dod_anzio"},
		MaxNormalDuration: 10 * time.Second,
	}
	id, err := SaveAnalysis(db, meta, state)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero demo id")
	}

	exists, err := db.DemoExists(meta.Path)
	if err != nil || !exists {
		t.Fatalf("expected demo to exist, err=%v exists=%v", err, exists)
	}

	demos, err := db.ListDemos()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(demos) != 1 || demos[0].MapName != "dod_anzio" {
		t.Fatalf("unexpected demos list: %+v", demos)
	}

	gotID, gotMap, found, err := db.GetDemoByPrefix("abc123")
	if err != nil || !found || gotID != id || gotMap != "dod_anzio" {
		t.Fatalf("unexpected prefix lookup: id=%d map=%s found=%v err=%v", gotID, gotMap, found, err)
	}

	result, err := LoadResult(db, gotID, gotMap)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if len(result.Players) != 1 || result.Players[0].Name != "alice" {
		t.Fatalf("unexpected reloaded result: %+v", result)
	}
	if result.AlliesScore != 3 {
		t.Fatalf("expected allies score 3, got %d", result.AlliesScore)
	}
}
