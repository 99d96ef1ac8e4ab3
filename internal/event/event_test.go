package event

import (
	"testing"

	"github.com/doddemo/analyzer/internal/container"
)

func TestStreamBracketsWithSentinels(t *testing.T) {
	events := Stream(nil)
	if len(events) != 2 {
		t.Fatalf("expected 2 events for an empty frame list, got %d", len(events))
	}
	if events[0].Kind != Initialization || events[1].Kind != Finalization {
		t.Fatalf("unexpected sentinel kinds: %+v", events)
	}
}

func TestStreamPreservesWireOrderAndDropsBadDecodes(t *testing.T) {
	frames := []container.Frame{
		{Messages: []container.NetMessage{
			{Engine: container.SvcTime{Time: 1.0}},
			{User: &container.UserMessage{Name: "DeathMsg", Data: []byte{1, 2, 5}}},
			{User: &container.UserMessage{Name: "DeathMsg", Data: []byte{1, 2}}}, // too short, drops
			{User: &container.UserMessage{Name: "NotReal", Data: nil}},           // unknown, drops
		}},
	}

	events := Stream(frames)
	// Initialization, SvcTime, DeathMsg, Finalization.
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	if events[1].Kind != EngineMessageKind {
		t.Fatalf("expected engine message at index 1, got %+v", events[1])
	}
	if events[2].Kind != UserMessageKind {
		t.Fatalf("expected user message at index 2, got %+v", events[2])
	}
	if events[3].Kind != Finalization {
		t.Fatalf("expected finalization at tail, got %+v", events[3])
	}
}
