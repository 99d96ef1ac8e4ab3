// Package event adapts container.Frame sequences into the ordered
// AnalyzerEvent stream the analysis driver folds over (spec.md §4.2).
package event

import (
	"reflect"

	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/demomsg"
)

// Kind tags an AnalyzerEvent's variant.
type Kind int

const (
	Initialization Kind = iota
	Finalization
	EngineMessageKind
	UserMessageKind
)

// AnalyzerEvent is the tagged union consumed by every update function in
// internal/analysis. Exactly one of Engine / User is populated, selected by
// Kind.
type AnalyzerEvent struct {
	Kind   Kind
	Engine container.EngineMessage
	User   demomsg.Message
}

// Stream converts an ordered sequence of container frames into the event
// stream spec.md §4.2 describes: one Initialization sentinel, then each
// frame's inner messages in wire order, then one Finalization sentinel.
// Decode failures on individual user messages are silently dropped — they
// do not halt the stream, since unrecognized messages are common.
func Stream(frames []container.Frame) []AnalyzerEvent {
	events := make([]AnalyzerEvent, 0, len(frames)+2)
	events = append(events, AnalyzerEvent{Kind: Initialization})

	for _, frame := range frames {
		events = append(events, frameToEvents(frame)...)
	}

	events = append(events, AnalyzerEvent{Kind: Finalization})
	return events
}

func frameToEvents(frame container.Frame) []AnalyzerEvent {
	events := make([]AnalyzerEvent, 0, len(frame.Messages))
	for _, msg := range frame.Messages {
		switch {
		case msg.Engine != nil:
			events = append(events, AnalyzerEvent{Kind: EngineMessageKind, Engine: msg.Engine})
		case msg.User != nil:
			decoded, err := demomsg.Decode(msg.User.Name, msg.User.Data)
			if err != nil {
				continue
			}
			// Decode returns pointer records; the update functions in
			// internal/analysis match on record values.
			if v := reflect.ValueOf(decoded); v.Kind() == reflect.Pointer {
				decoded = v.Elem().Interface().(demomsg.Message)
			}
			events = append(events, AnalyzerEvent{Kind: UserMessageKind, User: decoded})
		}
	}
	return events
}
