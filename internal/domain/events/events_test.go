package events

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTerminalOutputEvent(t *testing.T) {
	e := NewTerminalOutputEvent("s1", "hello")

	if e.Type() != EventTypeTerminalOutput {
		t.Errorf("Type() = %q, want terminal_output", e.Type())
	}
	if e.GetSessionID() != "s1" {
		t.Errorf("GetSessionID() = %q, want s1", e.GetSessionID())
	}
	if e.Timestamp().IsZero() {
		t.Error("Timestamp() is zero")
	}

	p, ok := e.Payload.(TerminalOutputPayload)
	if !ok || p.Data != "hello" || p.SessionID != "s1" {
		t.Errorf("payload = %+v", e.Payload)
	}
}

func TestTerminalExitEvent(t *testing.T) {
	e := NewTerminalExitEvent("s1", 137)
	p := e.Payload.(TerminalExitPayload)
	if p.ExitCode != 137 || p.SessionID != "s1" {
		t.Errorf("payload = %+v", p)
	}
}

func TestEventToJSON(t *testing.T) {
	e := NewSessionCreatedEvent("s1", "w1", "Terminal 1", "claude-code")

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["event"] != "session_created" {
		t.Errorf("event field = %v", decoded["event"])
	}
	if decoded["workspace_id"] != "w1" || decoded["session_id"] != "s1" {
		t.Errorf("context fields = %v / %v", decoded["workspace_id"], decoded["session_id"])
	}
	if !strings.Contains(string(data), "Terminal 1") {
		t.Errorf("payload missing from JSON: %s", data)
	}
}

func TestSetContext(t *testing.T) {
	e := NewEvent(EventTypeStateChanged, StateChangedPayload{Revision: 3})
	if e.GetWorkspaceID() != "" || e.GetSessionID() != "" {
		t.Error("fresh event has context")
	}

	e.SetContext("w1", "s1")
	if e.GetWorkspaceID() != "w1" || e.GetSessionID() != "s1" {
		t.Errorf("SetContext not applied: %q / %q", e.GetWorkspaceID(), e.GetSessionID())
	}
}
