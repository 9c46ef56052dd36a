// Package events defines all event types used in aterm.
package events

import (
	"encoding/json"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Terminal events
	EventTypeTerminalOutput EventType = "terminal_output"
	EventTypeTerminalExit   EventType = "terminal_exit"

	// Session events
	EventTypeSessionCreated EventType = "session_created"
	EventTypeSessionRemoved EventType = "session_removed"
	EventTypeSessionRenamed EventType = "session_renamed"

	// Workspace events
	EventTypeWorkspaceAdded   EventType = "workspace_added"
	EventTypeWorkspaceRemoved EventType = "workspace_removed"
	EventTypeStateChanged     EventType = "state_changed"

	// Settings events
	EventTypeSettingsReloaded EventType = "settings_reloaded"

	// Error events
	EventTypeError EventType = "error"
)

// Event is the base interface for all events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// Timestamp returns when the event occurred.
	Timestamp() time.Time

	// ToJSON serializes the event to JSON.
	ToJSON() ([]byte, error)

	// GetWorkspaceID returns the workspace ID (may be empty).
	GetWorkspaceID() string

	// GetSessionID returns the session ID (may be empty).
	GetSessionID() string
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType   EventType   `json:"event"`
	EventTime   time.Time   `json:"timestamp"`
	WorkspaceID string      `json:"workspace_id,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	Payload     interface{} `json:"payload"`
}

// SetContext sets the workspace and session context for an event.
func (e *BaseEvent) SetContext(workspaceID, sessionID string) {
	e.WorkspaceID = workspaceID
	e.SessionID = sessionID
}

// GetWorkspaceID returns the workspace ID.
func (e *BaseEvent) GetWorkspaceID() string {
	return e.WorkspaceID
}

// GetSessionID returns the session ID.
func (e *BaseEvent) GetSessionID() string {
	return e.SessionID
}

// Type returns the event type.
func (e *BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e *BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// ToJSON serializes the event to JSON.
func (e *BaseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NewEvent creates a new base event with the given type and payload.
func NewEvent(eventType EventType, payload interface{}) *BaseEvent {
	return &BaseEvent{
		EventType: eventType,
		EventTime: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewEventWithContext creates a new event with workspace and session context.
func NewEventWithContext(eventType EventType, payload interface{}, workspaceID, sessionID string) *BaseEvent {
	return &BaseEvent{
		EventType:   eventType,
		EventTime:   time.Now().UTC(),
		WorkspaceID: workspaceID,
		SessionID:   sessionID,
		Payload:     payload,
	}
}
