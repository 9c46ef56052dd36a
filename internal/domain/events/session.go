package events

// SessionCreatedPayload represents the payload for session_created events.
type SessionCreatedPayload struct {
	SessionID   string `json:"session_id"`
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	AgentKind   string `json:"agent_kind,omitempty"`
}

// NewSessionCreatedEvent creates a new session_created event.
func NewSessionCreatedEvent(sessionID, workspaceID, title, agentKind string) *BaseEvent {
	return NewEventWithContext(EventTypeSessionCreated, SessionCreatedPayload{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
		Title:       title,
		AgentKind:   agentKind,
	}, workspaceID, sessionID)
}

// SessionRemovedPayload represents the payload for session_removed events.
type SessionRemovedPayload struct {
	SessionID   string `json:"session_id"`
	WorkspaceID string `json:"workspace_id"`
}

// NewSessionRemovedEvent creates a new session_removed event.
func NewSessionRemovedEvent(sessionID, workspaceID string) *BaseEvent {
	return NewEventWithContext(EventTypeSessionRemoved, SessionRemovedPayload{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
	}, workspaceID, sessionID)
}

// SessionRenamedPayload represents the payload for session_renamed events.
type SessionRenamedPayload struct {
	SessionID   string `json:"session_id"`
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
}

// NewSessionRenamedEvent creates a new session_renamed event.
func NewSessionRenamedEvent(sessionID, workspaceID, title string) *BaseEvent {
	return NewEventWithContext(EventTypeSessionRenamed, SessionRenamedPayload{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
		Title:       title,
	}, workspaceID, sessionID)
}

// WorkspaceAddedPayload represents the payload for workspace_added events.
type WorkspaceAddedPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FolderPath string `json:"folder_path"`
}

// NewWorkspaceAddedEvent creates a new workspace_added event.
func NewWorkspaceAddedEvent(id, name, folderPath string) *BaseEvent {
	return NewEventWithContext(EventTypeWorkspaceAdded, WorkspaceAddedPayload{
		ID:         id,
		Name:       name,
		FolderPath: folderPath,
	}, id, "")
}

// WorkspaceRemovedPayload represents the payload for workspace_removed events.
type WorkspaceRemovedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewWorkspaceRemovedEvent creates a new workspace_removed event.
func NewWorkspaceRemovedEvent(id, name, path string) *BaseEvent {
	return NewEventWithContext(EventTypeWorkspaceRemoved, WorkspaceRemovedPayload{
		ID:   id,
		Name: name,
		Path: path,
	}, id, "")
}

// StateChangedPayload notifies observers that the registry state changed and
// a fresh snapshot should be pulled. It deliberately carries no state itself.
type StateChangedPayload struct {
	Revision uint64 `json:"revision"`
}

// NewStateChangedEvent creates a new state_changed event.
func NewStateChangedEvent(revision uint64) *BaseEvent {
	return NewEvent(EventTypeStateChanged, StateChangedPayload{Revision: revision})
}
