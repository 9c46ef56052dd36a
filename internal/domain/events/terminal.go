package events

// TerminalOutputPayload carries a raw chunk of process output for a session.
// Chunks are delivered in the order the OS stream produced them.
type TerminalOutputPayload struct {
	Data      string `json:"data"`
	SessionID string `json:"session_id"`
}

// TerminalExitPayload signals that the process backing a session exited.
// It is terminal for the session id: no output event for the same process
// instance follows it.
type TerminalExitPayload struct {
	ExitCode  int    `json:"exit_code"`
	SessionID string `json:"session_id"`
}

// NewTerminalOutputEvent creates a terminal_output event tagged with the session id.
func NewTerminalOutputEvent(sessionID, data string) *BaseEvent {
	return NewEventWithContext(EventTypeTerminalOutput, TerminalOutputPayload{
		Data:      data,
		SessionID: sessionID,
	}, "", sessionID)
}

// NewTerminalExitEvent creates a terminal_exit event tagged with the session id.
func NewTerminalExitEvent(sessionID string, exitCode int) *BaseEvent {
	return NewEventWithContext(EventTypeTerminalExit, TerminalExitPayload{
		ExitCode:  exitCode,
		SessionID: sessionID,
	}, "", sessionID)
}
