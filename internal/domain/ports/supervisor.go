package ports

// SpawnSpec describes how to start the process backing a session.
type SpawnSpec struct {
	SessionID     string
	Cwd           string
	ShellOverride string
	// Env holds extra environment entries (KEY=VALUE) applied on top of the
	// host environment after UTF-8 forcing.
	Env []string
}

// Supervisor is the contract the registry and application layer use to drive
// OS processes. It owns process handles keyed by session id and is never a
// source of truth for session existence, only for liveness and working
// directory facts.
type Supervisor interface {
	// Create spawns the process for a session. Returns false if spawning
	// failed outright; no handle is registered in that case.
	Create(spec SpawnSpec) bool

	// Write forwards raw input to the process. No-op for unknown ids.
	Write(sessionID string, data []byte)

	// Resize updates the terminal size. No-op without a real PTY or for
	// unknown ids.
	Resize(sessionID string, cols, rows uint16)

	// Kill terminates the process and removes its handle. Returns false for
	// unknown ids. Idempotent.
	Kill(sessionID string) bool

	// Restart replaces the process while preserving the session id.
	Restart(sessionID, cwd, shellOverride string) bool

	// WorkingDirectory returns the tracked working directory, or "" if the
	// id is unknown.
	WorkingDirectory(sessionID string) string

	// DisposeAll kills every tracked session.
	DisposeAll()
}
