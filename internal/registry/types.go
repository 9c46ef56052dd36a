// Package registry is the authoritative store of workspaces, terminal
// sessions and focus. All mutation goes through Registry methods; everything
// handed out is a value copy.
package registry

import (
	"path/filepath"
	"time"

	"github.com/aterm-app/aterm/internal/agent"
)

// EnvVar is one environment override. Keys are unique within a set; disabled
// entries contribute nothing to the effective environment.
type EnvVar struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// Workspace is a user-chosen project folder plus its declarative metadata.
// ID and FolderPath are immutable after creation.
type Workspace struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Alias        string     `json:"alias,omitempty"`
	Role         string     `json:"role,omitempty"`
	FolderPath   string     `json:"folder_path"`
	CreatedAt    time.Time  `json:"created_at"`
	DefaultAgent agent.Kind `json:"default_agent,omitempty"`
	EnvVars      []EnvVar   `json:"env_vars,omitempty"`
}

// DisplayName returns the alias if set, else the folder-derived name.
func (w Workspace) DisplayName() string {
	if w.Alias != "" {
		return w.Alias
	}
	if w.Name != "" {
		return w.Name
	}
	return filepath.Base(w.FolderPath)
}

// Session is one terminal instance bound to a workspace. Kind is resolved
// once at creation: agent.KindNone (or empty) means a plain shell. Identity
// is the ID, never the OS process behind it.
type Session struct {
	ID           string     `json:"id"`
	WorkspaceID  string     `json:"workspace_id"`
	Kind         agent.Kind `json:"kind,omitempty"`
	Title        string     `json:"title"`
	Cwd          string     `json:"cwd"`
	LastActivity time.Time  `json:"last_activity,omitzero"`
}

// IsAgent reports whether the session is agent-tagged.
func (s Session) IsAgent() bool {
	return agent.IsAgent(s.Kind)
}

// Snapshot is an immutable copy of the whole registry state for rendering.
type Snapshot struct {
	Workspaces        []Workspace `json:"workspaces"`
	Sessions          []Session   `json:"sessions"`
	ActiveWorkspaceID string      `json:"active_workspace_id,omitempty"`
	FocusedSessionID  string      `json:"focused_session_id,omitempty"`
	Revision          uint64      `json:"revision"`
}

// WorkspaceSessions returns the snapshot's sessions for one workspace, in
// creation order.
func (s Snapshot) WorkspaceSessions(workspaceID string) []Session {
	var out []Session
	for _, sess := range s.Sessions {
		if sess.WorkspaceID == workspaceID {
			out = append(out, sess)
		}
	}
	return out
}
