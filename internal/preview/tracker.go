// Package preview derives two display-only signals from terminal output:
// a per-session rolling text preview and a "recently active" flag. Neither
// feeds back into session logic, and both may drop data.
package preview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aterm-app/aterm/internal/ansi"
	"github.com/aterm-app/aterm/internal/registry"
)

const (
	// ActivityWindow is how long after the last output a session still
	// counts as active. The boundary is inclusive.
	ActivityWindow = 10 * time.Second

	// pollInterval drives the idle-transition recomputation. Polling rather
	// than pure event-driven updates makes "went idle" visible even when no
	// new output arrives.
	pollInterval = time.Second

	// maxPreviewLines bounds the rolling preview buffer.
	maxPreviewLines = 8

	// maxPendingEscape bounds how long a chunk tail may be held back while
	// waiting for an escape-sequence terminator. Past this the fragment is
	// treated as garbage and stripped as-is.
	maxPendingEscape = 128
)

// Tracker maintains preview buffers and polls activity state.
type Tracker struct {
	stripper *ansi.Stripper
	snapshot func() registry.Snapshot
	onChange func()

	mu       sync.Mutex
	previews map[string]string
	pending  map[string]string
	active   map[string]bool

	now func() time.Time
}

// New creates a tracker. snapshot supplies registry state for the activity
// poll; onChange fires when any session's active flag flips and may be nil.
func New(snapshot func() registry.Snapshot, onChange func()) *Tracker {
	return &Tracker{
		stripper: ansi.NewStripper(),
		snapshot: snapshot,
		onChange: onChange,
		previews: make(map[string]string),
		pending:  make(map[string]string),
		active:   make(map[string]bool),
		now:      time.Now,
	}
}

// Append folds a raw output chunk into a session's preview: strip control
// sequences, append, re-split, keep the last lines. Reads split escape
// sequences at arbitrary byte boundaries, so an unterminated trailing
// sequence is held back and prepended to the next chunk before stripping.
func (t *Tracker) Append(sessionID, chunk string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data := t.pending[sessionID] + chunk
	delete(t.pending, sessionID)
	if i := ansi.IncompleteSuffix(data); i >= 0 && len(data)-i <= maxPendingEscape {
		t.pending[sessionID] = data[i:]
		data = data[:i]
	}

	stripped := t.stripper.Strip(data)
	if stripped == "" {
		return
	}

	text := t.previews[sessionID] + stripped
	lines := strings.Split(text, "\n")
	if len(lines) > maxPreviewLines {
		lines = lines[len(lines)-maxPreviewLines:]
	}
	t.previews[sessionID] = strings.Join(lines, "\n")
}

// Preview returns the current rolling preview text for a session.
func (t *Tracker) Preview(sessionID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.previews[sessionID]
}

// Lines returns the preview split into at most 8 logical lines.
func (t *Tracker) Lines(sessionID string) []string {
	t.mu.Lock()
	text, ok := t.previews[sessionID]
	t.mu.Unlock()
	if !ok || text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Remove drops all state for a session. Called when the session is removed
// so buffers cannot leak across the session's lifetime.
func (t *Tracker) Remove(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.previews, sessionID)
	delete(t.pending, sessionID)
	delete(t.active, sessionID)
}

// SessionActive reports whether a session produced output within the
// activity window. The window boundary is inclusive.
func (t *Tracker) SessionActive(sessionID string) bool {
	snap := t.snapshot()
	now := t.now()
	for _, s := range snap.Sessions {
		if s.ID == sessionID {
			return isActive(s.LastActivity, now)
		}
	}
	return false
}

// WorkspaceActive reports workspace-level activity: the max last-activity
// timestamp over all the workspace's sessions, tested against the window.
func (t *Tracker) WorkspaceActive(workspaceID string) bool {
	snap := t.snapshot()
	now := t.now()
	for _, s := range snap.Sessions {
		if s.WorkspaceID == workspaceID && isActive(s.LastActivity, now) {
			return true
		}
	}
	return false
}

// ActiveSessionIDs returns the ids of all currently active sessions.
func (t *Tracker) ActiveSessionIDs() []string {
	snap := t.snapshot()
	now := t.now()
	var out []string
	for _, s := range snap.Sessions {
		if isActive(s.LastActivity, now) {
			out = append(out, s.ID)
		}
	}
	return out
}

// Run polls activity until the context is cancelled, firing onChange on
// every idle/active transition.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	log.Debug().Msg("activity poller started")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("activity poller stopped")
			return
		case <-ticker.C:
			if t.Poll() && t.onChange != nil {
				t.onChange()
			}
		}
	}
}

// Poll recomputes the active set from the current snapshot and reports
// whether any session's flag flipped since the previous poll.
func (t *Tracker) Poll() bool {
	snap := t.snapshot()
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	changed := false
	seen := make(map[string]bool, len(snap.Sessions))
	for _, s := range snap.Sessions {
		seen[s.ID] = true
		cur := isActive(s.LastActivity, now)
		if cur != t.active[s.ID] {
			changed = true
		}
		t.active[s.ID] = cur
	}
	for id := range t.active {
		if !seen[id] {
			delete(t.active, id)
		}
	}
	return changed
}

func isActive(last time.Time, now time.Time) bool {
	if last.IsZero() {
		return false
	}
	return now.Sub(last) <= ActivityWindow
}
