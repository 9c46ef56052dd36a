package preview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aterm-app/aterm/internal/registry"
)

func fixedSnapshot(sessions []registry.Session) func() registry.Snapshot {
	return func() registry.Snapshot {
		return registry.Snapshot{Sessions: sessions}
	}
}

func TestSessionActive_WindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last time.Time
		want bool
	}{
		{"well inside window", now.Add(-9 * time.Second), true},
		{"exactly on boundary", now.Add(-10 * time.Second), true},
		{"just outside window", now.Add(-11 * time.Second), false},
		{"never active", time.Time{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sessions := []registry.Session{{ID: "s1", WorkspaceID: "w1", LastActivity: c.last}}
			tr := New(fixedSnapshot(sessions), nil)
			tr.now = func() time.Time { return now }

			if got := tr.SessionActive("s1"); got != c.want {
				t.Errorf("SessionActive = %v, want %v", got, c.want)
			}
		})
	}
}

func TestWorkspaceActive_MaxOverSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []registry.Session{
		{ID: "s1", WorkspaceID: "w1", LastActivity: now.Add(-time.Minute)},
		{ID: "s2", WorkspaceID: "w1", LastActivity: now.Add(-2 * time.Second)},
		{ID: "s3", WorkspaceID: "w2", LastActivity: now.Add(-time.Hour)},
	}
	tr := New(fixedSnapshot(sessions), nil)
	tr.now = func() time.Time { return now }

	if !tr.WorkspaceActive("w1") {
		t.Error("w1 should be active: one session produced recent output")
	}
	if tr.WorkspaceActive("w2") {
		t.Error("w2 should be idle")
	}
	if tr.WorkspaceActive("unknown") {
		t.Error("unknown workspace should be idle")
	}

	ids := tr.ActiveSessionIDs()
	if len(ids) != 1 || ids[0] != "s2" {
		t.Errorf("ActiveSessionIDs = %v, want [s2]", ids)
	}
}

func TestAppend_KeepsLastEightLines(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "\x1b[32mline %d\x1b[0m\n", i)
	}
	tr.Append("s1", b.String())

	lines := tr.Lines("s1")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	// Trailing newline yields an empty final logical line; the seven before
	// it are the tail of the output.
	if lines[0] != "line 14" || lines[6] != "line 20" || lines[7] != "" {
		t.Errorf("unexpected window: %q", lines)
	}
	for _, line := range lines {
		if strings.Contains(line, "\x1b") {
			t.Errorf("escape sequence leaked into preview: %q", line)
		}
	}
}

func TestAppend_IncrementalChunksMergeLines(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	// A line arriving in two chunks stays one logical line.
	tr.Append("s1", "$ make bui")
	tr.Append("s1", "ld\nok\n")

	lines := tr.Lines("s1")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if lines[0] != "$ make build" || lines[1] != "ok" {
		t.Errorf("unexpected lines: %q", lines)
	}
}

func TestAppend_EscapeSequenceSplitAcrossChunks(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	// A color sequence cut mid-parameter by the read boundary.
	tr.Append("s1", "\x1b[3")
	tr.Append("s1", "1mRED\x1b[0m\n")

	lines := tr.Lines("s1")
	if len(lines) != 2 || lines[0] != "RED" {
		t.Fatalf("split CSI leaked: %q", lines)
	}
	if strings.Contains(tr.Preview("s1"), "\x1b") {
		t.Errorf("escape byte survived: %q", tr.Preview("s1"))
	}
}

func TestAppend_SplitTitleSequenceHeldBack(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	// An OSC title update whose BEL terminator arrives in the next chunk.
	tr.Append("s1", "\x1b]0;build ok")
	if got := tr.Preview("s1"); got != "" {
		t.Fatalf("unterminated title sequence leaked: %q", got)
	}

	tr.Append("s1", "\x07hello\n")
	lines := tr.Lines("s1")
	if len(lines) != 2 || lines[0] != "hello" {
		t.Errorf("title text leaked into preview: %q", lines)
	}
}

func TestAppend_LoneTrailingEscapeJoinsNextChunk(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	tr.Append("s1", "done\x1b")
	if got := tr.Preview("s1"); got != "done" {
		t.Fatalf("preview = %q, want %q", got, "done")
	}

	tr.Append("s1", "[32m ok\x1b[0m\n")
	lines := tr.Lines("s1")
	if len(lines) != 2 || lines[0] != "done ok" {
		t.Errorf("rejoined sequence leaked: %q", lines)
	}
}

func TestAppend_OversizedPendingFragmentFlushed(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	// A "sequence" that never terminates must not buffer forever.
	tr.Append("s1", "\x1b]0;"+strings.Repeat("x", 300))
	if got := tr.Preview("s1"); strings.Contains(got, "\x1b") {
		t.Errorf("escape byte survived the flush: %q", got)
	}
}

func TestAppend_StripOnlyChunkIsIgnored(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	tr.Append("s1", "\x1b[0m\x1b[?25h")
	if got := tr.Preview("s1"); got != "" {
		t.Errorf("control-only chunk produced preview %q", got)
	}
}

func TestRemove_DropsState(t *testing.T) {
	tr := New(fixedSnapshot(nil), nil)

	tr.Append("s1", "hello\n")
	tr.Remove("s1")

	if tr.Preview("s1") != "" {
		t.Error("preview should be empty after Remove")
	}
	if tr.Lines("s1") != nil {
		t.Error("lines should be nil after Remove")
	}
}

func TestPoll_DetectsIdleTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []registry.Session{{ID: "s1", WorkspaceID: "w1", LastActivity: now}}
	tr := New(fixedSnapshot(sessions), nil)

	current := now
	tr.now = func() time.Time { return current }

	// First poll flips the session from unknown to active.
	if !tr.Poll() {
		t.Error("first poll should report a transition to active")
	}
	// Nothing changed.
	if tr.Poll() {
		t.Error("steady state should report no transition")
	}
	// Time passes beyond the window with no new output: went idle.
	current = now.Add(11 * time.Second)
	if !tr.Poll() {
		t.Error("poll should report the idle transition")
	}
	if tr.Poll() {
		t.Error("idle steady state should report no transition")
	}
}
