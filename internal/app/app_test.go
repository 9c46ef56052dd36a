//go:build !windows

package app

import (
	"context"
	"testing"

	"github.com/aterm-app/aterm/internal/config"
	"github.com/aterm-app/aterm/internal/domain/events"
)

// newTestApp assembles a core against a throwaway home so the snippet
// database and workspace declaration never touch the real user profile.
func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a, err := New(config.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestApp_StartStop(t *testing.T) {
	a := newTestApp(t)

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Start is idempotent.
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	if a.Hub() == nil || a.Supervisor() == nil || a.Registry() == nil ||
		a.Tracker() == nil || a.Snippets() == nil {
		t.Fatal("assembled core exposes a nil component")
	}

	snap := a.Registry().Snapshot()
	if len(snap.Workspaces) != 0 {
		t.Errorf("fresh profile loaded %d workspaces, want 0", len(snap.Workspaces))
	}

	a.Stop()
	a.Stop()
}

func TestApp_OutputEventFeedsPreviewAndActivity(t *testing.T) {
	a := newTestApp(t)
	defer a.Stop()
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	a.onEvent(events.NewTerminalOutputEvent("s1", "building...\ndone\n"))

	if got := a.Tracker().Preview("s1"); got == "" {
		t.Error("terminal output did not reach the preview buffer")
	}

	a.onEvent(events.NewSessionRemovedEvent("s1", "w1"))
	if got := a.Tracker().Preview("s1"); got != "" {
		t.Errorf("preview survived session removal: %q", got)
	}
}

func TestApp_ApplyConfigSwapsAndAnnounces(t *testing.T) {
	a := newTestApp(t)
	defer a.Stop()
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	next := config.Default()
	next.Terminal.FontSize = 18
	a.applyConfig(next)

	if a.Config().Terminal.FontSize != 18 {
		t.Errorf("font size = %d after reload, want 18", a.Config().Terminal.FontSize)
	}
}
