package agent

import "testing"

func TestLookup(t *testing.T) {
	p := Lookup(KindClaudeCode)
	if p == nil {
		t.Fatal("Lookup(claude-code) returned nil")
	}
	if p.Name != "Claude Code" || p.Command != "claude" {
		t.Errorf("unexpected preset: %+v", p)
	}

	if Lookup("does-not-exist") != nil {
		t.Error("Lookup of unknown kind should return nil")
	}
}

func TestIsAgent(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindClaudeCode, true},
		{KindGeminiCLI, true},
		{KindCodexCLI, true},
		{KindCopilotCLI, true},
		{KindNone, false},
		{"", false},
		{"bogus", false},
	}
	for _, c := range cases {
		if got := IsAgent(c.kind); got != c.want {
			t.Errorf("IsAgent(%q) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestPresets_AllHaveVisualIdentity(t *testing.T) {
	for _, p := range Presets {
		if p.ID == "" || p.Name == "" || p.Icon == "" || p.Color == "" {
			t.Errorf("preset %q missing identity fields: %+v", p.ID, p)
		}
	}
	// The plain-shell preset has no auto-start command.
	if none := Lookup(KindNone); none == nil || none.Command != "" {
		t.Error("none preset should exist without a command")
	}
}

func TestDefault(t *testing.T) {
	if Default().ID != KindClaudeCode {
		t.Errorf("Default() = %v, want %v", Default().ID, KindClaudeCode)
	}
}
