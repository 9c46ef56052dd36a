package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aterm-app/aterm/internal/agent"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Terminal.ShellMode != "auto" {
		t.Errorf("shell_mode = %q, want auto", cfg.Terminal.ShellMode)
	}
	if cfg.Terminal.FontSize != 13 {
		t.Errorf("font_size = %d, want 13", cfg.Terminal.FontSize)
	}
	if cfg.Agent.Default != string(agent.KindClaudeCode) {
		t.Errorf("agent.default = %q, want claude-code", cfg.Agent.Default)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("ui.theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
terminal:
  shell_mode: custom
  shell_path: /usr/local/bin/fish
  font_size: 15
agent:
  default: gemini-cli
env:
  - key: EDITOR
    value: vim
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Terminal.ShellMode != "custom" || cfg.Terminal.ShellPath != "/usr/local/bin/fish" {
		t.Errorf("terminal config = %+v", cfg.Terminal)
	}
	if cfg.Terminal.FontSize != 15 {
		t.Errorf("font_size = %d, want 15", cfg.Terminal.FontSize)
	}
	if cfg.Agent.Default != "gemini-cli" {
		t.Errorf("agent.default = %q, want gemini-cli", cfg.Agent.Default)
	}
	if len(cfg.Env) != 1 || cfg.Env[0].Key != "EDITOR" || !cfg.Env[0].Enabled {
		t.Errorf("env = %+v", cfg.Env)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad shell mode", "terminal:\n  shell_mode: fish\n"},
		{"custom without path", "terminal:\n  shell_mode: custom\n"},
		{"font size out of range", "terminal:\n  font_size: 200\n"},
		{"unknown agent", "agent:\n  default: skynet\n"},
		{"duplicate env keys", "env:\n  - key: A\n    value: \"1\"\n  - key: A\n    value: \"2\"\n"},
		{"empty env key", "env:\n  - key: \"\"\n    value: x\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(c.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() accepted invalid config")
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Errorf("Default() config fails validation: %v", err)
	}
}

func TestResolveShell(t *testing.T) {
	cfg := Default()
	if got := cfg.ResolveShell(); got != "" {
		t.Errorf("auto mode ResolveShell() = %q, want empty (platform default)", got)
	}

	cfg.Terminal.ShellMode = "custom"
	cfg.Terminal.ShellPath = "/opt/shell"
	if got := cfg.ResolveShell(); got != "/opt/shell" {
		t.Errorf("custom mode ResolveShell() = %q, want /opt/shell", got)
	}
}

func TestDefaultAgent(t *testing.T) {
	cfg := Default()
	if cfg.DefaultAgent() != agent.KindClaudeCode {
		t.Errorf("DefaultAgent() = %q, want claude-code", cfg.DefaultAgent())
	}

	cfg.Agent.Default = ""
	if cfg.DefaultAgent() != agent.KindNone {
		t.Errorf("empty DefaultAgent() = %q, want none", cfg.DefaultAgent())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terminal.FontSize = 16
	cfg.UI.Theme = "light"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save error = %v", err)
	}
	if loaded.Terminal.FontSize != 16 || loaded.UI.Theme != "light" {
		t.Errorf("round-trip lost fields: %+v", loaded)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Terminal.ShellMode = "bogus"
	if err := Save(cfg, filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("Save() accepted invalid config")
	}
}
