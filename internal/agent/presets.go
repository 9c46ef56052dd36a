// Package agent defines the agent CLI presets a session can be tagged with.
package agent

// Kind identifies an agent preset. The zero value ("") and KindNone both mean
// a plain shell session.
type Kind string

const (
	KindClaudeCode Kind = "claude-code"
	KindGeminiCLI  Kind = "gemini-cli"
	KindCodexCLI   Kind = "codex-cli"
	KindCopilotCLI Kind = "copilot-cli"
	KindNone       Kind = "none"
)

// Preset describes an agent CLI's visual identity and optional auto-start
// command.
type Preset struct {
	ID      Kind   `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Command string `json:"command,omitempty"`
}

// Presets lists the supported agent CLI tools, in display order.
var Presets = []Preset{
	{ID: KindClaudeCode, Name: "Claude Code", Icon: "✦", Color: "#d97706", Command: "claude"},
	{ID: KindGeminiCLI, Name: "Gemini CLI", Icon: "◇", Color: "#4285f4", Command: "gemini"},
	{ID: KindCodexCLI, Name: "Codex", Icon: "⬡", Color: "#10a37f", Command: "codex"},
	{ID: KindCopilotCLI, Name: "GitHub Copilot", Icon: "⬢", Color: "#6e40c9", Command: "gh copilot"},
	{ID: KindNone, Name: "Terminal", Icon: "⌘", Color: "#888888"},
}

// Lookup returns the preset for a kind, or nil if unknown.
func Lookup(id Kind) *Preset {
	for i := range Presets {
		if Presets[i].ID == id {
			return &Presets[i]
		}
	}
	return nil
}

// IsAgent reports whether the kind names a real agent preset (not a plain
// shell and not unknown).
func IsAgent(id Kind) bool {
	if id == "" || id == KindNone {
		return false
	}
	return Lookup(id) != nil
}

// Default returns the preset used when nothing else is configured.
func Default() Preset {
	if p := Lookup(KindClaudeCode); p != nil {
		return *p
	}
	return Presets[0]
}
