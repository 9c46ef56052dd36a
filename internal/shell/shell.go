// Package shell resolves which shell binary backs a terminal session and the
// environment it is spawned with.
package shell

import (
	"os"
	"strings"
)

// Mode selects how the default shell is resolved.
type Mode string

const (
	ModeAuto       Mode = "auto"
	ModePwsh       Mode = "pwsh"
	ModePowershell Mode = "powershell"
	ModeCmd        Mode = "cmd"
	ModeCustom     Mode = "custom"
)

// Resolve returns the shell binary for a mode. A custom path wins outright;
// otherwise resolution is platform specific (see shell_unix.go and
// shell_windows.go).
func Resolve(mode Mode, customPath string) string {
	if mode == ModeCustom && customPath != "" {
		return customPath
	}
	return resolvePlatform(mode)
}

// IsPowerShell reports whether the shell path names a PowerShell binary.
func IsPowerShell(shell string) bool {
	lower := strings.ToLower(shell)
	return strings.Contains(lower, "powershell") || strings.Contains(lower, "pwsh")
}

// Args returns the argument list a shell is launched with. PowerShell needs
// flags to bypass unsigned-script execution restrictions.
func Args(shell string) []string {
	if IsPowerShell(shell) {
		return []string{"-ExecutionPolicy", "Bypass", "-NoLogo"}
	}
	return nil
}

// PipeFallbackArgs returns extra arguments for the piped-child fallback mode.
// PowerShell must additionally stay open and force UTF-8 console encoding,
// since without a PTY the console encoding cannot be inherited.
func PipeFallbackArgs(shell string) []string {
	if IsPowerShell(shell) {
		return []string{
			"-NoExit",
			"-Command",
			"[Console]::OutputEncoding = [System.Text.Encoding]::UTF8; [Console]::InputEncoding = [System.Text.Encoding]::UTF8; $OutputEncoding = [System.Text.Encoding]::UTF8",
		}
	}
	return nil
}

// UTF8Environ returns the host environment with locale and IO-encoding
// variables forced to UTF-8, so multi-byte output renders correctly no matter
// what the host defaults are.
func UTF8Environ() []string {
	return mergeEnviron(os.Environ(), []string{
		"LANG=en_US.UTF-8",
		"LC_ALL=en_US.UTF-8",
		"PYTHONIOENCODING=utf-8",
		"PYTHONUTF8=1",
	})
}

// mergeEnviron applies overrides onto base, replacing entries with the same
// key and appending new ones. Later overrides win.
func mergeEnviron(base, overrides []string) []string {
	out := make([]string, len(base))
	copy(out, base)
	for _, entry := range overrides {
		key, _, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		replaced := false
		for i, existing := range out {
			if k, _, _ := strings.Cut(existing, "="); k == key {
				out[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, entry)
		}
	}
	return out
}

// MergeEnviron is the exported form used by the supervisor to apply
// per-session overrides on top of the UTF-8 environment.
func MergeEnviron(base, overrides []string) []string {
	return mergeEnviron(base, overrides)
}
