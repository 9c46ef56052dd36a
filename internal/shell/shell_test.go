//go:build !windows

package shell

import (
	"strings"
	"testing"
)

func TestResolve_CustomPathWins(t *testing.T) {
	if got := Resolve(ModeCustom, "/opt/fish"); got != "/opt/fish" {
		t.Errorf("Resolve(custom) = %q, want /opt/fish", got)
	}
}

func TestResolve_EnvironmentShellWins(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/zsh")
	if got := Resolve(ModeAuto, ""); got != "/usr/local/bin/zsh" {
		t.Errorf("Resolve(auto) = %q, want $SHELL value", got)
	}
}

func TestResolve_FallbackWithoutEnvironment(t *testing.T) {
	t.Setenv("SHELL", "")
	got := Resolve(ModeAuto, "")
	if got == "" {
		t.Fatal("Resolve(auto) returned empty shell")
	}
	if !strings.HasPrefix(got, "/") {
		t.Errorf("Resolve(auto) = %q, want absolute path", got)
	}
}

func TestIsPowerShell(t *testing.T) {
	cases := []struct {
		shell string
		want  bool
	}{
		{"pwsh", true},
		{"pwsh.exe", true},
		{`C:\Program Files\PowerShell\7\pwsh.exe`, true},
		{"powershell.exe", true},
		{"/bin/bash", false},
		{"cmd.exe", false},
	}
	for _, c := range cases {
		if got := IsPowerShell(c.shell); got != c.want {
			t.Errorf("IsPowerShell(%q) = %v, want %v", c.shell, got, c.want)
		}
	}
}

func TestArgs(t *testing.T) {
	if args := Args("/bin/bash"); args != nil {
		t.Errorf("Args(bash) = %v, want nil", args)
	}

	args := Args("pwsh.exe")
	want := []string{"-ExecutionPolicy", "Bypass", "-NoLogo"}
	if len(args) != len(want) {
		t.Fatalf("Args(pwsh) = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Args(pwsh)[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestPipeFallbackArgs(t *testing.T) {
	if args := PipeFallbackArgs("/bin/bash"); args != nil {
		t.Errorf("PipeFallbackArgs(bash) = %v, want nil", args)
	}

	args := PipeFallbackArgs("powershell.exe")
	if len(args) != 3 || args[0] != "-NoExit" || args[1] != "-Command" {
		t.Fatalf("PipeFallbackArgs(powershell) = %v", args)
	}
	if !strings.Contains(args[2], "UTF8") {
		t.Errorf("fallback command should force UTF-8 encoding: %q", args[2])
	}
}

func TestUTF8Environ(t *testing.T) {
	t.Setenv("LANG", "C")
	env := UTF8Environ()

	want := map[string]string{
		"LANG":             "en_US.UTF-8",
		"LC_ALL":           "en_US.UTF-8",
		"PYTHONIOENCODING": "utf-8",
		"PYTHONUTF8":       "1",
	}
	for _, entry := range env {
		key, value, _ := strings.Cut(entry, "=")
		if expected, ok := want[key]; ok {
			if value != expected {
				t.Errorf("%s = %q, want %q", key, value, expected)
			}
			delete(want, key)
		}
	}
	for key := range want {
		t.Errorf("missing forced variable %s", key)
	}

	// The host LANG=C must not survive alongside the forced value.
	count := 0
	for _, entry := range env {
		if strings.HasPrefix(entry, "LANG=") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("LANG appears %d times, want 1", count)
	}
}

func TestMergeEnviron(t *testing.T) {
	base := []string{"A=1", "B=2"}
	out := MergeEnviron(base, []string{"B=3", "C=4"})

	want := []string{"A=1", "B=3", "C=4"}
	if len(out) != len(want) {
		t.Fatalf("MergeEnviron = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("MergeEnviron[%d] = %q, want %q", i, out[i], want[i])
		}
	}

	// Base slice must not be mutated.
	if base[1] != "B=2" {
		t.Errorf("base mutated: %v", base)
	}

	// Malformed overrides are skipped.
	out = MergeEnviron([]string{"A=1"}, []string{"no-equals", "=empty-key"})
	if len(out) != 1 || out[0] != "A=1" {
		t.Errorf("MergeEnviron with malformed overrides = %v", out)
	}
}
