//go:build !windows

package shell

import (
	"os"
	"runtime"
)

// resolvePlatform picks the default shell on Unix-like hosts: the
// environment-declared shell wins, then a fixed fallback path.
func resolvePlatform(_ Mode) string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	if runtime.GOOS == "darwin" {
		return "/bin/zsh"
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash"
	}
	return "/bin/sh"
}
