//go:build windows

package shell

import (
	"os"
	"path/filepath"
)

// pwshInstallPaths are probed in order for a modern PowerShell 7 binary.
func pwshInstallPaths() []string {
	paths := []string{
		`C:\Program Files\PowerShell\7\pwsh.exe`,
		`C:\Program Files (x86)\PowerShell\7\pwsh.exe`,
	}
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		paths = append(paths, filepath.Join(localAppData, `Microsoft\WindowsApps\pwsh.exe`))
	}
	return paths
}

// resolvePlatform picks the default shell on Windows: PowerShell 7 if
// installed, then legacy PowerShell, then cmd.
func resolvePlatform(mode Mode) string {
	if mode == ModeAuto || mode == ModePwsh {
		for _, p := range pwshInstallPaths() {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		if mode == ModePwsh {
			return "pwsh.exe"
		}
	}
	if mode == ModeAuto || mode == ModePowershell {
		return "powershell.exe"
	}
	if mode == ModeCmd {
		return "cmd.exe"
	}
	return "powershell.exe"
}
