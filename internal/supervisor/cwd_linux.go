//go:build linux

package supervisor

import (
	"fmt"
	"os"
)

// probeCwd reads the live working directory of a process from procfs.
func probeCwd(pid int) (string, bool) {
	if pid <= 0 {
		return "", false
	}
	cwd, err := os.Readlink(fmt.Sprintf("/proc/%d/cwd", pid))
	if err != nil {
		return "", false
	}
	return cwd, true
}
