//go:build darwin

package supervisor

import (
	"os/exec"
	"strconv"
	"strings"
)

// probeCwd asks lsof for the live working directory of a process. macOS has
// no procfs, so this shells out the same way the app shells out for other
// OS facts.
func probeCwd(pid int) (string, bool) {
	if pid <= 0 {
		return "", false
	}
	out, err := exec.Command("lsof", "-a", "-p", strconv.Itoa(pid), "-d", "cwd", "-Fn").Output()
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "n") && len(line) > 1 {
			return line[1:], true
		}
	}
	return "", false
}
