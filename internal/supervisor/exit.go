package supervisor

import (
	"errors"
	"os/exec"
)

// exitCode extracts the process exit code from a Wait error. A signal-killed
// process reports the shell convention 128+signal via ExitCode; anything
// unidentifiable reports -1.
func exitCode(err error, cmd *exec.Cmd) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
