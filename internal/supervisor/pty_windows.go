//go:build windows

package supervisor

// ptyAvailable reports false on Windows: no ConPTY support in the PTY
// library used here, so sessions run in piped-child mode.
func ptyAvailable() bool {
	return false
}

// ptyBackend is never selected on Windows; it exists so the strategy table
// compiles on every platform.
type ptyBackend struct{}

func (ptyBackend) name() string { return "pty" }

func (ptyBackend) start(shellPath string, args []string, cwd string, env []string) (procHandle, error) {
	return pipeBackend{}.start(shellPath, args, cwd, env)
}
