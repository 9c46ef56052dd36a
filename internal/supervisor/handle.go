package supervisor

import "io"

// procHandle is the single interface both process backings implement. The
// strategy (PTY or piped child) is picked once at supervisor construction,
// never re-checked per call.
type procHandle interface {
	// Reader streams the process output. For a PTY this is the master side;
	// for a piped child it interleaves stdout and stderr.
	Reader() io.Reader

	// Write forwards input to the process.
	Write(p []byte) (int, error)

	// Resize updates the terminal size. No-op without a real TTY.
	Resize(cols, rows uint16) error

	// Terminate signals the process to exit. Best-effort.
	Terminate() error

	// Wait blocks until the process has exited and returns its exit code.
	Wait() int

	// PID returns the OS process id.
	PID() int

	// TTY reports whether the child sees a real terminal device.
	TTY() bool
}

// backend spawns a procHandle for a resolved shell invocation.
type backend interface {
	start(shellPath string, args []string, cwd string, env []string) (procHandle, error)
	name() string
}
