package supervisor

import (
	"io"
	"os/exec"
)

// pipeBackend spawns children with plain pipes. This is the degraded
// fallback when pseudo-terminal allocation is unavailable: bidirectional
// text streaming still works, but there is no resize ioctl and stdout/stderr
// interleaving is not TTY-ordered.
type pipeBackend struct{}

func (pipeBackend) name() string { return "pipe" }

func (pipeBackend) start(shellPath string, args []string, cwd string, env []string) (procHandle, error) {
	cmd := exec.Command(shellPath, args...)
	cmd.Dir = cwd
	cmd.Env = env

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	// Both output streams feed one pipe; exec.Cmd's copy goroutines finish
	// before Wait returns, after which the writer is closed so the reader
	// sees EOF.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, err
	}

	h := &pipeHandle{
		cmd:    cmd,
		stdin:  stdin,
		out:    pr,
		exited: make(chan int, 1),
	}
	go func() {
		err := cmd.Wait()
		_ = pw.Close()
		h.exited <- exitCode(err, cmd)
	}()
	return h, nil
}

// pipeHandle backs a session with a plain piped child process.
type pipeHandle struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *io.PipeReader
	exited chan int
}

func (h *pipeHandle) Reader() io.Reader {
	return h.out
}

func (h *pipeHandle) Write(p []byte) (int, error) {
	return h.stdin.Write(p)
}

// Resize is a no-op: a piped child has no terminal to resize.
func (h *pipeHandle) Resize(cols, rows uint16) error {
	return nil
}

func (h *pipeHandle) Terminate() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}

func (h *pipeHandle) Wait() int {
	return <-h.exited
}

func (h *pipeHandle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

func (h *pipeHandle) TTY() bool { return false }
