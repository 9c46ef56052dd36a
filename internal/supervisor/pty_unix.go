//go:build !windows

package supervisor

import (
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// defaultWinsize is the size a session starts with before the first resize
// arrives from the rendering surface.
var defaultWinsize = pty.Winsize{Rows: 30, Cols: 120}

// ptyAvailable probes pseudo-terminal allocation once. Selecting the backing
// strategy happens at supervisor construction, not per spawn.
func ptyAvailable() bool {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return false
	}
	_ = tty.Close()
	_ = ptmx.Close()
	return true
}

// ptyBackend spawns children on a real pseudo-terminal.
type ptyBackend struct{}

func (ptyBackend) name() string { return "pty" }

func (ptyBackend) start(shellPath string, args []string, cwd string, env []string) (procHandle, error) {
	cmd := exec.Command(shellPath, args...)
	cmd.Dir = cwd
	cmd.Env = env

	size := defaultWinsize
	ptmx, err := pty.StartWithSize(cmd, &size)
	if err != nil {
		return nil, err
	}
	return &ptyHandle{cmd: cmd, ptmx: ptmx}, nil
}

// ptyHandle backs a session with a PTY master/slave pair.
type ptyHandle struct {
	cmd  *exec.Cmd
	ptmx *os.File
}

func (h *ptyHandle) Reader() io.Reader {
	return h.ptmx
}

func (h *ptyHandle) Write(p []byte) (int, error) {
	return h.ptmx.Write(p)
}

func (h *ptyHandle) Resize(cols, rows uint16) error {
	return pty.Setsize(h.ptmx, &pty.Winsize{Rows: rows, Cols: cols})
}

func (h *ptyHandle) Terminate() error {
	if h.cmd.Process == nil {
		return nil
	}
	// Signal the whole process group so shell children die too
	if pgid, err := syscall.Getpgid(h.cmd.Process.Pid); err == nil {
		return syscall.Kill(-pgid, syscall.SIGTERM)
	}
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func (h *ptyHandle) Wait() int {
	err := h.cmd.Wait()
	_ = h.ptmx.Close()
	return exitCode(err, h.cmd)
}

func (h *ptyHandle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

func (h *ptyHandle) TTY() bool { return true }
