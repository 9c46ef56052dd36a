// Package supervisor owns the OS process behind every terminal session.
//
// It maps a session id to exactly one live process, bridges the process byte
// stream onto the event hub tagged with that id, and keeps session identity
// stable across process replacement. It knows nothing about workspaces; the
// registry consumes its events, never the other way around.
package supervisor

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aterm-app/aterm/internal/domain"
	"github.com/aterm-app/aterm/internal/domain/events"
	"github.com/aterm-app/aterm/internal/domain/ports"
	"github.com/aterm-app/aterm/internal/shell"
)

// entry tracks one live process. gen distinguishes process incarnations so a
// late exit from a replaced process never deregisters its successor.
type entry struct {
	handle procHandle
	cwd    string
	shell  string
	env    []string
	gen    uint64
}

// Supervisor implements ports.Supervisor over a capability-checked backing
// strategy chosen once at construction.
type Supervisor struct {
	hub     ports.EventHub
	backend backend
	tty     bool

	mu      sync.Mutex
	table   map[string]*entry
	nextGen uint64
}

// New creates a supervisor, probing pseudo-terminal availability once and
// selecting the backing strategy for the whole lifetime of the process.
func New(hub ports.EventHub) *Supervisor {
	s := &Supervisor{
		hub:   hub,
		table: make(map[string]*entry),
	}
	if ptyAvailable() {
		s.backend = ptyBackend{}
		s.tty = true
	} else {
		s.backend = pipeBackend{}
		log.Warn().Msg("pseudo-terminal allocation unavailable, using piped-child fallback")
	}
	log.Info().Str("backend", s.backend.name()).Msg("process supervisor ready")
	return s
}

// TTY reports whether sessions get a real terminal device.
func (s *Supervisor) TTY() bool {
	return s.tty
}

// Create spawns the process for a session. An explicit shell override wins;
// otherwise the platform default shell is resolved. The child environment is
// UTF-8 forced before per-session overrides apply. Returns false, with a
// diagnostic written to the session's output stream, if spawning fails.
func (s *Supervisor) Create(spec ports.SpawnSpec) bool {
	shellPath := spec.ShellOverride
	if shellPath == "" {
		shellPath = shell.Resolve(shell.ModeAuto, "")
	}
	env := shell.MergeEnviron(shell.UTF8Environ(), spec.Env)

	args := shell.Args(shellPath)
	if !s.tty {
		args = append(args, shell.PipeFallbackArgs(shellPath)...)
	}

	h, err := s.backend.start(shellPath, args, spec.Cwd, env)
	if err != nil && s.tty {
		// One fallback attempt through plain pipes before giving up.
		log.Warn().Err(err).Str("session_id", spec.SessionID).Msg("pty spawn failed, retrying with piped child")
		fallbackArgs := append(shell.Args(shellPath), shell.PipeFallbackArgs(shellPath)...)
		h, err = pipeBackend{}.start(shellPath, fallbackArgs, spec.Cwd, env)
	}
	if err != nil {
		spawnErr := domain.NewSpawnError(spec.SessionID, shellPath, err)
		log.Error().Err(spawnErr).Msg("spawn failed")
		// Surface the failure inside the terminal surface, not a dialog.
		s.hub.Publish(events.NewTerminalOutputEvent(spec.SessionID,
			fmt.Sprintf("\r\n[Error: %v]\r\n", err)))
		return false
	}

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.table[spec.SessionID] = &entry{
		handle: h,
		cwd:    spec.Cwd,
		shell:  shellPath,
		env:    spec.Env,
		gen:    gen,
	}
	s.mu.Unlock()

	if !h.TTY() {
		s.hub.Publish(events.NewTerminalOutputEvent(spec.SessionID, "[Terminal - piped mode]\r\n"))
	}

	log.Info().
		Str("session_id", spec.SessionID).
		Str("shell", shellPath).
		Str("cwd", spec.Cwd).
		Int("pid", h.PID()).
		Bool("tty", h.TTY()).
		Msg("session process spawned")

	go s.bridge(spec.SessionID, gen, h)
	return true
}

// bridge pumps process output onto the hub and finalizes on exit. Running in
// a single goroutine per process keeps per-session event order identical to
// the OS stream order, and guarantees the exit event is last.
func (s *Supervisor) bridge(sessionID string, gen uint64, h procHandle) {
	r := h.Reader()
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.hub.Publish(events.NewTerminalOutputEvent(sessionID, string(buf[:n])))
		}
		if err != nil {
			break
		}
	}

	code := h.Wait()

	// Deregister before the exit event goes out, so any supervisor call
	// racing with the exit already sees the id as unknown. A replaced
	// incarnation (restart) must not evict its successor, and must not
	// finalize either: the exit event is terminal for the session id, so a
	// late death of the old process stays silent while the replacement is
	// streaming.
	s.mu.Lock()
	e, live := s.table[sessionID]
	if live && e.gen == gen {
		delete(s.table, sessionID)
	}
	replaced := live && e.gen != gen
	s.mu.Unlock()

	if replaced {
		log.Debug().Str("session_id", sessionID).Int("exit_code", code).
			Msg("replaced session process exited")
		return
	}

	// Exit shows up inline in the surface, then the terminal exit event.
	s.hub.Publish(events.NewTerminalOutputEvent(sessionID,
		fmt.Sprintf("\r\n[process exited with code %d]\r\n", code)))
	s.hub.Publish(events.NewTerminalExitEvent(sessionID, code))

	log.Debug().Str("session_id", sessionID).Int("exit_code", code).Msg("session process exited")
}

// Write forwards raw input to a session's process. Unknown ids are a normal
// race with exit and are ignored.
func (s *Supervisor) Write(sessionID string, data []byte) {
	s.mu.Lock()
	e, ok := s.table[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}
	if _, err := e.handle.Write(data); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("write to session failed")
	}
}

// Resize updates the terminal size. No-op in piped mode or for unknown ids.
func (s *Supervisor) Resize(sessionID string, cols, rows uint16) {
	s.mu.Lock()
	e, ok := s.table[sessionID]
	s.mu.Unlock()
	if !ok || !e.handle.TTY() {
		return
	}
	if err := e.handle.Resize(cols, rows); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("resize failed")
	}
}

// Kill terminates a session's process. The handle is removed immediately;
// actual process death is best-effort and reported later via the exit event.
func (s *Supervisor) Kill(sessionID string) bool {
	s.mu.Lock()
	e, ok := s.table[sessionID]
	if ok {
		delete(s.table, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := e.handle.Terminate(); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("terminate failed")
	}
	return true
}

// Restart replaces the process behind a session while preserving its id. The
// previous per-session environment carries over, and without an explicit
// override the replacement runs the same shell the session was created with.
func (s *Supervisor) Restart(sessionID, cwd, shellOverride string) bool {
	s.mu.Lock()
	e, ok := s.table[sessionID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	env := e.env
	if cwd == "" {
		cwd = e.cwd
	}
	if shellOverride == "" {
		shellOverride = e.shell
	}
	s.Kill(sessionID)
	return s.Create(ports.SpawnSpec{
		SessionID:     sessionID,
		Cwd:           cwd,
		ShellOverride: shellOverride,
		Env:           env,
	})
}

// WorkingDirectory returns the session's working directory, refreshed from
// the OS when the platform allows it. Empty string for unknown ids.
func (s *Supervisor) WorkingDirectory(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.table[sessionID]
	if !ok {
		return ""
	}
	if cwd, ok := probeCwd(e.handle.PID()); ok {
		e.cwd = cwd
	}
	return e.cwd
}

// DisposeAll kills every tracked session. Called on host window teardown.
func (s *Supervisor) DisposeAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.table))
	for id := range s.table {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Kill(id)
	}
	log.Info().Int("sessions", len(ids)).Msg("all session processes disposed")
}

// Count returns the number of live process handles.
func (s *Supervisor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table)
}

var _ ports.Supervisor = (*Supervisor)(nil)
