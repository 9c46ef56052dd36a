package registry

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aterm-app/aterm/internal/agent"
	"github.com/aterm-app/aterm/internal/domain"
	"github.com/aterm-app/aterm/internal/domain/events"
	"github.com/aterm-app/aterm/internal/domain/ports"
	"github.com/aterm-app/aterm/internal/persist"
)

// activityNotifyInterval bounds how often activity updates fan out to
// subscribers. The timestamps themselves are never throttled.
const activityNotifyInterval = 500 * time.Millisecond

// Persister stores the declarative workspace state. Satisfied by
// persist.Store; defined here so the storage layer stays unaware of the
// registry.
type Persister interface {
	Save(persist.Declaration) error
	Load() *persist.Declaration
}

// Config carries the registry's collaborators. Supervisor is required;
// everything else may be nil (events, persistence and global settings are
// then simply skipped).
type Config struct {
	Supervisor ports.Supervisor
	Persister  Persister
	Hub        ports.EventHub

	// GlobalEnv supplies the application-wide environment overrides applied
	// beneath each workspace's own set.
	GlobalEnv func() []EnvVar
	// DefaultAgent supplies the global default agent kind used when a
	// workspace declares none.
	DefaultAgent func() agent.Kind
	// Shell supplies the configured shell path, empty for platform default.
	Shell func() string
}

// Registry is the single writer for workspace, session and focus state.
// Everything it returns is a value copy; nothing external mutates its tree.
type Registry struct {
	sup       ports.Supervisor
	persister Persister
	hub       ports.EventHub

	globalEnv    func() []EnvVar
	defaultAgent func() agent.Kind
	shell        func() string

	mu                sync.Mutex
	workspaces        []*Workspace
	sessions          []*Session
	activeWorkspaceID string
	focusedSessionID  string
	revision          uint64

	subscribers map[int]func()
	nextSubID   int

	// provisioning guards in-flight auto-provisioning per workspace so a
	// second activation cannot synthesize a duplicate initial session while
	// the first spawn is still underway.
	provisioning map[string]bool

	lastActivityNotify time.Time
	activityPending    bool

	now func() time.Time
}

// New creates a registry. Panics if cfg.Supervisor is nil, since every
// session operation needs it.
func New(cfg Config) *Registry {
	if cfg.Supervisor == nil {
		panic("registry: supervisor is required")
	}
	return &Registry{
		sup:          cfg.Supervisor,
		persister:    cfg.Persister,
		hub:          cfg.Hub,
		globalEnv:    cfg.GlobalEnv,
		defaultAgent: cfg.DefaultAgent,
		shell:        cfg.Shell,
		subscribers:  make(map[int]func()),
		provisioning: make(map[string]bool),
		now:          time.Now,
	}
}

// Subscribe registers a change callback and returns its unsubscribe func.
// Callbacks are invoked outside the registry lock; they may call Snapshot.
func (r *Registry) Subscribe(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// Snapshot returns a value copy of the full state for rendering.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() Snapshot {
	snap := Snapshot{
		Workspaces:        make([]Workspace, len(r.workspaces)),
		Sessions:          make([]Session, len(r.sessions)),
		ActiveWorkspaceID: r.activeWorkspaceID,
		FocusedSessionID:  r.focusedSessionID,
		Revision:          r.revision,
	}
	for i, w := range r.workspaces {
		cp := *w
		cp.EnvVars = append([]EnvVar(nil), w.EnvVars...)
		snap.Workspaces[i] = cp
	}
	for i, s := range r.sessions {
		snap.Sessions[i] = *s
	}
	return snap
}

// AddWorkspace registers a project folder. Adding the same folder twice
// returns the existing workspace. The first workspace ever added becomes
// active.
func (r *Registry) AddWorkspace(folderPath string) (Workspace, error) {
	if folderPath == "" {
		return Workspace{}, domain.NewValidationError("folder_path", "cannot be empty")
	}

	r.mu.Lock()
	for _, w := range r.workspaces {
		if w.FolderPath == folderPath {
			cp := *w
			r.mu.Unlock()
			return cp, nil
		}
	}
	w := &Workspace{
		ID:         uuid.NewString(),
		Name:       filepath.Base(folderPath),
		FolderPath: folderPath,
		CreatedAt:  r.now(),
	}
	r.workspaces = append(r.workspaces, w)
	activate := r.activeWorkspaceID == ""
	if activate {
		r.activeWorkspaceID = w.ID
	}
	cp := *w
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	r.save(decl)
	r.publish(events.NewWorkspaceAddedEvent(cp.ID, cp.Name, cp.FolderPath))
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	log.Info().Str("workspace_id", cp.ID).Str("path", cp.FolderPath).Msg("workspace added")

	if activate {
		r.EnsureProvisioned(cp.ID)
	}
	return cp, nil
}

// RemoveWorkspace deletes a workspace and kills every session it owns. If it
// was active, the first remaining workspace becomes active.
func (r *Registry) RemoveWorkspace(workspaceID string) error {
	r.mu.Lock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		r.mu.Unlock()
		return domain.ErrWorkspaceNotFound
	}

	var killed []string
	kept := r.sessions[:0]
	for _, s := range r.sessions {
		if s.WorkspaceID == workspaceID {
			killed = append(killed, s.ID)
			continue
		}
		kept = append(kept, s)
	}
	r.sessions = kept

	for i, cand := range r.workspaces {
		if cand.ID == workspaceID {
			r.workspaces = append(r.workspaces[:i], r.workspaces[i+1:]...)
			break
		}
	}

	nextActive := ""
	if r.activeWorkspaceID == workspaceID {
		r.focusedSessionID = ""
		if len(r.workspaces) > 0 {
			nextActive = r.workspaces[0].ID
		}
		r.activeWorkspaceID = nextActive
	}
	removed := *w
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	for _, id := range killed {
		r.sup.Kill(id)
	}
	r.save(decl)
	r.publish(events.NewWorkspaceRemovedEvent(removed.ID, removed.Name, removed.FolderPath))
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	log.Info().Str("workspace_id", removed.ID).Int("sessions_killed", len(killed)).Msg("workspace removed")

	if nextActive != "" {
		r.EnsureProvisioned(nextActive)
	}
	return nil
}

// RenameWorkspace sets the user-facing alias.
func (r *Registry) RenameWorkspace(workspaceID, alias string) error {
	return r.updateWorkspace(workspaceID, func(w *Workspace) {
		w.Alias = alias
	})
}

// SetWorkspaceRole sets the free-text role label.
func (r *Registry) SetWorkspaceRole(workspaceID, role string) error {
	return r.updateWorkspace(workspaceID, func(w *Workspace) {
		w.Role = role
	})
}

// SetWorkspaceDefaultAgent sets which agent preset new sessions in the
// workspace start with.
func (r *Registry) SetWorkspaceDefaultAgent(workspaceID string, kind agent.Kind) error {
	return r.updateWorkspace(workspaceID, func(w *Workspace) {
		w.DefaultAgent = kind
	})
}

// AddWorkspaceEnvVar appends an environment override. Keys are unique within
// a workspace.
func (r *Registry) AddWorkspaceEnvVar(workspaceID string, v EnvVar) error {
	if v.Key == "" {
		return domain.ErrEmptyEnvKey
	}
	r.mu.Lock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		r.mu.Unlock()
		return domain.ErrWorkspaceNotFound
	}
	for _, existing := range w.EnvVars {
		if existing.Key == v.Key {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEnvKey, v.Key)
		}
	}
	w.EnvVars = append(w.EnvVars, v)
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	r.save(decl)
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	return nil
}

// UpdateWorkspaceEnvVar replaces the value and enabled flag of an existing
// override.
func (r *Registry) UpdateWorkspaceEnvVar(workspaceID string, v EnvVar) error {
	if v.Key == "" {
		return domain.ErrEmptyEnvKey
	}
	return r.mutateEnvVars(workspaceID, func(vars []EnvVar) ([]EnvVar, error) {
		for i := range vars {
			if vars[i].Key == v.Key {
				vars[i] = v
				return vars, nil
			}
		}
		return nil, domain.NewValidationError("key", "no such environment variable: "+v.Key)
	})
}

// RemoveWorkspaceEnvVar deletes an override by key.
func (r *Registry) RemoveWorkspaceEnvVar(workspaceID, key string) error {
	return r.mutateEnvVars(workspaceID, func(vars []EnvVar) ([]EnvVar, error) {
		for i := range vars {
			if vars[i].Key == key {
				return append(vars[:i], vars[i+1:]...), nil
			}
		}
		return nil, domain.NewValidationError("key", "no such environment variable: "+key)
	})
}

// EffectiveEnv merges global enabled overrides with the workspace's enabled
// overrides; workspace entries win on key collision, disabled entries
// contribute nothing.
func (r *Registry) EffectiveEnv(workspaceID string) ([]EnvVar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		return nil, domain.ErrWorkspaceNotFound
	}
	return r.effectiveEnvLocked(w), nil
}

func (r *Registry) effectiveEnvLocked(w *Workspace) []EnvVar {
	var merged []EnvVar
	if r.globalEnv != nil {
		for _, v := range r.globalEnv() {
			if v.Enabled && v.Key != "" {
				merged = append(merged, v)
			}
		}
	}
	for _, v := range w.EnvVars {
		if !v.Enabled || v.Key == "" {
			continue
		}
		replaced := false
		for i := range merged {
			if merged[i].Key == v.Key {
				merged[i] = v
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, v)
		}
	}
	return merged
}

// SetActiveWorkspace switches the active workspace, clearing focus, and
// auto-provisions the target if it has no sessions.
func (r *Registry) SetActiveWorkspace(workspaceID string) error {
	r.mu.Lock()
	if r.findWorkspaceLocked(workspaceID) == nil {
		r.mu.Unlock()
		return domain.ErrWorkspaceNotFound
	}
	if r.activeWorkspaceID == workspaceID {
		r.mu.Unlock()
		return nil
	}
	r.activeWorkspaceID = workspaceID
	r.focusedSessionID = ""
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	r.save(decl)
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()

	r.EnsureProvisioned(workspaceID)
	return nil
}

// EnsureProvisioned synthesizes the initial session for a workspace that has
// none. Runs at most once per loss of all sessions: a workspace that already
// has sessions, or whose initial spawn is still in flight, is left alone.
// Never called on session removal, only when entering the workspace.
func (r *Registry) EnsureProvisioned(workspaceID string) {
	r.mu.Lock()
	if r.findWorkspaceLocked(workspaceID) == nil ||
		r.sessionCountLocked(workspaceID) > 0 ||
		r.provisioning[workspaceID] {
		r.mu.Unlock()
		return
	}
	r.provisioning[workspaceID] = true
	r.mu.Unlock()

	_, err := r.AddSession(workspaceID, "")

	r.mu.Lock()
	delete(r.provisioning, workspaceID)
	r.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("auto-provisioning failed")
	}
}

// AddSession creates a session in a workspace and spawns its process
// synchronously. kind "" resolves through the workspace default, then the
// global default, then plain shell; agent.KindNone forces a plain shell.
// Returns an error and leaves no record if the spawn fails.
func (r *Registry) AddSession(workspaceID string, kind agent.Kind) (Session, error) {
	r.mu.Lock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		r.mu.Unlock()
		return Session{}, domain.ErrWorkspaceNotFound
	}
	kind = r.resolveKindLocked(w, kind)
	id := uuid.NewString()
	title := r.defaultTitleLocked(workspaceID, kind)
	env := envStrings(r.effectiveEnvLocked(w))
	cwd := w.FolderPath
	r.mu.Unlock()

	shellOverride := ""
	if r.shell != nil {
		shellOverride = r.shell()
	}
	if !r.sup.Create(ports.SpawnSpec{
		SessionID:     id,
		Cwd:           cwd,
		ShellOverride: shellOverride,
		Env:           env,
	}) {
		return Session{}, fmt.Errorf("%w: workspace %s", domain.ErrSpawnFailed, workspaceID)
	}
	if p := agent.Lookup(kind); p != nil && agent.IsAgent(kind) && p.Command != "" {
		r.sup.Write(id, []byte(p.Command+"\r"))
	}

	r.mu.Lock()
	s := &Session{
		ID:          id,
		WorkspaceID: workspaceID,
		Kind:        kind,
		Title:       title,
		Cwd:         cwd,
	}
	r.sessions = append(r.sessions, s)
	// Agent sessions grab focus; plain sessions only when nothing holds it.
	if workspaceID == r.activeWorkspaceID && (agent.IsAgent(kind) || r.focusedSessionID == "") {
		r.focusedSessionID = id
	}
	cp := *s
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	r.publish(events.NewSessionCreatedEvent(cp.ID, cp.WorkspaceID, cp.Title, string(cp.Kind)))
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	log.Info().
		Str("session_id", cp.ID).
		Str("workspace_id", cp.WorkspaceID).
		Str("kind", string(cp.Kind)).
		Msg("session created")
	return cp, nil
}

// RemoveSession kills a session's process and drops its record. If it held
// focus, the first remaining session of its workspace takes over.
func (r *Registry) RemoveSession(sessionID string) error {
	r.mu.Lock()
	s := r.findSessionLocked(sessionID)
	if s == nil {
		r.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	workspaceID := s.WorkspaceID
	for i, cand := range r.sessions {
		if cand.ID == sessionID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	if r.focusedSessionID == sessionID {
		r.focusedSessionID = ""
		for _, cand := range r.sessions {
			if cand.WorkspaceID == workspaceID {
				r.focusedSessionID = cand.ID
				break
			}
		}
	}
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	r.sup.Kill(sessionID)
	r.publish(events.NewSessionRemovedEvent(sessionID, workspaceID))
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	log.Info().Str("session_id", sessionID).Msg("session removed")
	return nil
}

// RenameSession sets a session's title.
func (r *Registry) RenameSession(sessionID, title string) error {
	r.mu.Lock()
	s := r.findSessionLocked(sessionID)
	if s == nil {
		r.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	s.Title = title
	workspaceID := s.WorkspaceID
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	r.publish(events.NewSessionRenamedEvent(sessionID, workspaceID, title))
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	return nil
}

// SetFocus moves focus to a session of the active workspace, or clears it
// with an empty id.
func (r *Registry) SetFocus(sessionID string) error {
	r.mu.Lock()
	if sessionID != "" {
		s := r.findSessionLocked(sessionID)
		if s == nil {
			r.mu.Unlock()
			return domain.ErrSessionNotFound
		}
		if s.WorkspaceID != r.activeWorkspaceID {
			r.mu.Unlock()
			return domain.NewValidationError("session_id", "session is not in the active workspace")
		}
	}
	if r.focusedSessionID == sessionID {
		r.mu.Unlock()
		return nil
	}
	r.focusedSessionID = sessionID
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	return nil
}

// UpdateWorkingDirectory records a session's current directory. Unknown ids
// are tolerated: the update may race with removal.
func (r *Registry) UpdateWorkingDirectory(sessionID, path string) {
	r.mu.Lock()
	s := r.findSessionLocked(sessionID)
	if s == nil || path == "" || s.Cwd == path {
		r.mu.Unlock()
		return
	}
	s.Cwd = path
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
}

// RecordActivity stamps a session's last-activity time. The timestamp is
// always current; the subscriber fan-out is throttled to one notification
// per 500ms so high-throughput output cannot saturate observers. Unknown
// ids are tolerated.
func (r *Registry) RecordActivity(sessionID string) {
	r.mu.Lock()
	s := r.findSessionLocked(sessionID)
	if s == nil {
		r.mu.Unlock()
		return
	}
	s.LastActivity = r.now()
	r.revision++

	n := r.now()
	if n.Sub(r.lastActivityNotify) >= activityNotifyInterval {
		r.lastActivityNotify = n
		subs := r.collectSubscribersLocked()
		r.mu.Unlock()
		for _, fn := range subs {
			fn()
		}
		return
	}
	if r.activityPending {
		r.mu.Unlock()
		return
	}
	// Schedule a trailing notification so the last burst is not lost.
	r.activityPending = true
	delay := activityNotifyInterval - n.Sub(r.lastActivityNotify)
	r.mu.Unlock()
	time.AfterFunc(delay, func() {
		r.mu.Lock()
		r.activityPending = false
		r.lastActivityNotify = r.now()
		subs := r.collectSubscribersLocked()
		r.mu.Unlock()
		for _, fn := range subs {
			fn()
		}
	})
}

// LastActivity returns a session's last activity timestamp, zero if unknown.
func (r *Registry) LastActivity(sessionID string) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.findSessionLocked(sessionID); s != nil {
		return s.LastActivity
	}
	return time.Time{}
}

// Load restores the persisted declaration and provisions the active
// workspace. Missing or corrupt persisted state yields an empty registry.
func (r *Registry) Load() {
	if r.persister == nil {
		return
	}
	decl := r.persister.Load()
	if decl == nil {
		return
	}

	r.mu.Lock()
	for _, d := range decl.Workspaces {
		if d.ID == "" || d.FolderPath == "" {
			log.Warn().Str("path", d.FolderPath).Msg("skipping malformed workspace declaration")
			continue
		}
		w := &Workspace{
			ID:           d.ID,
			Name:         d.Name,
			Alias:        d.Alias,
			Role:         d.Role,
			FolderPath:   d.FolderPath,
			CreatedAt:    d.CreatedAt,
			DefaultAgent: d.DefaultAgent,
		}
		if w.Name == "" {
			w.Name = filepath.Base(w.FolderPath)
		}
		for _, v := range d.EnvVars {
			if v.Key == "" {
				continue
			}
			w.EnvVars = append(w.EnvVars, EnvVar{Key: v.Key, Value: v.Value, Enabled: v.Enabled})
		}
		r.workspaces = append(r.workspaces, w)
	}
	active := ""
	if r.findWorkspaceLocked(decl.ActiveWorkspaceID) != nil {
		active = decl.ActiveWorkspaceID
	} else if len(r.workspaces) > 0 {
		active = r.workspaces[0].ID
	}
	r.activeWorkspaceID = active
	r.revision++
	rev := r.revision
	count := len(r.workspaces)
	r.mu.Unlock()

	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	log.Info().Int("workspaces", count).Str("active", active).Msg("workspace declaration loaded")

	if active != "" {
		r.EnsureProvisioned(active)
	}
}

func (r *Registry) updateWorkspace(workspaceID string, apply func(*Workspace)) error {
	r.mu.Lock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		r.mu.Unlock()
		return domain.ErrWorkspaceNotFound
	}
	apply(w)
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	r.save(decl)
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	return nil
}

func (r *Registry) mutateEnvVars(workspaceID string, apply func([]EnvVar) ([]EnvVar, error)) error {
	r.mu.Lock()
	w := r.findWorkspaceLocked(workspaceID)
	if w == nil {
		r.mu.Unlock()
		return domain.ErrWorkspaceNotFound
	}
	vars, err := apply(w.EnvVars)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	w.EnvVars = vars
	r.revision++
	rev := r.revision
	decl := r.declarationLocked()
	r.mu.Unlock()

	r.save(decl)
	r.publish(events.NewStateChangedEvent(rev))
	r.notify()
	return nil
}

func (r *Registry) resolveKindLocked(w *Workspace, kind agent.Kind) agent.Kind {
	if kind == agent.KindNone {
		return agent.KindNone
	}
	if kind == "" {
		kind = w.DefaultAgent
	}
	if kind == "" && r.defaultAgent != nil {
		kind = r.defaultAgent()
	}
	if kind == "" || agent.Lookup(kind) == nil {
		return agent.KindNone
	}
	return kind
}

func (r *Registry) defaultTitleLocked(workspaceID string, kind agent.Kind) string {
	if agent.IsAgent(kind) {
		return agent.Lookup(kind).Name
	}
	n := 1
	for _, s := range r.sessions {
		if s.WorkspaceID == workspaceID && !s.IsAgent() {
			n++
		}
	}
	return fmt.Sprintf("Terminal %d", n)
}

func (r *Registry) findWorkspaceLocked(id string) *Workspace {
	for _, w := range r.workspaces {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (r *Registry) findSessionLocked(id string) *Session {
	for _, s := range r.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (r *Registry) sessionCountLocked(workspaceID string) int {
	n := 0
	for _, s := range r.sessions {
		if s.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

func (r *Registry) declarationLocked() persist.Declaration {
	decl := persist.Declaration{
		Workspaces:        make([]persist.WorkspaceDecl, len(r.workspaces)),
		ActiveWorkspaceID: r.activeWorkspaceID,
	}
	for i, w := range r.workspaces {
		d := persist.WorkspaceDecl{
			ID:           w.ID,
			Name:         w.Name,
			Alias:        w.Alias,
			Role:         w.Role,
			FolderPath:   w.FolderPath,
			CreatedAt:    w.CreatedAt,
			DefaultAgent: w.DefaultAgent,
		}
		for _, v := range w.EnvVars {
			d.EnvVars = append(d.EnvVars, persist.EnvVarDecl{Key: v.Key, Value: v.Value, Enabled: v.Enabled})
		}
		decl.Workspaces[i] = d
	}
	return decl
}

func (r *Registry) collectSubscribersLocked() []func() {
	subs := make([]func(), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// notify invokes every subscriber outside the lock.
func (r *Registry) notify() {
	r.mu.Lock()
	subs := r.collectSubscribersLocked()
	r.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (r *Registry) publish(ev events.Event) {
	if r.hub != nil {
		r.hub.Publish(ev)
	}
}

func (r *Registry) save(decl persist.Declaration) {
	if r.persister != nil {
		// Best-effort write-through; Save logs its own failures.
		_ = r.persister.Save(decl)
	}
}

func envStrings(vars []EnvVar) []string {
	if len(vars) == 0 {
		return nil
	}
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Key+"="+v.Value)
	}
	return out
}
