// Package app wires the terminal core together: event hub, process
// supervisor, session registry, activity/preview tracker, configuration and
// the snippet store. It is headless; the desktop shell binds on top of it.
package app

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aterm-app/aterm/internal/agent"
	"github.com/aterm-app/aterm/internal/config"
	"github.com/aterm-app/aterm/internal/domain/events"
	"github.com/aterm-app/aterm/internal/hub"
	"github.com/aterm-app/aterm/internal/persist"
	"github.com/aterm-app/aterm/internal/preview"
	"github.com/aterm-app/aterm/internal/registry"
	"github.com/aterm-app/aterm/internal/snippets"
	"github.com/aterm-app/aterm/internal/supervisor"
)

// App is the assembled terminal core.
type App struct {
	hub      *hub.Hub
	sup      *supervisor.Supervisor
	reg      *registry.Registry
	tracker  *preview.Tracker
	snippets *snippets.Store

	cfgMu      sync.RWMutex
	cfg        *config.Config
	cfgWatcher *config.Watcher

	cancel  context.CancelFunc
	started bool
}

// New assembles the core from a loaded configuration.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		hub: hub.New(),
		cfg: cfg,
	}
	a.sup = supervisor.New(a.hub)

	store := persist.NewStore(persist.DefaultPath())
	a.reg = registry.New(registry.Config{
		Supervisor: a.sup,
		Persister:  store,
		Hub:        a.hub,
		GlobalEnv:  a.globalEnv,
		DefaultAgent: func() agent.Kind {
			return a.Config().DefaultAgent()
		},
		Shell: func() string {
			return a.Config().ResolveShell()
		},
	})

	a.tracker = preview.New(a.reg.Snapshot, func() {
		a.hub.Publish(events.NewStateChangedEvent(a.reg.Snapshot().Revision))
	})

	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}
	snips, err := snippets.Open(filepath.Join(dir, "snippets.db"))
	if err != nil {
		return nil, err
	}
	a.snippets = snips

	return a, nil
}

// Start brings the core up: event fan-out, persisted workspaces, activity
// polling and config hot-reload.
func (a *App) Start(ctx context.Context) error {
	if a.started {
		return nil
	}
	if err := a.hub.Start(); err != nil {
		return err
	}

	// Terminal output drives activity stamps and preview buffers; session
	// removal drops the per-session tracker state.
	a.hub.Subscribe(hub.NewFuncSubscriber("core-tracker", a.onEvent))

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	go a.tracker.Run(runCtx)

	a.reg.Load()

	a.cfgWatcher = config.NewWatcher(config.DefaultFile(), a.applyConfig)
	if err := a.cfgWatcher.Start(runCtx); err != nil {
		log.Warn().Err(err).Msg("config hot-reload unavailable")
		a.cfgWatcher = nil
	}

	a.started = true
	log.Info().Msg("terminal core started")
	return nil
}

// Stop tears the core down, killing every session process.
func (a *App) Stop() {
	if !a.started {
		return
	}
	a.started = false
	if a.cfgWatcher != nil {
		a.cfgWatcher.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.sup.DisposeAll()
	_ = a.hub.Stop()
	if err := a.snippets.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close snippet store")
	}
	log.Info().Msg("terminal core stopped")
}

func (a *App) onEvent(ev events.Event) {
	switch ev.Type() {
	case events.EventTypeTerminalOutput:
		id := ev.GetSessionID()
		a.reg.RecordActivity(id)
		if be, ok := ev.(*events.BaseEvent); ok {
			if p, ok := be.Payload.(events.TerminalOutputPayload); ok {
				a.tracker.Append(id, p.Data)
			}
		}
	case events.EventTypeSessionRemoved:
		a.tracker.Remove(ev.GetSessionID())
	}
}

// applyConfig swaps in a hot-reloaded configuration.
func (a *App) applyConfig(cfg *config.Config) {
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()
	a.hub.Publish(events.NewEvent(events.EventTypeSettingsReloaded, cfg))
}

func (a *App) globalEnv() []registry.EnvVar {
	cfg := a.Config()
	var out []registry.EnvVar
	for _, e := range cfg.Env {
		out = append(out, registry.EnvVar{Key: e.Key, Value: e.Value, Enabled: e.Enabled})
	}
	return out
}

// Config returns the current configuration.
func (a *App) Config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

// Hub exposes the event hub for the desktop shell's event bridge.
func (a *App) Hub() *hub.Hub {
	return a.hub
}

// Supervisor exposes the process supervisor.
func (a *App) Supervisor() *supervisor.Supervisor {
	return a.sup
}

// Registry exposes the session registry.
func (a *App) Registry() *registry.Registry {
	return a.reg
}

// Tracker exposes the activity/preview tracker.
func (a *App) Tracker() *preview.Tracker {
	return a.tracker
}

// Snippets exposes the snippet store.
func (a *App) Snippets() *snippets.Store {
	return a.snippets
}

// RefreshWorkingDirectory pulls a session's live working directory from the
// supervisor into the registry. Tolerant of stale ids.
func (a *App) RefreshWorkingDirectory(sessionID string) string {
	cwd := a.sup.WorkingDirectory(sessionID)
	if cwd != "" {
		a.reg.UpdateWorkingDirectory(sessionID, cwd)
	}
	return cwd
}
