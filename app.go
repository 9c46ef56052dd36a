package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/aterm-app/aterm/internal/agent"
	"github.com/aterm-app/aterm/internal/app"
	"github.com/aterm-app/aterm/internal/config"
	"github.com/aterm-app/aterm/internal/domain/events"
	"github.com/aterm-app/aterm/internal/hub"
	"github.com/aterm-app/aterm/internal/registry"
	"github.com/aterm-app/aterm/internal/snippets"
)

// DesktopApp binds the terminal core to the webview.
type DesktopApp struct {
	ctx        context.Context
	core       *app.App
	cancelFunc context.CancelFunc
}

// NewDesktopApp creates a new desktop application.
func NewDesktopApp() *DesktopApp {
	return &DesktopApp{}
}

// startup is called when the app starts.
func (d *DesktopApp) startup(ctx context.Context) {
	d.ctx = ctx

	cfg, err := config.Load("")
	if err != nil {
		log.Warn().Err(err).Msg("failed to load config, using defaults")
		cfg = config.Default()
	}

	core, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to create terminal core")
		runtime.EventsEmit(d.ctx, "core_error", err.Error())
		return
	}
	d.core = core

	coreCtx, cancel := context.WithCancel(context.Background())
	d.cancelFunc = cancel

	if err := d.core.Start(coreCtx); err != nil {
		log.Error().Err(err).Msg("terminal core failed to start")
		runtime.EventsEmit(d.ctx, "core_error", err.Error())
		return
	}

	// Forward every core event onto the webview event bus, named by type.
	d.core.Hub().Subscribe(hub.NewFuncSubscriber("webview-bridge", func(ev events.Event) {
		data, err := ev.ToJSON()
		if err != nil {
			return
		}
		runtime.EventsEmit(d.ctx, string(ev.Type()), string(data))
	}))

	log.Info().Msg("desktop app started")
}

// shutdown is called when the app is closing.
func (d *DesktopApp) shutdown(ctx context.Context) {
	log.Info().Msg("shutting down desktop app")
	if d.core != nil {
		d.core.Stop()
	}
	if d.cancelFunc != nil {
		d.cancelFunc()
	}
}

// domReady is called when the DOM is ready.
func (d *DesktopApp) domReady(ctx context.Context) {
	log.Info().Msg("DOM ready")
}

// --- State ---

// GetState returns the full registry snapshot for rendering.
func (d *DesktopApp) GetState() registry.Snapshot {
	return d.core.Registry().Snapshot()
}

// --- Workspace management ---

// SelectFolder opens the native directory picker. Empty string on cancel.
func (d *DesktopApp) SelectFolder() (string, error) {
	return runtime.OpenDirectoryDialog(d.ctx, runtime.OpenDialogOptions{
		Title: "Select Workspace Folder",
	})
}

// AddWorkspace registers a folder as a workspace.
func (d *DesktopApp) AddWorkspace(folderPath string) (registry.Workspace, error) {
	return d.core.Registry().AddWorkspace(folderPath)
}

// RemoveWorkspace deletes a workspace and kills its sessions.
func (d *DesktopApp) RemoveWorkspace(workspaceID string) error {
	return d.core.Registry().RemoveWorkspace(workspaceID)
}

// RenameWorkspace sets a workspace alias.
func (d *DesktopApp) RenameWorkspace(workspaceID, alias string) error {
	return d.core.Registry().RenameWorkspace(workspaceID, alias)
}

// SetWorkspaceRole sets a workspace's role label.
func (d *DesktopApp) SetWorkspaceRole(workspaceID, role string) error {
	return d.core.Registry().SetWorkspaceRole(workspaceID, role)
}

// SetWorkspaceDefaultAgent sets the workspace's default agent preset.
func (d *DesktopApp) SetWorkspaceDefaultAgent(workspaceID, kind string) error {
	return d.core.Registry().SetWorkspaceDefaultAgent(workspaceID, agent.Kind(kind))
}

// SetActiveWorkspace switches the active workspace.
func (d *DesktopApp) SetActiveWorkspace(workspaceID string) error {
	return d.core.Registry().SetActiveWorkspace(workspaceID)
}

// AddWorkspaceEnvVar adds an environment override to a workspace.
func (d *DesktopApp) AddWorkspaceEnvVar(workspaceID, key, value string, enabled bool) error {
	return d.core.Registry().AddWorkspaceEnvVar(workspaceID, registry.EnvVar{Key: key, Value: value, Enabled: enabled})
}

// UpdateWorkspaceEnvVar updates an existing environment override.
func (d *DesktopApp) UpdateWorkspaceEnvVar(workspaceID, key, value string, enabled bool) error {
	return d.core.Registry().UpdateWorkspaceEnvVar(workspaceID, registry.EnvVar{Key: key, Value: value, Enabled: enabled})
}

// RemoveWorkspaceEnvVar removes an environment override by key.
func (d *DesktopApp) RemoveWorkspaceEnvVar(workspaceID, key string) error {
	return d.core.Registry().RemoveWorkspaceEnvVar(workspaceID, key)
}

// --- Session management ---

// CreateSession creates a session in a workspace. kind "" resolves through
// the workspace and global defaults; "none" forces a plain shell.
func (d *DesktopApp) CreateSession(workspaceID, kind string) (registry.Session, error) {
	return d.core.Registry().AddSession(workspaceID, agent.Kind(kind))
}

// RemoveSession kills a session and drops its record.
func (d *DesktopApp) RemoveSession(sessionID string) error {
	return d.core.Registry().RemoveSession(sessionID)
}

// RenameSession sets a session title.
func (d *DesktopApp) RenameSession(sessionID, title string) error {
	return d.core.Registry().RenameSession(sessionID, title)
}

// FocusSession moves focus; empty id clears it.
func (d *DesktopApp) FocusSession(sessionID string) error {
	return d.core.Registry().SetFocus(sessionID)
}

// WriteSession forwards keyboard input to the session's process.
func (d *DesktopApp) WriteSession(sessionID, data string) {
	d.core.Supervisor().Write(sessionID, []byte(data))
}

// ResizeSession updates the session's terminal size.
func (d *DesktopApp) ResizeSession(sessionID string, cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	d.core.Supervisor().Resize(sessionID, uint16(cols), uint16(rows))
}

// RestartSession replaces the process behind a session, keeping its id,
// shell and environment.
func (d *DesktopApp) RestartSession(sessionID string) bool {
	return d.core.Supervisor().Restart(sessionID, "", "")
}

// GetSessionCwd returns a session's live working directory.
func (d *DesktopApp) GetSessionCwd(sessionID string) string {
	return d.core.RefreshWorkingDirectory(sessionID)
}

// --- Activity and previews ---

// GetSessionPreview returns the last preview lines for a session thumbnail.
func (d *DesktopApp) GetSessionPreview(sessionID string) []string {
	return d.core.Tracker().Lines(sessionID)
}

// IsSessionActive reports whether a session produced output recently.
func (d *DesktopApp) IsSessionActive(sessionID string) bool {
	return d.core.Tracker().SessionActive(sessionID)
}

// IsWorkspaceActive reports recent output in any of a workspace's sessions.
func (d *DesktopApp) IsWorkspaceActive(workspaceID string) bool {
	return d.core.Tracker().WorkspaceActive(workspaceID)
}

// --- Agent presets ---

// GetAgentPresets returns the available agent presets for pickers.
func (d *DesktopApp) GetAgentPresets() []agent.Preset {
	return agent.Presets
}

// --- Snippets ---

// ListSnippets returns all snippets, favorites first.
func (d *DesktopApp) ListSnippets() ([]snippets.Snippet, error) {
	return d.core.Snippets().List()
}

// SearchSnippets returns snippets matching a term.
func (d *DesktopApp) SearchSnippets(term string) ([]snippets.Snippet, error) {
	return d.core.Snippets().Search(term)
}

// SnippetCategories returns the category names in use.
func (d *DesktopApp) SnippetCategories() ([]string, error) {
	return d.core.Snippets().Categories()
}

// CreateSnippet saves a new snippet.
func (d *DesktopApp) CreateSnippet(name, command, category string) (snippets.Snippet, error) {
	return d.core.Snippets().Create(name, command, category)
}

// UpdateSnippet replaces a snippet's fields.
func (d *DesktopApp) UpdateSnippet(id, name, command, category string) error {
	return d.core.Snippets().Update(id, name, command, category)
}

// DeleteSnippet removes a snippet.
func (d *DesktopApp) DeleteSnippet(id string) error {
	return d.core.Snippets().Delete(id)
}

// SetSnippetFavorite toggles a snippet's favorite flag.
func (d *DesktopApp) SetSnippetFavorite(id string, favorite bool) error {
	return d.core.Snippets().SetFavorite(id, favorite)
}

// RunSnippet sends a snippet's command to a session and records the use.
func (d *DesktopApp) RunSnippet(id, sessionID string) error {
	sn, err := d.core.Snippets().Get(id)
	if err != nil {
		return err
	}
	d.core.Supervisor().Write(sessionID, []byte(sn.Command+"\r"))
	d.core.Snippets().RecordUse(id)
	return nil
}

// --- Settings ---

// GetSettings returns the current configuration.
func (d *DesktopApp) GetSettings() *config.Config {
	return d.core.Config()
}

// SaveSettings validates and persists new settings. The config watcher picks
// the write up and hot-reloads the running configuration.
func (d *DesktopApp) SaveSettings(cfg config.Config) error {
	return config.Save(&cfg, config.DefaultFile())
}
