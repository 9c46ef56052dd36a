// Package persist serializes the declarative workspace list to durable
// storage. Sessions are deliberately absent: OS processes cannot survive an
// application restart, so only declarations persist and sessions are
// re-provisioned fresh on load.
package persist

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/aterm-app/aterm/internal/agent"
)

// EnvVarDecl mirrors a workspace environment override on disk.
type EnvVarDecl struct {
	Key     string `yaml:"key" json:"key"`
	Value   string `yaml:"value" json:"value"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// WorkspaceDecl is the persisted form of a workspace.
type WorkspaceDecl struct {
	ID           string       `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	Alias        string       `yaml:"alias,omitempty" json:"alias,omitempty"`
	Role         string       `yaml:"role,omitempty" json:"role,omitempty"`
	FolderPath   string       `yaml:"folder_path" json:"folderPath"`
	CreatedAt    time.Time    `yaml:"created_at" json:"createdAt"`
	DefaultAgent agent.Kind   `yaml:"default_agent,omitempty" json:"defaultAgent,omitempty"`
	EnvVars      []EnvVarDecl `yaml:"env_vars,omitempty" json:"envVars,omitempty"`
}

// Declaration is the complete persisted state.
type Declaration struct {
	Workspaces        []WorkspaceDecl `yaml:"workspaces" json:"workspaces"`
	ActiveWorkspaceID string          `yaml:"active_workspace_id,omitempty" json:"activeWorkspaceId,omitempty"`
}

// Store reads and writes the workspace declaration file.
type Store struct {
	path string
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default declaration path under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".aterm", "workspaces.yaml")
	}
	return filepath.Join(configDir, "aterm", "workspaces.yaml")
}

// Save writes the declaration. Write-through and best-effort: failures are
// logged, not surfaced, since loss only risks a redundant re-provisioning.
func (s *Store) Save(decl Declaration) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to create declaration directory")
		return err
	}

	data, err := yaml.Marshal(decl)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal workspace declaration")
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to write workspace declaration")
		return err
	}
	return nil
}

// Load reads the declaration. Missing or corrupt files yield nil: startup
// must never crash on bad persisted state, it falls back to empty.
func (s *Store) Load() *Declaration {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("failed to read workspace declaration")
		}
		return nil
	}

	var decl Declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("corrupt workspace declaration, starting empty")
		return nil
	}
	return &decl
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
