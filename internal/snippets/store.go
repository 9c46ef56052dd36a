// Package snippets provides a SQLite-backed store for reusable command
// snippets that can be sent to any terminal session.
package snippets

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/aterm-app/aterm/internal/domain"
)

// Snippet is one saved command with its organizational metadata.
type Snippet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Command   string    `json:"command"`
	Category  string    `json:"category,omitempty"`
	Favorite  bool      `json:"favorite"`
	UseCount  int       `json:"use_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// schemaVersion is incremented when the snippet schema changes, forcing a
// rebuild of the table.
const schemaVersion = 1

// Store manages snippet persistence.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snippet database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("path", dbPath).Msg("snippet store opened")
	return &Store{db: db}, nil
}

// createSchema creates the database schema, handling version migrations.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value TEXT)`)
	if err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'")
	if err := row.Scan(&currentVersion); err != nil {
		// No version found, this is a new database
		currentVersion = 0
	}

	if currentVersion != 0 && currentVersion < schemaVersion {
		log.Info().
			Int("old_version", currentVersion).
			Int("new_version", schemaVersion).
			Msg("schema version changed, rebuilding snippet table")
		_, _ = db.Exec("DROP TABLE IF EXISTS snippets")
	}

	schema := `
		CREATE TABLE IF NOT EXISTS snippets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			command TEXT NOT NULL,
			category TEXT,
			favorite INTEGER NOT NULL DEFAULT 0,
			use_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snippets_category ON snippets(category);
		CREATE INDEX IF NOT EXISTS idx_snippets_favorite ON snippets(favorite DESC, use_count DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	_, err = db.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create saves a new snippet and returns it with its generated id.
func (s *Store) Create(name, command, category string) (Snippet, error) {
	if strings.TrimSpace(name) == "" {
		return Snippet{}, domain.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(command) == "" {
		return Snippet{}, domain.NewValidationError("command", "cannot be empty")
	}

	now := time.Now().UTC()
	sn := Snippet{
		ID:        uuid.NewString(),
		Name:      name,
		Command:   command,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.Exec(
		`INSERT INTO snippets (id, name, command, category, favorite, use_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		sn.ID, sn.Name, sn.Command, sn.Category,
		sn.CreatedAt.Format(time.RFC3339Nano), sn.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Snippet{}, err
	}
	return sn, nil
}

// Get returns a snippet by id.
func (s *Store) Get(id string) (Snippet, error) {
	row := s.db.QueryRow(
		`SELECT id, name, command, category, favorite, use_count, created_at, updated_at
		 FROM snippets WHERE id = ?`, id)
	return scanSnippet(row)
}

// Update replaces a snippet's name, command and category.
func (s *Store) Update(id, name, command, category string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "cannot be empty")
	}
	res, err := s.db.Exec(
		`UPDATE snippets SET name = ?, command = ?, category = ?, updated_at = ? WHERE id = ?`,
		name, command, category, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return err
	}
	return checkFound(res, id)
}

// Delete removes a snippet.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkFound(res, id)
}

// SetFavorite toggles a snippet's favorite flag.
func (s *Store) SetFavorite(id string, favorite bool) error {
	fav := 0
	if favorite {
		fav = 1
	}
	res, err := s.db.Exec(
		`UPDATE snippets SET favorite = ?, updated_at = ? WHERE id = ?`,
		fav, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return err
	}
	return checkFound(res, id)
}

// RecordUse bumps a snippet's use counter. Unknown ids are tolerated.
func (s *Store) RecordUse(id string) {
	if _, err := s.db.Exec(`UPDATE snippets SET use_count = use_count + 1 WHERE id = ?`, id); err != nil {
		log.Warn().Err(err).Str("snippet_id", id).Msg("failed to record snippet use")
	}
}

// List returns all snippets, favorites first, then by use count.
func (s *Store) List() ([]Snippet, error) {
	return s.query(
		`SELECT id, name, command, category, favorite, use_count, created_at, updated_at
		 FROM snippets ORDER BY favorite DESC, use_count DESC, name ASC`)
}

// ListByCategory returns the snippets in one category.
func (s *Store) ListByCategory(category string) ([]Snippet, error) {
	return s.query(
		`SELECT id, name, command, category, favorite, use_count, created_at, updated_at
		 FROM snippets WHERE category = ? ORDER BY favorite DESC, use_count DESC, name ASC`, category)
}

// Search returns snippets whose name or command contains the term.
func (s *Store) Search(term string) ([]Snippet, error) {
	pattern := "%" + escapeLike(term) + "%"
	return s.query(
		`SELECT id, name, command, category, favorite, use_count, created_at, updated_at
		 FROM snippets
		 WHERE name LIKE ? ESCAPE '\' OR command LIKE ? ESCAPE '\'
		 ORDER BY favorite DESC, use_count DESC, name ASC`, pattern, pattern)
}

// Categories returns the distinct non-empty category names in use.
func (s *Store) Categories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM snippets WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) query(q string, args ...any) ([]Snippet, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (Snippet, error) {
	var sn Snippet
	var fav int
	var created, updated string
	err := row.Scan(&sn.ID, &sn.Name, &sn.Command, &sn.Category, &fav, &sn.UseCount, &created, &updated)
	if err == sql.ErrNoRows {
		return Snippet{}, domain.ErrSnippetNotFound
	}
	if err != nil {
		return Snippet{}, err
	}
	sn.Favorite = fav != 0
	sn.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sn.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return sn, nil
}

func checkFound(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSnippetNotFound, id)
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
