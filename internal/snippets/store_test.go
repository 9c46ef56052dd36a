package snippets

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aterm-app/aterm/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snippets.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CreateAndGet(t *testing.T) {
	s := openTestStore(t)

	sn, err := s.Create("run tests", "go test ./...", "go")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sn.ID == "" {
		t.Fatal("Create() returned empty id")
	}

	got, err := s.Get(sn.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "run tests" || got.Command != "go test ./..." || got.Category != "go" {
		t.Errorf("Get() = %+v", got)
	}
	if got.Favorite || got.UseCount != 0 {
		t.Errorf("new snippet should start unfavorited with zero uses: %+v", got)
	}
}

func TestStore_CreateValidation(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Create("", "cmd", ""); err == nil {
		t.Error("Create() accepted empty name")
	}
	if _, err := s.Create("name", "  ", ""); err == nil {
		t.Error("Create() accepted blank command")
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	s := openTestStore(t)

	sn, _ := s.Create("build", "make", "")
	if err := s.Update(sn.ID, "build all", "make all", "make"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := s.Get(sn.ID)
	if got.Name != "build all" || got.Command != "make all" || got.Category != "make" {
		t.Errorf("Update() lost fields: %+v", got)
	}

	if err := s.Delete(sn.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(sn.ID); !errors.Is(err, domain.ErrSnippetNotFound) {
		t.Errorf("Get() after delete = %v, want ErrSnippetNotFound", err)
	}
}

func TestStore_UnknownIDs(t *testing.T) {
	s := openTestStore(t)

	if err := s.Update("missing", "n", "c", ""); !errors.Is(err, domain.ErrSnippetNotFound) {
		t.Errorf("Update(missing) = %v, want ErrSnippetNotFound", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, domain.ErrSnippetNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrSnippetNotFound", err)
	}
	if err := s.SetFavorite("missing", true); !errors.Is(err, domain.ErrSnippetNotFound) {
		t.Errorf("SetFavorite(missing) = %v, want ErrSnippetNotFound", err)
	}
	// RecordUse tolerates unknown ids silently.
	s.RecordUse("missing")
}

func TestStore_ListOrdering(t *testing.T) {
	s := openTestStore(t)

	a, _ := s.Create("alpha", "echo a", "")
	b, _ := s.Create("beta", "echo b", "")
	c, _ := s.Create("gamma", "echo c", "")

	// beta is favorited, gamma is heavily used.
	if err := s.SetFavorite(b.ID, true); err != nil {
		t.Fatal(err)
	}
	s.RecordUse(c.ID)
	s.RecordUse(c.ID)

	list, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d snippets, want 3", len(list))
	}
	if list[0].ID != b.ID {
		t.Errorf("favorites should sort first, got %q", list[0].Name)
	}
	if list[1].ID != c.ID {
		t.Errorf("higher use count should sort next, got %q", list[1].Name)
	}
	if list[2].ID != a.ID {
		t.Errorf("expected alpha last, got %q", list[2].Name)
	}

	got, _ := s.Get(c.ID)
	if got.UseCount != 2 {
		t.Errorf("use count = %d, want 2", got.UseCount)
	}
}

func TestStore_Search(t *testing.T) {
	s := openTestStore(t)

	_, _ = s.Create("deploy staging", "kubectl apply -f staging.yaml", "k8s")
	_, _ = s.Create("logs", "kubectl logs -f", "k8s")
	_, _ = s.Create("git status", "git status", "git")

	found, err := s.Search("kubectl")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Search(kubectl) found %d, want 2", len(found))
	}

	// LIKE metacharacters are treated literally.
	found, err = s.Search("100%")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 0 {
		t.Errorf("Search(100%%) found %d, want 0", len(found))
	}
}

func TestStore_Categories(t *testing.T) {
	s := openTestStore(t)

	_, _ = s.Create("a", "cmd", "git")
	_, _ = s.Create("b", "cmd", "k8s")
	_, _ = s.Create("c", "cmd", "git")
	_, _ = s.Create("d", "cmd", "")

	cats, err := s.Categories()
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if len(cats) != 2 || cats[0] != "git" || cats[1] != "k8s" {
		t.Errorf("Categories() = %v, want [git k8s]", cats)
	}

	inCat, err := s.ListByCategory("git")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(inCat) != 2 {
		t.Errorf("ListByCategory(git) = %d snippets, want 2", len(inCat))
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	sn, _ := s.Create("persist", "echo hi", "")
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = s2.Close() }()

	got, err := s2.Get(sn.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Name != "persist" {
		t.Errorf("Get() after reopen = %+v", got)
	}
}
