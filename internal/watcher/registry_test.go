package watcher

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFile creates a file with the given content under dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ── Reconcile ────────────────────────────────────────────────────────────────

func TestReconcile_AddsNewAtZero(t *testing.T) {
	r := make(Registry)
	added, removed := r.Reconcile([]string{"/d/a.log", "/d/b.log"})

	if want := []string{"/d/a.log", "/d/b.log"}; !reflect.DeepEqual(added, want) {
		t.Errorf("added = %v, want %v", added, want)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want empty", removed)
	}
	for _, path := range added {
		if r[path] != 0 {
			t.Errorf("offset for %s = %d, want 0", path, r[path])
		}
	}
}

func TestReconcile_SetEquality(t *testing.T) {
	// After reconciling against L2 the key set must equal L2 exactly,
	// regardless of what L1 left behind.
	r := make(Registry)
	r.Reconcile([]string{"/d/a.log", "/d/b.log", "/d/c.log"})
	r["/d/b.log"] = 7

	r.Reconcile([]string{"/d/b.log", "/d/d.log"})

	want := map[string]int{"/d/b.log": 7, "/d/d.log": 0}
	if !reflect.DeepEqual(map[string]int(r), want) {
		t.Errorf("registry = %v, want %v", r, want)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	r := make(Registry)
	listing := []string{"/d/a.log", "/d/b.log"}

	r.Reconcile(listing)
	r["/d/a.log"] = 3

	added, removed := r.Reconcile(listing)
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("second reconcile reported changes: added=%v removed=%v", added, removed)
	}
	if r["/d/a.log"] != 3 {
		t.Errorf("offset lost on no-op reconcile: got %d, want 3", r["/d/a.log"])
	}
}

func TestReconcile_SwapScenario(t *testing.T) {
	// a.log deleted, b.log appears: registry ends as exactly {b.log: 0}.
	r := Registry{"/d/a.log": 5}

	added, removed := r.Reconcile([]string{"/d/b.log"})

	if want := []string{"/d/b.log"}; !reflect.DeepEqual(added, want) {
		t.Errorf("added = %v, want %v", added, want)
	}
	if want := []string{"/d/a.log"}; !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	if want := map[string]int{"/d/b.log": 0}; !reflect.DeepEqual(map[string]int(r), want) {
		t.Errorf("registry = %v, want %v", r, want)
	}
}

func TestPaths_Sorted(t *testing.T) {
	r := Registry{"/d/c.log": 0, "/d/a.log": 0, "/d/b.log": 0}
	want := []string{"/d/a.log", "/d/b.log", "/d/c.log"}
	if got := r.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

// ── ListMatching ─────────────────────────────────────────────────────────────

func TestListMatching_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", "")
	writeFile(t, dir, "b.txt", "")
	c := writeFile(t, dir, "c.log", "")

	paths, err := ListMatching(dir, ".log")
	if err != nil {
		t.Fatalf("ListMatching: %v", err)
	}
	if want := []string{a, c}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestListMatching_CaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "upper.LOG", "")
	lower := writeFile(t, dir, "lower.log", "")

	paths, err := ListMatching(dir, ".log")
	if err != nil {
		t.Fatalf("ListMatching: %v", err)
	}
	if want := []string{lower}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestListMatching_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub.log"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f := writeFile(t, dir, "real.log", "")

	paths, err := ListMatching(dir, ".log")
	if err != nil {
		t.Fatalf("ListMatching: %v", err)
	}
	if want := []string{f}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestListMatching_MissingDirectory(t *testing.T) {
	if _, err := ListMatching(filepath.Join(t.TempDir(), "nope"), ".log"); err == nil {
		t.Error("expected error for missing directory, got nil")
	}
}
