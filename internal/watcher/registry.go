package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps each tracked file's absolute path to the count of lines
// already consumed from it. It is mutated only by the single watch loop
// goroutine, so no locking is needed.
type Registry map[string]int

// Reconcile updates the registry against the current directory listing:
// paths in the listing but not yet tracked are added at offset 0, and
// tracked paths absent from the listing are dropped. It returns the added
// and removed paths in lexicographic order. Running it twice on the same
// listing is a no-op the second time.
func (r Registry) Reconcile(listing []string) (added, removed []string) {
	current := make(map[string]bool, len(listing))
	for _, path := range listing {
		current[path] = true
		if _, tracked := r[path]; !tracked {
			r[path] = 0
			added = append(added, path)
		}
	}

	for path := range r {
		if !current[path] {
			delete(r, path)
			removed = append(removed, path)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

// Paths returns the tracked paths in lexicographic order so that each
// cycle processes files in a reproducible order.
func (r Registry) Paths() []string {
	paths := make([]string, 0, len(r))
	for path := range r {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ListMatching lists dir and returns the absolute paths of regular files
// whose names end in ext, sorted lexicographically. The suffix test is
// case-sensitive. Directories never match.
func ListMatching(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
