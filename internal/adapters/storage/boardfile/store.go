package boardfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CreateNewBoardEntry is the sentinel appended to every scan result. It
// never resolves to a file path; selecting it signals that no existing
// board was chosen.
const CreateNewBoardEntry = "[Create New Board]"

// Store discovers and names board files under a base directory.
type Store struct {
	baseDir string
}

// NewStore constructs a store over the given base directory. An empty
// base directory is allowed and yields a store with persistence disabled.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: strings.TrimSpace(baseDir)}
}

// BaseDir returns the configured base directory, empty when unset.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Configured reports whether a base directory is known.
func (s *Store) Configured() bool {
	return s.baseDir != ""
}

// Scan lists the boards under the base directory as display names, sorted,
// with the create-new sentinel appended. The base directory is created when
// missing. Returns ErrNotConfigured when no base directory is known.
func (s *Store) Scan() ([]string, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create boards directory: %w", err)
	}
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read boards directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".txt")
		names = append(names, strings.ReplaceAll(stem, "_", " "))
	}
	sort.Strings(names)
	return append(names, CreateNewBoardEntry), nil
}

// PathFor maps a display name back to its file path: lowercase, spaces to
// underscores, ".txt" appended. The mapping is lossy; case and any
// underscore-vs-space ambiguity in the original name are not recoverable.
func (s *Store) PathFor(displayName string) string {
	stem := strings.ReplaceAll(strings.ToLower(displayName), " ", "_")
	return filepath.Join(s.baseDir, stem+".txt")
}

// IsCreateNew reports whether the display name is the create-new sentinel.
func IsCreateNew(displayName string) bool {
	return displayName == CreateNewBoardEntry
}
