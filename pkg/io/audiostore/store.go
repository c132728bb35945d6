// Package audiostore keeps synthesized audio files on disk under a single
// directory and hands out opaque filenames for later download.
package audiostore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

// New creates the store directory if needed. An empty dir defaults to a
// folder under the system temp dir, matching the service's throwaway-audio
// semantics.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "linguabridge_audio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audio dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a fresh random name and returns the filename.
func (s *Store) Save(data []byte) (string, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".mp3"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing audio file: %w", err)
	}
	return name, nil
}

// Path resolves a stored filename to its on-disk path. Names containing
// path separators are rejected so clients cannot escape the store dir.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid audio filename %q", name)
	}
	p := filepath.Join(s.dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("audio file %q: %w", name, err)
	}
	return p, nil
}
