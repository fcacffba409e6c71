// Package cache stores compile records so unchanged resume sources are not
// recompiled on every pipeline run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Key computes a deterministic SHA256 hash over the compile inputs.
// Order is critical: engine first, then each source path followed by its
// content, paths sorted.
func Key(engine string, sources map[string]string) string {
	h := sha256.New()
	h.Write([]byte(engine))

	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		h.Write([]byte(p))
		h.Write([]byte(sources[p]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Record describes one completed compile.
type Record struct {
	Engine     string    `json:"engine"`
	Artifact   string    `json:"artifact"`
	CompiledAt time.Time `json:"compiled_at"`
}

// baseDir is overridable for tests.
var baseDir = ""

// Path returns the path to the record file for a given key.
func Path(key string) string {
	dir := baseDir
	if dir == "" {
		dir = filepath.Join(os.ExpandEnv("$HOME"), ".cache", "blogx", "resume")
	}
	return filepath.Join(dir, key+".json")
}

// Read reads the cached record for a given key.
func Read(key string) (*Record, error) {
	data, err := os.ReadFile(Path(key))
	if err != nil {
		return nil, err // file not found is expected for cache miss
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse cache record: %w", err)
	}
	return &rec, nil
}

// Write writes a record for a given key.
func Write(key string, rec Record) error {
	path := Path(key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Exists checks if a record exists for a key.
func Exists(key string) bool {
	_, err := os.Stat(Path(key))
	return err == nil
}

// SetBaseDirForTest redirects cache storage (only use in tests).
func SetBaseDirForTest(dir string) {
	baseDir = dir
}
