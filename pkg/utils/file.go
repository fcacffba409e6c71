package utils

import (
	"io/fs"
	"os"
	"path/filepath"
)

func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DirNonEmpty reports whether dir contains at least one regular file,
// searching recursively.
func DirNonEmpty(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// DirSize returns the total size in bytes of regular files under dir.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// EnsureBlogxGitignore creates .blogx/.gitignore so run reports and session
// state stay out of git.
func EnsureBlogxGitignore() error {
	gitignorePath := ".blogx/.gitignore"

	// Skip if already exists
	if FileExists(gitignorePath) {
		return nil
	}

	if err := os.MkdirAll(".blogx", 0o755); err != nil {
		return err
	}

	content := "runs/\ncache/\n"
	return os.WriteFile(gitignorePath, []byte(content), 0o644)
}
