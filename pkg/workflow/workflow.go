package workflow

import (
	_ "embed"
	"os"
)

//go:embed defaults/archetype.md
var DefaultArchetype string

//go:embed defaults/frontmatter.yaml
var DefaultRules string

const (
	ArchetypePath = ".blogx/archetype.md"
	RulesPath     = ".blogx/frontmatter.yaml"
	RunsPath      = ".blogx/runs"
)

// Init creates the .blogx/ directory structure with default files.
func Init() error {
	dirs := []string{".blogx", RunsPath}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	// Create default archetype if it doesn't exist
	if _, err := os.Stat(ArchetypePath); os.IsNotExist(err) {
		if err := os.WriteFile(ArchetypePath, []byte(DefaultArchetype), 0o644); err != nil {
			return err
		}
	}

	// Create default front matter rules if they don't exist
	if _, err := os.Stat(RulesPath); os.IsNotExist(err) {
		if err := os.WriteFile(RulesPath, []byte(DefaultRules), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// LoadArchetype loads the article archetype from .blogx/archetype.md
func LoadArchetype() (string, error) {
	content, err := os.ReadFile(ArchetypePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultArchetype, nil
		}
		return "", err
	}
	return string(content), nil
}

// Reset overwrites the scaffolded files with the embedded defaults.
func Reset() error {
	if err := os.MkdirAll(".blogx", 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(ArchetypePath, []byte(DefaultArchetype), 0o644); err != nil {
		return err
	}
	return os.WriteFile(RulesPath, []byte(DefaultRules), 0o644)
}
