package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	ResetForTest(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ContentDir != "content/posts" {
		t.Errorf("content_dir = %q, want content/posts", cfg.ContentDir)
	}
	if cfg.PublishDir != "public" {
		t.Errorf("publish_dir = %q, want public", cfg.PublishDir)
	}
	if cfg.Site.DefaultBranch != "main" {
		t.Errorf("site.default_branch = %q, want main", cfg.Site.DefaultBranch)
	}
	if cfg.Site.PublishBranch != "gh-pages" {
		t.Errorf("site.publish_branch = %q, want gh-pages", cfg.Site.PublishBranch)
	}
	if cfg.Site.Environment != "production" {
		t.Errorf("site.environment = %q, want production", cfg.Site.Environment)
	}
	if cfg.Resume.Engine != "latexmk" {
		t.Errorf("resume.engine = %q, want latexmk", cfg.Resume.Engine)
	}
}

func TestSetGet(t *testing.T) {
	ResetForTest(t.TempDir())

	if err := Set("author", "Jane Doe"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := Get("author")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "Jane Doe" {
		t.Errorf("author = %q, want Jane Doe", got)
	}
}

func TestSetPersists(t *testing.T) {
	dir := t.TempDir()
	ResetForTest(dir)

	if err := Set("site.base_url", "https://blog.example.com/"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh viper instance must pick the value up from the file
	ResetForTest(dir)

	got, err := Get("site.base_url")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "https://blog.example.com/" {
		t.Errorf("site.base_url = %q after reload", got)
	}
}

func TestUnknownKey(t *testing.T) {
	ResetForTest(t.TempDir())

	if _, err := Get("nonexistent.key"); err == nil {
		t.Error("Get should reject unknown keys")
	}
	if err := Set("nonexistent.key", "x"); err == nil {
		t.Error("Set should reject unknown keys")
	}
}

func TestAll(t *testing.T) {
	ResetForTest(t.TempDir())

	all, err := All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != len(knownKeys) {
		t.Errorf("expected %d keys, got %d", len(knownKeys), len(all))
	}
	if all["resume.source_dir"] != "resume" {
		t.Errorf("resume.source_dir = %q, want resume", all["resume.source_dir"])
	}
}

func TestEnvOverride(t *testing.T) {
	ResetForTest(t.TempDir())
	os.Setenv("BLOGX_PUBLISH_DIR", "dist")
	defer os.Unsetenv("BLOGX_PUBLISH_DIR")

	got, err := Get("publish_dir")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "dist" {
		t.Errorf("publish_dir = %q, want dist from environment", got)
	}
}
