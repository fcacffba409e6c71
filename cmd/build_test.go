package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/hugo"
)

// fakeRunner stands in for the hugo binary.
type fakeRunner struct {
	opts    hugo.Options
	fail    bool
	produce string // dir to drop an index.html into on success
}

func (f *fakeRunner) Build(ctx context.Context, opts hugo.Options) (string, error) {
	f.opts = opts
	if f.fail {
		return "", errors.New("build failed")
	}
	if f.produce != "" {
		if err := os.MkdirAll(f.produce, 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(f.produce, "index.html"), []byte("<html></html>"), 0o644); err != nil {
			return "", err
		}
	}
	return "built", nil
}

func (f *fakeRunner) Available() bool { return true }

func TestBuildSite(t *testing.T) {
	publishDir := filepath.Join(t.TempDir(), "public")
	fake := &fakeRunner{produce: publishDir}

	orig := site
	site = fake
	defer func() { site = orig }()

	cfg := &config.Config{
		PublishDir: publishDir,
		Site: config.SiteConfig{
			Environment: "production",
			BaseURL:     "https://blog.example.com/",
		},
	}

	if err := buildSite(context.Background(), cfg); err != nil {
		t.Fatalf("buildSite failed: %v", err)
	}

	if !fake.opts.GC || !fake.opts.Minify {
		t.Errorf("build should request gc and minify, got %+v", fake.opts)
	}
	if fake.opts.Environment != "production" {
		t.Errorf("environment = %q, want production", fake.opts.Environment)
	}
	if fake.opts.BaseURL != "https://blog.example.com/" {
		t.Errorf("base url = %q, want the configured one", fake.opts.BaseURL)
	}
}

func TestBuildSiteEmptyOutput(t *testing.T) {
	// The runner "succeeds" but produces nothing; verification must fail.
	fake := &fakeRunner{}

	orig := site
	site = fake
	defer func() { site = orig }()

	cfg := &config.Config{
		PublishDir: filepath.Join(t.TempDir(), "public"),
		Site:       config.SiteConfig{Environment: "production"},
	}

	if err := buildSite(context.Background(), cfg); err == nil {
		t.Error("expected error when the publish dir was not produced")
	}
}

func TestBuildSiteRunnerError(t *testing.T) {
	fake := &fakeRunner{fail: true}

	orig := site
	site = fake
	defer func() { site = orig }()

	cfg := &config.Config{
		PublishDir: filepath.Join(t.TempDir(), "public"),
	}

	if err := buildSite(context.Background(), cfg); err == nil {
		t.Error("expected build error to propagate")
	}
}
