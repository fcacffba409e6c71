package cmd

import (
	"context"
	"testing"

	"github.com/xrsl/blogx/pkg/config"
)

// fakeGit stands in for the git binary.
type fakeGit struct {
	staged  bool
	added   []string
	commits []string
	pushes  int
}

func (f *fakeGit) IsRepo() bool                               { return true }
func (f *fakeGit) CurrentBranch() (string, error)             { return "main", nil }
func (f *fakeGit) ChangedPaths(baseRef string) ([]string, error) { return nil, nil }

func (f *fakeGit) Add(paths ...string) error {
	f.added = append(f.added, paths...)
	return nil
}

func (f *fakeGit) HasStagedChanges() (bool, error) { return f.staged, nil }

func (f *fakeGit) Commit(message string) error {
	f.commits = append(f.commits, message)
	return nil
}

func (f *fakeGit) Push(ctx context.Context) error {
	f.pushes++
	return nil
}

func (f *fakeGit) PublishDir(ctx context.Context, dir, branch, message string) error {
	return nil
}

func resumeConfig() *config.Config {
	return &config.Config{
		Resume: config.ResumeConfig{
			SourceDir: "resume",
			AssetPath: "static/docs/resume.pdf",
		},
	}
}

func TestCommitAndPushResume(t *testing.T) {
	fake := &fakeGit{staged: true}

	orig := git
	git = fake
	defer func() { git = orig }()

	if err := commitAndPushResume(context.Background(), resumeConfig()); err != nil {
		t.Fatalf("commitAndPushResume failed: %v", err)
	}

	if len(fake.added) != 1 || fake.added[0] != "static/docs/resume.pdf" {
		t.Errorf("expected the asset to be staged, added = %v", fake.added)
	}
	if len(fake.commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(fake.commits))
	}
	// The commit must reach the remote, not just the runner's workspace
	if fake.pushes != 1 {
		t.Errorf("expected 1 push after the commit, got %d", fake.pushes)
	}
}

func TestCommitAndPushResumeNothingStaged(t *testing.T) {
	fake := &fakeGit{staged: false}

	orig := git
	git = fake
	defer func() { git = orig }()

	if err := commitAndPushResume(context.Background(), resumeConfig()); err != nil {
		t.Fatalf("commitAndPushResume failed: %v", err)
	}

	if len(fake.commits) != 0 {
		t.Errorf("nothing staged, yet %d commit(s) made", len(fake.commits))
	}
	if fake.pushes != 0 {
		t.Errorf("nothing committed, yet %d push(es) made", fake.pushes)
	}
}
