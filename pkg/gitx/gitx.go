// Package gitx provides an interface for the git operations the pipeline
// needs: branch inspection, the changed-path filter, committing artifacts
// back, and publishing the rendered site to the hosting branch.
package gitx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git defines the git operations used by blogx commands.
type Git interface {
	// IsRepo reports whether the working directory is inside a git repo.
	IsRepo() bool
	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)
	// ChangedPaths returns the files changed since baseRef. When baseRef is
	// unknown it falls back to the previous commit.
	ChangedPaths(baseRef string) ([]string, error)
	// Add stages the given paths.
	Add(paths ...string) error
	// HasStagedChanges reports whether anything is staged.
	HasStagedChanges() (bool, error)
	// Commit commits staged changes with the given message.
	Commit(message string) error
	// Push pushes the current branch to origin. Network-bound, so it honors
	// context cancellation.
	Push(ctx context.Context) error
	// PublishDir publishes the contents of dir as a commit on branch.
	PublishDir(ctx context.Context, dir, branch, message string) error
}

// DefaultGit implements Git using the git command.
type DefaultGit struct{}

// New returns a new DefaultGit instance
func New() *DefaultGit {
	return &DefaultGit{}
}

func (g *DefaultGit) IsRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

func (g *DefaultGit) CurrentBranch() (string, error) {
	cmd := exec.Command("git", "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("error getting current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func (g *DefaultGit) ChangedPaths(baseRef string) ([]string, error) {
	ref := baseRef
	if ref != "" {
		// Verify the base ref exists before diffing against it
		if err := exec.Command("git", "rev-parse", "--verify", "--quiet", ref).Run(); err != nil {
			ref = ""
		}
	}
	if ref == "" {
		ref = "HEAD~1"
		if err := exec.Command("git", "rev-parse", "--verify", "--quiet", ref).Run(); err != nil {
			// Initial commit: everything tracked counts as changed
			cmd := exec.Command("git", "ls-files")
			output, err := cmd.Output()
			if err != nil {
				return nil, fmt.Errorf("error listing files: %w", err)
			}
			return ParsePathList(string(output)), nil
		}
	}

	cmd := exec.Command("git", "diff", "--name-only", ref+"...HEAD")
	output, err := cmd.Output()
	if err != nil {
		// Three-dot needs a merge base; fall back to a plain diff
		cmd = exec.Command("git", "diff", "--name-only", ref, "HEAD")
		output, err = cmd.Output()
		if err != nil {
			return nil, fmt.Errorf("error diffing against %s: %w", ref, err)
		}
	}
	return ParsePathList(string(output)), nil
}

func (g *DefaultGit) Add(paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	cmd := exec.Command("git", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("error staging changes: %w\n%s", err, string(output))
	}
	return nil
}

func (g *DefaultGit) HasStagedChanges() (bool, error) {
	cmd := exec.Command("git", "diff", "--cached", "--quiet")
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("error checking staged changes: %w", err)
}

func (g *DefaultGit) Commit(message string) error {
	// Set git identity for CI environments
	_ = exec.Command("git", "config", "user.name", "blogx").Run()
	_ = exec.Command("git", "config", "user.email", "blogx@automated").Run()

	cmd := exec.Command("git", "commit", "-m", message)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("error committing changes: %w\n%s", err, string(output))
	}
	return nil
}

func (g *DefaultGit) Push(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "push", "-u", "origin", "HEAD")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("error pushing changes: %w\n%s", err, string(output))
	}
	return nil
}

// PublishDir snapshots dir onto branch through a temporary worktree and
// pushes it. The hosting branch holds rendered output only, so its history
// is replaced rather than merged.
func (g *DefaultGit) PublishDir(ctx context.Context, dir, branch, message string) error {
	worktree, err := os.MkdirTemp("", "blogx-publish-")
	if err != nil {
		return err
	}
	// Cleanup must run even after cancellation, so it uses a plain Command
	defer func() {
		_ = exec.Command("git", "worktree", "remove", "--force", worktree).Run()
		_ = os.RemoveAll(worktree)
	}()

	// Base the worktree on the remote branch when it exists, otherwise
	// start the branch fresh.
	addArgs := []string{"worktree", "add", "-B", branch, worktree}
	if exec.Command("git", "rev-parse", "--verify", "--quiet", "origin/"+branch).Run() == nil {
		addArgs = append(addArgs, "origin/"+branch)
	}
	if output, err := exec.CommandContext(ctx, "git", addArgs...).CombinedOutput(); err != nil {
		return fmt.Errorf("error creating worktree: %w\n%s", err, string(output))
	}

	if err := clearWorktree(worktree); err != nil {
		return err
	}
	if err := copyTree(dir, worktree); err != nil {
		return fmt.Errorf("error copying publish dir: %w", err)
	}

	run := func(args ...string) error {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = worktree
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, string(output))
		}
		return nil
	}

	_ = exec.Command("git", "-C", worktree, "config", "user.name", "blogx").Run()
	_ = exec.Command("git", "-C", worktree, "config", "user.email", "blogx@automated").Run()

	if err := run("add", "-A"); err != nil {
		return err
	}

	// Nothing changed since the last publish
	check := exec.Command("git", "diff", "--cached", "--quiet")
	check.Dir = worktree
	if check.Run() == nil {
		return nil
	}

	if err := run("commit", "-m", message); err != nil {
		return err
	}
	return run("push", "--force", "origin", branch)
}

// ParsePathList splits command output into clean paths.
func ParsePathList(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// AnyUnder reports whether any path is under the given prefix directory.
// This is the pipeline's path filter.
func AnyUnder(paths []string, prefix string) bool {
	prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
	if prefix == "" || prefix == "." {
		return len(paths) > 0
	}
	for _, p := range paths {
		p = filepath.ToSlash(p)
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func clearWorktree(worktree string) error {
	entries, err := os.ReadDir(worktree)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(worktree, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode().Perm())
	})
}
