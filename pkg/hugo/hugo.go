// Package hugo drives the external site generator. Rendering markdown is
// the generator's job; blogx only owns invocation and output verification.
package hugo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	clog "github.com/xrsl/blogx/pkg/log"
	"github.com/xrsl/blogx/pkg/utils"
)

// Options controls one site build.
type Options struct {
	Environment string // value for HUGO_ENV, e.g. "production"
	BaseURL     string // optional --baseURL override
	Destination string // optional --destination override
	Drafts      bool   // include draft content
	GC          bool   // run the generator's resource garbage collection
	Minify      bool   // minify rendered output
}

// DefaultOptions matches the pipeline's production build.
func DefaultOptions(environment string) Options {
	return Options{
		Environment: environment,
		GC:          true,
		Minify:      true,
	}
}

// Runner abstracts the generator binary so commands can be tested without it.
type Runner interface {
	// Build runs a site build and returns the tool's combined output.
	Build(ctx context.Context, opts Options) (string, error)
	// Available reports whether the generator binary is on PATH.
	Available() bool
}

// ExecRunner runs the real hugo binary.
type ExecRunner struct{}

func New() *ExecRunner {
	return &ExecRunner{}
}

// Args converts options to command-line arguments. Split out for tests.
func Args(opts Options) []string {
	var args []string
	if opts.GC {
		args = append(args, "--gc")
	}
	if opts.Minify {
		args = append(args, "--minify")
	}
	if opts.Drafts {
		args = append(args, "--buildDrafts")
	}
	if opts.BaseURL != "" {
		args = append(args, "--baseURL", opts.BaseURL)
	}
	if opts.Destination != "" {
		args = append(args, "--destination", opts.Destination)
	}
	if opts.Environment != "" {
		args = append(args, "--environment", opts.Environment)
	}
	return args
}

func (r *ExecRunner) Available() bool {
	_, err := exec.LookPath("hugo")
	return err == nil
}

func (r *ExecRunner) Build(ctx context.Context, opts Options) (string, error) {
	if !r.Available() {
		return "", fmt.Errorf("hugo not found in PATH. Install: https://gohugo.io/installation/")
	}

	args := Args(opts)
	clog.Debug("running site build", "args", args)

	cmd := exec.CommandContext(ctx, "hugo", args...)
	cmd.Env = os.Environ()
	if opts.Environment != "" {
		cmd.Env = append(cmd.Env, "HUGO_ENV="+opts.Environment)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("site build failed: %w\n%s", err, string(output))
	}
	return string(output), nil
}

// VerifyPublishDir checks that a build actually produced a site: the dir
// must exist, contain files, and have a root index page.
func VerifyPublishDir(dir string) error {
	if !utils.DirExists(dir) {
		return fmt.Errorf("publish dir %s was not created", dir)
	}
	if !utils.DirNonEmpty(dir) {
		return fmt.Errorf("publish dir %s is empty", dir)
	}
	if !utils.FileExists(filepath.Join(dir, "index.html")) {
		return fmt.Errorf("publish dir %s has no index.html", dir)
	}
	return nil
}
