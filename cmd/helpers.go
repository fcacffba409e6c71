package cmd

import (
	"os"

	"github.com/xrsl/blogx/pkg/gitx"
	"github.com/xrsl/blogx/pkg/hugo"
)

// Exec-backed defaults, swapped out by tests.
var (
	git  gitx.Git    = gitx.New()
	site hugo.Runner = hugo.New()
)

// getenv is a seam for tests.
var getenv = os.Getenv

// ciEvent returns the CI event name when running under a CI runner, or
// "push" for local invocations so the same gating logic applies.
func ciEvent() string {
	if name := getenv("GITHUB_EVENT_NAME"); name != "" {
		return name
	}
	return "push"
}
