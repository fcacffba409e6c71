package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/gitx"
	"github.com/xrsl/blogx/pkg/linkcheck"
	"github.com/xrsl/blogx/pkg/pipeline"
	"github.com/xrsl/blogx/pkg/signal"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/workflow"
)

var (
	ciBaseRefFlag   string
	ciNoPublishFlag bool
)

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run the publishing pipeline",
	Long: `Run the whole publishing pipeline, the way CI does:

  1. lint        - front matter checks
  2. resume      - compile, commit and push the PDF, only when resume sources changed
  3. build       - site build; runs once resume has completed, success or not
  4. links       - rendered-site link audit
  5. publish     - only for a push on the default branch

Steps 3-5 observe the earlier outcomes: build always runs after the resume
step has finished (even a failed compile must not block the site), while
publish is skipped when the build failed. A run report is written to
.blogx/runs/.

Examples:
  blogx ci
  blogx ci --base-ref origin/main
  blogx ci --no-publish`,
	RunE: runCI,
}

func init() {
	ciCmd.Flags().StringVar(&ciBaseRefFlag, "base-ref", "origin/main", "Ref the path filter diffs against")
	ciCmd.Flags().BoolVar(&ciNoPublishFlag, "no-publish", false, "Skip the publish step")
	rootCmd.AddCommand(ciCmd)
}

func runCI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if !git.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	branch, err := git.CurrentBranch()
	if err != nil {
		return err
	}
	event := ciEvent()

	changed, err := git.ChangedPaths(ciBaseRefFlag)
	if err != nil {
		return err
	}
	resumeChanged := gitx.AnyUnder(changed, cfg.Resume.SourceDir)

	fmt.Printf("%s Pipeline on %s (%s), %d changed path(s)\n",
		style.C(style.Blue, "→"), style.C(style.Cyan, branch), event, len(changed))

	steps := []pipeline.Step{
		{
			Name: "lint",
			Run: func(ctx context.Context) error {
				return lintStep(cfg)
			},
		},
		{
			Name: "resume",
			Skip: func() (string, bool) {
				if !resumeChanged {
					return "no resume sources changed", true
				}
				return "", false
			},
			Run: func(ctx context.Context) error {
				if err := compileResume(ctx, cfg, false); err != nil {
					return err
				}
				return commitAndPushResume(ctx, cfg)
			},
		},
		{
			// Gated on resume completing, not succeeding
			Name:   "build",
			Always: true,
			Run: func(ctx context.Context) error {
				return buildSite(ctx, cfg)
			},
		},
		{
			Name: "links",
			Run: func(ctx context.Context) error {
				issues, err := linkcheck.AuditPublishDir(cfg.PublishDir)
				if err != nil {
					return err
				}
				if len(issues) > 0 {
					for _, i := range issues {
						fmt.Printf("%s %s\n", style.C(style.Red, "✗"), i)
					}
					return fmt.Errorf("%d broken link(s)", len(issues))
				}
				return nil
			},
		},
		{
			Name: "publish",
			Skip: func() (string, bool) {
				if ciNoPublishFlag {
					return "--no-publish", true
				}
				if reason := publishGate(cfg, branch, event); reason != "" {
					return reason, true
				}
				return "", false
			},
			Run: func(ctx context.Context) error {
				return publishSite(ctx, cfg, false)
			},
		},
	}

	report := pipeline.Run(ctx, branch, event, steps)

	for _, s := range report.Steps {
		switch s.Outcome {
		case pipeline.Success:
			fmt.Printf("%s %-8s %s\n", style.C(style.Green, "✓"), s.Name, style.C(style.Gray, s.Duration.Round(time.Millisecond).String()))
		case pipeline.Skipped:
			fmt.Printf("%s %-8s %s\n", style.C(style.Yellow, "○"), s.Name, style.C(style.Gray, s.Detail))
		case pipeline.Failure:
			fmt.Printf("%s %-8s %s\n", style.C(style.Red, "✗"), s.Name, s.Detail)
		}
	}

	if path, err := report.Save(workflow.RunsPath); err != nil {
		fmt.Printf("%s Failed to save run report: %v\n", style.C(style.Yellow, "⚠"), err)
	} else {
		fmt.Printf("\nRun %s → %s\n", style.C(style.Cyan, report.ID), style.C(style.Gray, path))
	}

	if report.Failed {
		return fmt.Errorf("pipeline failed")
	}
	return nil
}

// lintStep validates front matter without the command's printing.
func lintStep(cfg *config.Config) error {
	rules, err := content.LoadRulesOrDefault(workflow.RulesPath)
	if err != nil {
		return err
	}

	articles, parseErrs := content.Scan(cfg.ContentDir)
	var violations []content.Violation
	for _, a := range articles {
		violations = append(violations, rules.Validate(a)...)
	}

	if len(parseErrs) > 0 || len(violations) > 0 {
		for _, e := range parseErrs {
			fmt.Printf("%s %v\n", style.C(style.Red, "✗"), e)
		}
		for _, v := range violations {
			fmt.Printf("%s %s\n", style.C(style.Red, "✗"), v)
		}
		return fmt.Errorf("%d front matter problem(s)", len(parseErrs)+len(violations))
	}
	return nil
}
