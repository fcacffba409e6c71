package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/hugo"
	"github.com/xrsl/blogx/pkg/retry"
	"github.com/xrsl/blogx/pkg/signal"
	"github.com/xrsl/blogx/pkg/style"
)

var publishForceFlag bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the rendered site to the hosting branch",
	Long: `Publish the publish directory to the hosting branch.

Refuses to publish from a branch other than the default branch, or for CI
events other than a push, unless --force is given. Run a build first.

Examples:
  blogx publish
  blogx publish --force`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishForceFlag, "force", false, "Publish regardless of branch or event")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	return publishSite(ctx, cfg, publishForceFlag)
}

// publishGate returns a reason the publish must not happen, or "" when it may.
func publishGate(cfg *config.Config, branch, event string) string {
	if event != "push" {
		return fmt.Sprintf("event is %q, not a push", event)
	}
	if branch != cfg.Site.DefaultBranch {
		return fmt.Sprintf("on branch %q, not %q", branch, cfg.Site.DefaultBranch)
	}
	return ""
}

func publishSite(ctx context.Context, cfg *config.Config, force bool) error {
	if err := hugo.VerifyPublishDir(cfg.PublishDir); err != nil {
		return fmt.Errorf("nothing to publish: %w", err)
	}
	if !git.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	branch, err := git.CurrentBranch()
	if err != nil {
		return err
	}

	if reason := publishGate(cfg, branch, ciEvent()); reason != "" {
		if !force {
			return fmt.Errorf("refusing to publish: %s (use --force to override)", reason)
		}
		fmt.Printf("%s Publishing anyway: %s\n", style.C(style.Yellow, "⚠"), reason)
	}

	message := fmt.Sprintf("publish: site build %s", time.Now().Format(time.RFC3339))

	fmt.Printf("%s Publishing %s to %s...\n",
		style.C(style.Cyan, "⧗"), cfg.PublishDir, style.C(style.Cyan, cfg.Site.PublishBranch))

	// Push failures are usually transient; retry the whole worktree publish
	_, err = retry.Do(ctx, retry.PushConfig(), func() (struct{}, error) {
		if err := git.PublishDir(ctx, cfg.PublishDir, cfg.Site.PublishBranch, message); err != nil {
			return struct{}{}, retry.Retryable(err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s Published to %s\n", style.C(style.Green, "✓"), style.C(style.Cyan, cfg.Site.PublishBranch))
	return nil
}
