package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/hugo"
	"github.com/xrsl/blogx/pkg/signal"
	"github.com/xrsl/blogx/pkg/style"
)

var (
	buildDraftsFlag  bool
	buildEnvFlag     string
	buildBaseURLFlag string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Build the static site with garbage collection and minification.

Runs the site generator with --gc --minify and HUGO_ENV set to the
configured environment (production by default), then verifies the publish
directory is non-empty.

Examples:
  blogx build
  blogx build --drafts --env development
  blogx build --base-url https://staging.example.com`,
	RunE: runSiteBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildDraftsFlag, "drafts", false, "Include draft content")
	buildCmd.Flags().StringVar(&buildEnvFlag, "env", "", "Environment (overrides config)")
	buildCmd.Flags().StringVar(&buildBaseURLFlag, "base-url", "", "Base URL (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

func runSiteBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	if err := buildSite(ctx, cfg); err != nil {
		return err
	}

	fmt.Printf("%s Site built into %s\n", style.C(style.Green, "✓"), style.C(style.Cyan, cfg.PublishDir))
	return nil
}

// buildSite runs one site build and verifies the output. Shared between the
// build command and the ci pipeline.
func buildSite(ctx context.Context, cfg *config.Config) error {
	env := cfg.Site.Environment
	if buildEnvFlag != "" {
		env = buildEnvFlag
	}

	opts := hugo.DefaultOptions(env)
	opts.Drafts = buildDraftsFlag
	if buildBaseURLFlag != "" {
		opts.BaseURL = buildBaseURLFlag
	} else if cfg.Site.BaseURL != "" {
		opts.BaseURL = cfg.Site.BaseURL
	}

	fmt.Printf("%s Building site (%s)...\n", style.C(style.Cyan, "⧗"), env)
	output, err := site.Build(ctx, opts)
	if err != nil {
		return err
	}
	if len(output) > 0 && verbose {
		fmt.Println(style.C(style.Gray, output))
	}

	return hugo.VerifyPublishDir(cfg.PublishDir)
}
