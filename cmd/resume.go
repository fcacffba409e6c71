package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/cache"
	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/latex"
	"github.com/xrsl/blogx/pkg/retry"
	"github.com/xrsl/blogx/pkg/signal"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/utils"
)

var (
	resumeCommitFlag  bool
	resumeNoCacheFlag bool
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Compile the resume PDF",
	Long: `Compile the LaTeX resume source and install it as a static asset.

When the sources are unchanged since the last compile, the compile is
skipped via the artifact cache. With --commit, the installed PDF is
committed back to the repository - this is what the CI pipeline does when
resume sources change.

Examples:
  blogx resume
  blogx resume --commit
  blogx resume --no-cache`,
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().BoolVar(&resumeCommitFlag, "commit", false, "Commit the installed PDF")
	resumeCmd.Flags().BoolVar(&resumeNoCacheFlag, "no-cache", false, "Recompile even when sources are unchanged")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	if err := compileResume(ctx, cfg, resumeNoCacheFlag); err != nil {
		return err
	}

	if resumeCommitFlag {
		if _, err := commitResumeAsset(cfg); err != nil {
			return err
		}
	}
	return nil
}

// compileResume compiles the resume sources and installs the PDF at the
// configured asset path. A cache hit skips the compile but still verifies
// the installed artifact.
func compileResume(ctx context.Context, cfg *config.Config, noCache bool) error {
	engine, err := latex.DetectEngine(cfg.Resume.Engine)
	if err != nil {
		return err
	}

	sources, err := latex.Sources(cfg.Resume.SourceDir)
	if err != nil {
		return err
	}

	key := cache.Key(engine, sources)
	if !noCache && cache.Exists(key) && utils.FileExists(cfg.Resume.AssetPath) {
		fmt.Printf("%s Resume unchanged, compile skipped\n", style.C(style.Green, "✓"))
		return nil
	}

	fmt.Printf("%s Compiling resume with %s...\n", style.C(style.Cyan, "⧗"), engine)
	pdf, err := latex.Compile(ctx, engine, cfg.Resume.SourceDir)
	if err != nil {
		return err
	}

	if err := latex.Install(pdf, cfg.Resume.AssetPath); err != nil {
		return err
	}
	fmt.Printf("%s Installed %s\n", style.C(style.Green, "✓"), style.C(style.Cyan, cfg.Resume.AssetPath))

	if err := cache.Write(key, cache.Record{
		Engine:     engine,
		Artifact:   cfg.Resume.AssetPath,
		CompiledAt: time.Now(),
	}); err != nil {
		fmt.Printf("%s Failed to write cache: %v\n", style.C(style.Yellow, "⚠"), err)
	}
	return nil
}

// commitResumeAsset stages and commits the installed PDF. Reports whether a
// commit was actually created.
func commitResumeAsset(cfg *config.Config) (bool, error) {
	if !git.IsRepo() {
		return false, fmt.Errorf("not a git repository")
	}

	if err := git.Add(cfg.Resume.AssetPath); err != nil {
		return false, err
	}

	staged, err := git.HasStagedChanges()
	if err != nil {
		return false, err
	}
	if !staged {
		fmt.Printf("%s No changes to commit\n", style.C(style.Yellow, "⚠"))
		return false, nil
	}

	if err := git.Commit("resume: update compiled PDF"); err != nil {
		return false, err
	}
	fmt.Printf("%s Committed %s\n", style.C(style.Green, "✓"), cfg.Resume.AssetPath)
	return true, nil
}

// commitAndPushResume commits the installed PDF and pushes the commit
// upstream. On an ephemeral CI runner a local commit evaporates with the
// workspace, so the pipeline pushes it back.
func commitAndPushResume(ctx context.Context, cfg *config.Config) error {
	committed, err := commitResumeAsset(cfg)
	if err != nil {
		return err
	}
	if !committed {
		return nil
	}

	_, err = retry.Do(ctx, retry.PushConfig(), func() (struct{}, error) {
		if err := git.Push(ctx); err != nil {
			return struct{}{}, retry.Retryable(err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s Pushed %s\n", style.C(style.Green, "✓"), cfg.Resume.AssetPath)
	return nil
}
