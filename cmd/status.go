package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/pipeline"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/utils"
	"github.com/xrsl/blogx/pkg/workflow"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace status",
	Long: `Show an overview of the workspace: article counts, front matter
health, publish dir state, and the last pipeline run.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	fmt.Printf("\n%s\n\n", style.B(style.C(style.Cyan, "blogx status")))

	// Content
	articles, parseErrs := content.Scan(cfg.ContentDir)
	now := time.Now()
	var drafts, scheduled int
	for _, a := range articles {
		if a.Front.Draft {
			drafts++
		} else if a.IsScheduled(now) {
			scheduled++
		}
	}
	published := len(articles) - drafts - scheduled

	fmt.Printf("%s %s\n", style.C(style.Blue, "→"), style.B("Content"))
	fmt.Printf("  %-12s %d\n", "published", published)
	fmt.Printf("  %-12s %d\n", "drafts", drafts)
	fmt.Printf("  %-12s %d\n", "scheduled", scheduled)
	if len(parseErrs) > 0 {
		fmt.Printf("  %-12s %s\n", "unparseable", style.C(style.Red, fmt.Sprintf("%d", len(parseErrs))))
	}

	// Front matter health
	rules, err := content.LoadRulesOrDefault(workflow.RulesPath)
	if err == nil {
		var violations int
		for _, a := range articles {
			violations += len(rules.Validate(a))
		}
		if violations == 0 {
			fmt.Printf("  %-12s %s\n", "front matter", style.C(style.Green, "ok"))
		} else {
			fmt.Printf("  %-12s %s\n", "front matter", style.C(style.Red, fmt.Sprintf("%d violation(s)", violations)))
		}
	}

	// Publish dir
	fmt.Printf("\n%s %s\n", style.C(style.Blue, "→"), style.B("Site"))
	if utils.DirExists(cfg.PublishDir) && utils.DirNonEmpty(cfg.PublishDir) {
		size, _ := utils.DirSize(cfg.PublishDir)
		fmt.Printf("  %-12s %s (%d KiB)\n", cfg.PublishDir, style.C(style.Green, "built"), size/1024)
	} else {
		fmt.Printf("  %-12s %s\n", cfg.PublishDir, style.C(style.Gray, "not built"))
	}

	// Resume artifact
	if utils.FileExists(cfg.Resume.AssetPath) {
		fmt.Printf("  %-12s %s\n", "resume", style.C(style.Green, cfg.Resume.AssetPath))
	} else {
		fmt.Printf("  %-12s %s\n", "resume", style.C(style.Gray, "not compiled"))
	}

	// Last pipeline run
	fmt.Printf("\n%s %s\n", style.C(style.Blue, "→"), style.B("Last run"))
	last, err := pipeline.Latest(workflow.RunsPath)
	if err != nil || last == nil {
		fmt.Printf("  %s\n", style.C(style.Gray, "no pipeline runs recorded"))
	} else {
		state := style.C(style.Green, "ok")
		if last.Failed {
			state = style.C(style.Red, "failed")
		}
		fmt.Printf("  %s %s on %s (%s)\n",
			state, last.StartedAt.Format("2006-01-02 15:04"), last.Branch, last.ID[:8])
		for _, s := range last.Steps {
			fmt.Printf("    %-8s %s\n", s.Name, string(s.Outcome))
		}
	}

	fmt.Println()
	return nil
}
