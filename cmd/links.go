package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/linkcheck"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/utils"
)

var linksRenderedFlag bool

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Check internal links",
	Long: `Resolve internal links across the site.

Markdown sources are always scanned. With --rendered (or automatically
when the publish dir exists), the rendered HTML is audited too: every
internal href and src must point at a published file. External URLs are
never fetched.

Examples:
  blogx links
  blogx links --rendered`,
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().BoolVar(&linksRenderedFlag, "rendered", false, "Require the rendered-site audit")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	articles, parseErrs := content.Scan(cfg.ContentDir)
	for _, e := range parseErrs {
		fmt.Printf("%s %v\n", style.C(style.Yellow, "⚠"), e)
	}

	checker := linkcheck.Checker{
		ContentDir: cfg.ContentDir,
		StaticDir:  "static",
		PublishDir: cfg.PublishDir,
	}
	issues := checker.CheckAll(articles)

	// Rendered-site audit
	if linksRenderedFlag || utils.DirExists(cfg.PublishDir) {
		htmlIssues, err := linkcheck.AuditPublishDir(cfg.PublishDir)
		if err != nil {
			if linksRenderedFlag {
				return err
			}
			// Publish dir vanished between the check and the walk; skip
		} else {
			issues = append(issues, htmlIssues...)
		}
	}

	for _, issue := range issues {
		fmt.Printf("%s %s\n", style.C(style.Red, "✗"), issue)
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d broken link(s)", len(issues))
	}

	fmt.Printf("%s Internal links OK (%d article(s))\n", style.C(style.Green, "✓"), len(articles))
	return nil
}
