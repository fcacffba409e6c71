package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/workflow"
)

var lintRulesFlag string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate article front matter",
	Long: `Validate every article's front matter against the required-field rules.

Rules come from .blogx/frontmatter.yaml (or built-in defaults when the
file doesn't exist). Exits non-zero when any article fails.

Examples:
  blogx lint
  blogx lint --rules custom-rules.yaml`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintRulesFlag, "rules", workflow.RulesPath, "Rules file")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	rules, err := content.LoadRulesOrDefault(lintRulesFlag)
	if err != nil {
		return err
	}

	articles, parseErrs := content.Scan(cfg.ContentDir)

	var violations []content.Violation
	for _, a := range articles {
		violations = append(violations, rules.Validate(a)...)
	}

	for _, e := range parseErrs {
		fmt.Printf("%s %v\n", style.C(style.Red, "✗"), e)
	}
	for _, v := range violations {
		fmt.Printf("%s %s\n", style.C(style.Red, "✗"), v)
	}

	if len(parseErrs) > 0 || len(violations) > 0 {
		return fmt.Errorf("%d article(s) checked, %d problem(s)", len(articles), len(parseErrs)+len(violations))
	}

	fmt.Printf("%s %d article(s) checked, front matter OK\n", style.C(style.Green, "✓"), len(articles))
	return nil
}
