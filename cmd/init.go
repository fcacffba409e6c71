package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/utils"
	"github.com/xrsl/blogx/pkg/workflow"
)

const (
	initReset = "\033[0m"
	initGreen = "\033[0;32m"
	initCyan  = "\033[0;36m"
	initGray  = "\033[90m"
)

var initResetFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize blogx for this repository",
	Long: `Initialize blogx configuration and directory structure.

Creates:
  .blogx-config.yaml       Configuration file
  .blogx/archetype.md      Front matter template for new articles
  .blogx/frontmatter.yaml  Required-field rules for lint
  .blogx/runs/             Pipeline run reports

Run this once per repository to set up blogx.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initResetFlag, "reset", "r", false, "Reset archetype and rules to defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if initResetFlag {
		if err := workflow.Reset(); err != nil {
			return err
		}
		fmt.Printf("%s✓%s Reset %s and %s to defaults\n", initGreen, initReset, workflow.ArchetypePath, workflow.RulesPath)
		return nil
	}

	// Check if already initialized
	_, configErr := os.Stat(config.Path())
	if configErr == nil && utils.DirExists(".blogx") {
		fmt.Printf("%s✓%s Already initialized\n", initGreen, initReset)
		fmt.Printf("  Config: %s%s%s\n", initGray, config.Path(), initReset)

		// Ensure scaffolded files are present
		if err := workflow.Init(); err != nil {
			fmt.Printf("  Warning: %v\n", err)
		}
		return nil
	}

	cfg, _ := config.Load()
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("\n%sPress Enter to accept defaults shown in brackets.%s\n\n", initGray, initReset)

	// Step 1: Author
	author := cfg.Author
	fmt.Printf("%s?%s Author ", initGreen, initReset)
	if author != "" {
		fmt.Printf("%s[%s]%s: ", initCyan, author, initReset)
	} else {
		fmt.Printf("%s[name]%s: ", initCyan, initReset)
	}
	if input, _ := reader.ReadString('\n'); strings.TrimSpace(input) != "" {
		author = strings.TrimSpace(input)
	}

	// Step 2: Base URL
	baseURL := cfg.Site.BaseURL
	fmt.Printf("%s?%s Site base URL ", initGreen, initReset)
	if baseURL != "" {
		fmt.Printf("%s[%s]%s: ", initCyan, baseURL, initReset)
	} else {
		fmt.Printf("%s[https://example.com]%s: ", initCyan, initReset)
	}
	if input, _ := reader.ReadString('\n'); strings.TrimSpace(input) != "" {
		baseURL = strings.TrimSpace(input)
	}

	cfg.Author = author
	cfg.Site.BaseURL = baseURL
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := workflow.Init(); err != nil {
		return err
	}
	if err := utils.EnsureBlogxGitignore(); err != nil {
		return err
	}

	fmt.Printf("\n%s✓%s Initialized blogx\n", initGreen, initReset)
	fmt.Printf("  Config:    %s%s%s\n", initCyan, config.Path(), initReset)
	fmt.Printf("  Archetype: %s%s%s\n", initCyan, workflow.ArchetypePath, initReset)
	fmt.Printf("  Rules:     %s%s%s\n", initCyan, workflow.RulesPath, initReset)
	fmt.Printf("\nNext: %sblogx new \"My first post\"%s\n", initCyan, initReset)
	return nil
}
