package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/latex"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/utils"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system setup for blogx",
	Long:  `Verify the external tools and configuration the pipeline needs.`,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Printf("%s Checking blogx setup\n\n", style.C(style.Blue, "→"))

	allGood := true

	// Check 1: hugo on PATH
	if !site.Available() {
		fmt.Printf("%s hugo is not installed\n", style.C(style.Red, "✗"))
		fmt.Printf("  Install: https://gohugo.io/installation/\n")
		allGood = false
	} else {
		fmt.Printf("%s hugo installed\n", style.C(style.Green, "✓"))
	}

	// Check 2: git repo
	if !git.IsRepo() {
		fmt.Printf("%s not inside a git repository\n", style.C(style.Red, "✗"))
		allGood = false
	} else {
		fmt.Printf("%s git repository\n", style.C(style.Green, "✓"))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s config unreadable: %v\n", style.C(style.Red, "✗"), err)
		return fmt.Errorf("setup issues detected")
	}

	// Check 3: LaTeX engine (only matters when a resume source exists)
	if utils.DirExists(cfg.Resume.SourceDir) {
		if engine, err := latex.DetectEngine(cfg.Resume.Engine); err != nil {
			fmt.Printf("%s no LaTeX engine found\n", style.C(style.Red, "✗"))
			fmt.Printf("  Install latexmk or pdflatex to compile %s\n", cfg.Resume.SourceDir)
			allGood = false
		} else {
			fmt.Printf("%s %s available\n", style.C(style.Green, "✓"), engine)
		}
	} else {
		fmt.Printf("%s no resume sources (%s), LaTeX not required\n", style.C(style.Yellow, "○"), cfg.Resume.SourceDir)
	}

	// Check 4: content dir
	if utils.DirExists(cfg.ContentDir) {
		fmt.Printf("%s content dir %s exists\n", style.C(style.Green, "✓"), cfg.ContentDir)
	} else {
		fmt.Printf("%s content dir %s missing\n", style.C(style.Red, "✗"), cfg.ContentDir)
		allGood = false
	}

	fmt.Println()

	// API keys only matter for suggest
	fmt.Printf("%s Checking API credentials (for suggest)\n\n", style.C(style.Blue, "→"))

	hasAnthropicKey := os.Getenv("ANTHROPIC_API_KEY") != ""
	hasGeminiKey := os.Getenv("GEMINI_API_KEY") != ""

	if hasAnthropicKey {
		fmt.Printf("%s ANTHROPIC_API_KEY set\n", style.C(style.Green, "✓"))
	} else {
		fmt.Printf("%s ANTHROPIC_API_KEY not set (required for claude-* models)\n", style.C(style.Yellow, "⚠"))
	}

	if hasGeminiKey {
		fmt.Printf("%s GEMINI_API_KEY set\n", style.C(style.Green, "✓"))
	} else {
		fmt.Printf("%s GEMINI_API_KEY not set (required for gemini-* models)\n", style.C(style.Yellow, "⚠"))
	}

	fmt.Println()

	if allGood {
		fmt.Printf("%s Setup OK\n", style.C(style.Green, "✓"))
		return nil
	}
	return fmt.Errorf("setup issues detected")
}
