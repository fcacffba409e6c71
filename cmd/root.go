package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	clog "github.com/xrsl/blogx/pkg/log"
	"github.com/xrsl/blogx/pkg/style"
)

var (
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "blogx",
	Short: "A CLI for blog publishing workflows",
	Long: `blogx runs the publishing pipeline for a markdown blog.

Validate front matter, resolve internal links, compile the resume PDF,
build the static site, and publish the output to the hosting branch -
locally or from CI, with the same gating either way.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		clog.SetVerbose(verbose)
		clog.SetQuiet(quiet)
	},
}

func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Setup Typer-style help formatting
	style.SetupHelp(rootCmd)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
