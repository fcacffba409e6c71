package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage blogx configuration",
	Long: `Read and write the workspace configuration.

  blogx config list
  blogx config get <key>
  blogx config set <key> <value>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigList(cmd, args)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value.

Keys:
  author               Default article author
  content_dir          Markdown content directory
  publish_dir          Rendered site output directory
  model                AI model for suggest (gemini-2.5-flash, claude-sonnet-4-5, ...)
  site.base_url        Site base URL
  site.default_branch  Branch publishing is gated on
  site.publish_branch  Hosting branch for rendered output
  site.environment     Environment passed to the site generator
  resume.source_dir    LaTeX resume source directory
  resume.asset_path    Where the compiled PDF lands in static assets
  resume.engine        LaTeX engine (latexmk or pdflatex)

Examples:
  blogx config set author "Jane Doe"
  blogx config set site.base_url https://blog.example.com
  blogx config set resume.engine pdflatex`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE:  runConfigList,
}

func runConfigList(cmd *cobra.Command, args []string) error {
	all, err := config.All()
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", style.B(style.C(style.Cyan, "blogx config")))
	fmt.Printf("%s\n\n", style.C(style.Gray, config.Path()))

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := all[k]
		if v == "" {
			fmt.Printf("  %-21s %s\n", k, style.C(style.Gray, "(not set)"))
		} else {
			fmt.Printf("  %-21s %s\n", k, style.C(style.Green, v))
		}
	}
	fmt.Println()
	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
