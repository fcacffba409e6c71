package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/style"
	"github.com/xrsl/blogx/pkg/utils"
	"github.com/xrsl/blogx/pkg/workflow"
)

var newAuthorFlag string

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new article",
	Long: `Create a new article from the archetype.

The title is slugged into the filename and the front matter is filled with
the configured author and the current date. Articles start as drafts.

Examples:
  blogx new "Shipping a static site from CI"
  blogx new "Hello" --author "Jane Doe"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newAuthorFlag, "author", "", "Author (overrides config)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	slug := content.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", title)
	}

	author := newAuthorFlag
	if author == "" {
		author = cfg.Author
	}
	if author == "" {
		return fmt.Errorf("no author configured. Run: blogx config set author \"Your Name\"")
	}

	path := filepath.Join(cfg.ContentDir, slug+".md")
	if utils.FileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}

	archetype, err := workflow.LoadArchetype()
	if err != nil {
		return fmt.Errorf("error loading archetype: %w", err)
	}

	tmpl, err := template.New("archetype").Parse(archetype)
	if err != nil {
		return fmt.Errorf("error parsing archetype: %w", err)
	}

	data := struct {
		Title  string
		Author string
		Date   string
	}{
		Title:  title,
		Author: author,
		Date:   time.Now().Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("error executing archetype: %w", err)
	}

	if err := utils.WriteFile(path, buf.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("%s Created %s\n", style.C(style.Green, "✓"), style.C(style.Cyan, path))
	return nil
}
