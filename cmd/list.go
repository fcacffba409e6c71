package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/style"
)

var (
	listDrafts    bool
	listScheduled bool
	listTag       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Long: `List articles in the content directory with their front matter.

Examples:
  blogx list
  blogx list --drafts
  blogx list --scheduled
  blogx list --tag golang`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "Only drafts")
	listCmd.Flags().BoolVar(&listScheduled, "scheduled", false, "Only future-dated articles")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter by tag")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	articles, errs := content.Scan(cfg.ContentDir)
	for _, e := range errs {
		fmt.Printf("%s %v\n", style.C(style.Yellow, "⚠"), e)
	}

	now := time.Now()
	var rows []*content.Article
	for _, a := range articles {
		if listDrafts && !a.Front.Draft {
			continue
		}
		if listScheduled && !a.IsScheduled(now) {
			continue
		}
		if listTag != "" && !hasTag(a, listTag) {
			continue
		}
		rows = append(rows, a)
	}

	if len(rows) == 0 {
		fmt.Println("No articles found")
		return nil
	}

	// Newest first; undated articles sink to the bottom
	sort.Slice(rows, func(i, j int) bool {
		di, erri := rows[i].Front.ParsedDate()
		dj, errj := rows[j].Front.ParsedDate()
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.After(dj)
	})

	for _, a := range rows {
		marker := style.C(style.Green, "●")
		switch {
		case a.Front.Draft:
			marker = style.C(style.Yellow, "◌")
		case a.IsScheduled(now):
			marker = style.C(style.Cyan, "◔")
		}

		date := a.Front.Date
		if date == "" {
			date = style.C(style.Gray, "(no date)")
		}

		fmt.Printf("%s %s  %s  %s\n", marker, date, style.B(a.Front.Title), style.C(style.Gray, a.RelPath))
	}

	fmt.Printf("\n%d article(s)\n", len(rows))
	return nil
}

func hasTag(a *content.Article, tag string) bool {
	for _, t := range a.Front.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
