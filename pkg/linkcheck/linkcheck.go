// Package linkcheck resolves internal links in markdown sources and in the
// rendered site. External URLs are never fetched.
package linkcheck

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/utils"
)

// Issue is one unresolvable link.
type Issue struct {
	File   string
	Target string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: link %q %s", i.File, i.Target, i.Detail)
}

// Link is a reference extracted from a markdown body.
type Link struct {
	Target string
	Line   int
}

// Checker resolves link targets against the workspace layout.
type Checker struct {
	ContentDir string // markdown sources, e.g. content/posts
	StaticDir  string // static assets copied verbatim, e.g. static
	PublishDir string // rendered site output, e.g. public
}

// ExtractLinks pulls inline link and image targets out of a markdown body.
// Fenced code blocks are skipped.
func ExtractLinks(body string) []Link {
	var links []Link
	inFence := false

	for lineNo, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		rest := line
		for {
			// Find the ]( that joins link text to target
			idx := strings.Index(rest, "](")
			if idx == -1 {
				break
			}
			tail := rest[idx+2:]
			end := strings.IndexByte(tail, ')')
			if end == -1 {
				break
			}

			target := strings.TrimSpace(tail[:end])
			// Markdown allows an optional title: [t](url "title")
			if sp := strings.IndexAny(target, " \t"); sp != -1 {
				target = target[:sp]
			}
			if target != "" {
				links = append(links, Link{Target: target, Line: lineNo + 1})
			}

			rest = rest[idx+2+end+1:]
		}
	}

	return links
}

// IsInternal reports whether a target points inside this site.
func IsInternal(target string) bool {
	switch {
	case target == "":
		return false
	case strings.HasPrefix(target, "#"):
		return false // in-page anchor
	case strings.HasPrefix(target, "//"):
		return false // protocol-relative external
	case strings.Contains(target, "://"):
		return false
	case strings.HasPrefix(target, "mailto:"), strings.HasPrefix(target, "tel:"):
		return false
	}
	return true
}

// normalize strips anchors and query strings from a target.
func normalize(target string) string {
	if idx := strings.IndexAny(target, "#?"); idx != -1 {
		target = target[:idx]
	}
	return target
}

// CheckArticle resolves every internal link in one article.
func (c Checker) CheckArticle(a *content.Article) []Issue {
	var issues []Issue

	file := a.RelPath
	if file == "" {
		file = a.Path
	}

	for _, link := range ExtractLinks(a.Body) {
		if !IsInternal(link.Target) {
			continue
		}
		target := normalize(link.Target)
		if target == "" {
			continue
		}
		if !c.resolves(a, target) {
			issues = append(issues, Issue{
				File:   file,
				Target: link.Target,
				Detail: fmt.Sprintf("does not resolve (line %d)", link.Line),
			})
		}
	}

	return issues
}

// CheckAll runs CheckArticle over a corpus.
func (c Checker) CheckAll(articles []*content.Article) []Issue {
	var issues []Issue
	for _, a := range articles {
		issues = append(issues, c.CheckArticle(a)...)
	}
	return issues
}

// resolves tries each location an internal target can legitimately point at:
// a static asset, a rendered output file, or another content page in its
// pretty-URL form.
func (c Checker) resolves(a *content.Article, target string) bool {
	var candidates []string

	if strings.HasPrefix(target, "/") {
		rel := strings.TrimPrefix(target, "/")
		rel = strings.TrimSuffix(rel, "/")
		if c.StaticDir != "" {
			candidates = append(candidates, join(c.StaticDir, rel))
		}
		if c.PublishDir != "" {
			candidates = append(candidates,
				join(c.PublishDir, rel),
				join(c.PublishDir, rel, "index.html"),
			)
		}
		// /posts/my-slug/ -> content/posts/my-slug.md; ContentDir already
		// includes the section prefix, so try both with and without it.
		if c.ContentDir != "" {
			candidates = append(candidates,
				join(c.ContentDir, rel)+".md",
				join(c.ContentDir, rel, "index.md"),
			)
			if idx := strings.IndexByte(rel, '/'); idx != -1 {
				sub := rel[idx+1:]
				candidates = append(candidates,
					join(c.ContentDir, sub)+".md",
					join(c.ContentDir, sub, "index.md"),
				)
			}
		}
	} else {
		// Relative to the article's own directory
		base := dirOf(a.Path)
		rel := strings.TrimSuffix(target, "/")
		candidates = append(candidates,
			join(base, rel),
			join(base, rel)+".md",
			join(base, rel, "index.md"),
		)
	}

	for _, cand := range candidates {
		if utils.FileExists(cand) {
			return true
		}
	}
	return false
}

func join(parts ...string) string {
	return filepath.Join(parts...)
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
