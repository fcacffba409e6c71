package linkcheck

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	clog "github.com/xrsl/blogx/pkg/log"
	"github.com/xrsl/blogx/pkg/utils"
)

// AuditPublishDir walks the rendered site and verifies that every internal
// href and src points at a file that was actually published.
func AuditPublishDir(publishDir string) ([]Issue, error) {
	if !utils.DirExists(publishDir) {
		return nil, fmt.Errorf("publish dir %s does not exist (run a build first)", publishDir)
	}

	var issues []Issue

	err := filepath.WalkDir(publishDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		pageIssues, err := auditPage(publishDir, path)
		if err != nil {
			clog.Warn("skipping unparseable page", "path", path, "error", err)
			return nil
		}
		issues = append(issues, pageIssues...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return issues, nil
}

func auditPage(publishDir, path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(publishDir, path)
	if err != nil {
		rel = path
	}

	var issues []Issue
	check := func(target string) {
		if !IsInternal(target) {
			return
		}
		t := normalize(target)
		if t == "" {
			return
		}
		if !publishedTargetExists(publishDir, filepath.Dir(path), t) {
			issues = append(issues, Issue{File: rel, Target: target, Detail: "not present in publish dir"})
		}
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			check(href)
		}
	})
	doc.Find("img[src], script[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			check(src)
		}
	})
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			check(href)
		}
	})

	return issues, nil
}

// publishedTargetExists resolves a target from a rendered page. Root-relative
// targets resolve from the publish dir, everything else from the page's own
// directory. Directory-style URLs must contain an index.html.
func publishedTargetExists(publishDir, pageDir, target string) bool {
	var base string
	if strings.HasPrefix(target, "/") {
		base = filepath.Join(publishDir, strings.TrimPrefix(target, "/"))
	} else {
		base = filepath.Join(pageDir, target)
	}

	if utils.FileExists(base) {
		return true
	}
	if utils.DirExists(base) {
		return utils.FileExists(filepath.Join(base, "index.html"))
	}
	// Pretty URL without trailing slash
	return utils.FileExists(base + ".html")
}
