package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleArticle = `---
title: "Shipping a static site from CI"
author: Jane Doe
date: 2024-03-01
description: How the publishing pipeline works.
tags:
  - ci
  - hugo
---

Intro paragraph.

## Details

Body text with [a link](/posts/other-post/).
`

func TestParse(t *testing.T) {
	a, err := Parse("test.md", []byte(sampleArticle))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if a.Front.Title != "Shipping a static site from CI" {
		t.Errorf("unexpected title %q", a.Front.Title)
	}
	if a.Front.Author != "Jane Doe" {
		t.Errorf("unexpected author %q", a.Front.Author)
	}
	if len(a.Front.Tags) != 2 || a.Front.Tags[0] != "ci" {
		t.Errorf("unexpected tags %v", a.Front.Tags)
	}
	if a.Body == "" || a.Body[:5] != "\nIntr" {
		t.Errorf("body not preserved, got %q...", a.Body[:10])
	}
}

func TestParseNoFrontMatter(t *testing.T) {
	if _, err := Parse("x.md", []byte("# Just a heading\n")); err == nil {
		t.Error("expected error for missing front matter")
	}
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	if _, err := Parse("x.md", []byte("---\ntitle: foo\n")); err == nil {
		t.Error("expected error for unterminated front matter")
	}
}

func TestSplitDegenerateInputs(t *testing.T) {
	// Stub files must come back as parse errors, never crash a scan
	for _, in := range []string{"---", "---\n", "--", ""} {
		if _, _, err := Split([]byte(in)); err == nil {
			t.Errorf("Split(%q) should fail", in)
		}
	}
}

func TestRenderPreservesBody(t *testing.T) {
	a, err := Parse("test.md", []byte(sampleArticle))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	a.Front.Description = "Rewritten."
	out, err := a.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	reparsed, err := Parse("test.md", out)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if reparsed.Front.Description != "Rewritten." {
		t.Errorf("description not updated, got %q", reparsed.Front.Description)
	}
	if reparsed.Body != a.Body {
		t.Errorf("body changed across render:\nbefore: %q\nafter:  %q", a.Body, reparsed.Body)
	}
}

func TestRenderKeepsUnknownFields(t *testing.T) {
	in := "---\ntitle: T\nseries: go-deep-dives\n---\nbody\n"
	a, err := Parse("x.md", []byte(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, err := a.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	reparsed, err := Parse("x.md", out)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if reparsed.Front.Extra["series"] != "go-deep-dives" {
		t.Errorf("unknown field dropped, extra = %v", reparsed.Front.Extra)
	}
}

func TestParsedDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2024-03-01", false},
		{"2024-03-01T10:30:00", false},
		{"2024-03-01T10:30:00Z", false},
		{"2024-03-01T10:30:00+02:00", false},
		{"01/03/2024", true},
		{"yesterday", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			fm := FrontMatter{Date: tt.date}
			_, err := fm.ParsedDate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsedDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestIsScheduled(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	future := &Article{Front: FrontMatter{Date: "2024-04-01"}}
	if !future.IsScheduled(now) {
		t.Error("future-dated article should be scheduled")
	}

	past := &Article{Front: FrontMatter{Date: "2024-03-01"}}
	if past.IsScheduled(now) {
		t.Error("past-dated article should not be scheduled")
	}

	undated := &Article{}
	if undated.IsScheduled(now) {
		t.Error("undated article should not be scheduled")
	}
}

func TestScan(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("first.md", "---\ntitle: First\n---\nbody\n")
	write("nested/second.md", "---\ntitle: Second\n---\nbody\n")
	write("_index.md", "---\ntitle: Section\n---\n")
	write("notes.txt", "not markdown")
	write("broken.md", "no front matter here")

	articles, errs := Scan(tmpDir)

	if len(articles) != 2 {
		t.Errorf("expected 2 articles, got %d", len(articles))
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 parse error (broken.md), got %d: %v", len(errs), errs)
	}

	for _, a := range articles {
		if a.RelPath == "" {
			t.Errorf("article %s has empty RelPath", a.Path)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Shipping a Static Site from CI!", "shipping-a-static-site-from-ci"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"C'est déjà l'été", "c-est-d-j-l-t"},
		{"100% Go", "100-go"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
