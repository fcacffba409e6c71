package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		front      FrontMatter
		wantFields []string
	}{
		{
			name: "complete article",
			front: FrontMatter{
				Title:       "A Post",
				Author:      "Jane",
				Date:        "2024-03-01",
				Description: "About something.",
				Tags:        []string{"go"},
			},
			wantFields: nil,
		},
		{
			name:       "everything missing",
			front:      FrontMatter{},
			wantFields: []string{"title", "author", "date", "description", "tags"},
		},
		{
			name: "whitespace-only fields count as empty",
			front: FrontMatter{
				Title:       "  ",
				Author:      "Jane",
				Date:        "2024-03-01",
				Description: "ok",
				Tags:        []string{"go"},
			},
			wantFields: []string{"title"},
		},
		{
			name: "malformed date",
			front: FrontMatter{
				Title:       "A Post",
				Author:      "Jane",
				Date:        "03/01/2024",
				Description: "ok",
				Tags:        []string{"go"},
			},
			wantFields: []string{"date"},
		},
		{
			name: "empty tag in list",
			front: FrontMatter{
				Title:       "A Post",
				Author:      "Jane",
				Date:        "2024-03-01",
				Description: "ok",
				Tags:        []string{"go", ""},
			},
			wantFields: []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Article{Path: "post.md", Front: tt.front}
			got := rules.Validate(a)

			if len(got) != len(tt.wantFields) {
				t.Fatalf("expected %d violations, got %d: %v", len(tt.wantFields), len(got), got)
			}
			for i, v := range got {
				if v.Field != tt.wantFields[i] {
					t.Errorf("violation %d: field = %q, want %q", i, v.Field, tt.wantFields[i])
				}
				if v.Path != "post.md" {
					t.Errorf("violation %d: path = %q, want post.md", i, v.Path)
				}
			}
		})
	}
}

func TestValidateCustomField(t *testing.T) {
	rules := Rules{Required: []string{"title", "series"}}

	a := &Article{Front: FrontMatter{Title: "A Post"}}
	got := rules.Validate(a)
	if len(got) != 1 || got[0].Field != "series" {
		t.Fatalf("expected one violation for series, got %v", got)
	}

	a.Front.Extra = map[string]any{"series": "go-deep-dives"}
	if got := rules.Validate(a); len(got) != 0 {
		t.Errorf("expected no violations with series set, got %v", got)
	}
}

func TestLoadRules(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "frontmatter.yaml")

	if err := os.WriteFile(path, []byte("required:\n  - title\n  - date\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(r.Required) != 2 || r.Required[0] != "title" || r.Required[1] != "date" {
		t.Errorf("unexpected required fields %v", r.Required)
	}
}

func TestLoadRulesEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "frontmatter.yaml")

	if err := os.WriteFile(path, []byte("required: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for rules file with no required fields")
	}
}

func TestLoadRulesOrDefault(t *testing.T) {
	r, err := LoadRulesOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadRulesOrDefault failed: %v", err)
	}
	if len(r.Required) != 5 {
		t.Errorf("expected default rules, got %v", r.Required)
	}
}
