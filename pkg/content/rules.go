package content

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules defines which front matter fields every article must carry.
type Rules struct {
	Required []string `yaml:"required"`
}

// DefaultRules returns the rules applied when no rules file exists.
func DefaultRules() Rules {
	return Rules{
		Required: []string{"title", "author", "date", "description", "tags"},
	}
}

// LoadRules parses a rules YAML file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules: %w", err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules: %w", err)
	}
	if len(r.Required) == 0 {
		return Rules{}, fmt.Errorf("rules file %s lists no required fields", path)
	}
	return r, nil
}

// LoadRulesOrDefault loads rules from path, falling back to the defaults
// when the file does not exist.
func LoadRulesOrDefault(path string) (Rules, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultRules(), nil
	}
	return LoadRules(path)
}

// Violation is one failed front matter check.
type Violation struct {
	Path   string
	Field  string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Path, v.Field, v.Reason)
}

// Validate checks an article's front matter against the rules.
func (r Rules) Validate(a *Article) []Violation {
	var violations []Violation

	path := a.RelPath
	if path == "" {
		path = a.Path
	}
	add := func(field, reason string) {
		violations = append(violations, Violation{Path: path, Field: field, Reason: reason})
	}

	for _, field := range r.Required {
		switch field {
		case "title":
			if strings.TrimSpace(a.Front.Title) == "" {
				add("title", "missing or empty")
			}
		case "author":
			if strings.TrimSpace(a.Front.Author) == "" {
				add("author", "missing or empty")
			}
		case "date":
			if a.Front.Date == "" {
				add("date", "missing")
			} else if _, err := a.Front.ParsedDate(); err != nil {
				add("date", err.Error())
			}
		case "description":
			if strings.TrimSpace(a.Front.Description) == "" {
				add("description", "missing or empty")
			}
		case "tags":
			if len(a.Front.Tags) == 0 {
				add("tags", "missing or empty")
			} else {
				for _, t := range a.Front.Tags {
					if strings.TrimSpace(t) == "" {
						add("tags", "contains an empty tag")
						break
					}
				}
			}
		default:
			// Custom field: require presence in Extra
			val, ok := a.Front.Extra[field]
			if !ok || val == nil || fmt.Sprintf("%v", val) == "" {
				add(field, "missing or empty")
			}
		}
	}

	return violations
}
