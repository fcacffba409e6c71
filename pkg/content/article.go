// Package content models markdown articles and their front matter.
package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// FrontMatter is the metadata block at the top of an article. Unknown keys
// are kept in Extra so a rewrite never loses them.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	Author      string         `yaml:"author,omitempty"`
	Date        string         `yaml:"date,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Tags        []string       `yaml:"tags,omitempty"`
	Draft       bool           `yaml:"draft,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// Article is one markdown content file.
type Article struct {
	Path    string // absolute or workspace-relative path to the file
	RelPath string // path relative to the scanned content dir, for display
	Front   FrontMatter
	Body    string // everything after the closing front matter delimiter
}

// dateFormats are the layouts accepted for front matter dates, most
// specific first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsedDate parses the front matter date field.
func (f FrontMatter) ParsedDate() (time.Time, error) {
	if f.Date == "" {
		return time.Time{}, fmt.Errorf("date not set")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, f.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", f.Date)
}

// IsScheduled reports whether the article is dated in the future. A future
// date is valid content, the site generator just won't render it yet.
func (a *Article) IsScheduled(now time.Time) bool {
	t, err := a.Front.ParsedDate()
	if err != nil {
		return false
	}
	return t.After(now)
}

// Split separates raw file bytes into the front matter block and the body.
// The front matter must start on the first line.
func Split(data []byte) (front, body []byte, err error) {
	s := string(data)
	if !strings.HasPrefix(s, delimiter+"\n") {
		// A file that is nothing but the opening delimiter has no closing one
		if s == delimiter {
			return nil, nil, fmt.Errorf("front matter not terminated")
		}
		return nil, nil, fmt.Errorf("no front matter block")
	}

	rest := s[len(delimiter)+1:]
	idx := strings.Index(rest, "\n"+delimiter)
	if idx == -1 {
		return nil, nil, fmt.Errorf("front matter not terminated")
	}

	front = []byte(rest[:idx])
	after := rest[idx+1+len(delimiter):]
	// Skip the newline that ends the closing delimiter line
	after = strings.TrimPrefix(after, "\n")
	body = []byte(after)
	return front, body, nil
}

// Parse parses raw file bytes into an Article.
func Parse(path string, data []byte) (*Article, error) {
	front, body, err := Split(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(front, &fm); err != nil {
		return nil, fmt.Errorf("%s: invalid front matter: %w", path, err)
	}

	return &Article{
		Path:  path,
		Front: fm,
		Body:  string(body),
	}, nil
}

// Load reads and parses an article from disk.
func Load(path string) (*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Render serializes the article back to file bytes. The body is emitted
// byte-for-byte; only the front matter block is re-encoded.
func (a *Article) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&a.Front); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(delimiter + "\n")
	buf.WriteString(a.Body)
	return buf.Bytes(), nil
}

// Save writes the article back to its path.
func (a *Article) Save() error {
	data, err := a.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(a.Path, data, 0o644)
}

// Scan walks dir and parses every markdown file. Parse failures are
// returned as errors alongside the articles that did parse, so callers can
// report them without losing the rest of the corpus.
func Scan(dir string) ([]*Article, []error) {
	var articles []*Article
	var errs []error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		// _index.md and friends carry section metadata, not articles
		if strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		art, err := Parse(path, data)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		if rel, relErr := filepath.Rel(dir, path); relErr == nil {
			art.RelPath = rel
		} else {
			art.RelPath = path
		}
		articles = append(articles, art)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return articles, errs
}

// Slugify converts a title into a filename-safe slug.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
