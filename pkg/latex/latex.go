// Package latex compiles the resume sources to PDF via an external engine.
package latex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	clog "github.com/xrsl/blogx/pkg/log"
)

// Engine names supported for compilation, in preference order.
var engines = []string{"latexmk", "pdflatex"}

// DetectEngine returns the preferred engine on PATH. An explicit preference
// wins when it is available.
func DetectEngine(preferred string) (string, error) {
	if preferred != "" {
		if _, err := exec.LookPath(preferred); err == nil {
			return preferred, nil
		}
		clog.Warn("configured engine not found, falling back", "engine", preferred)
	}
	for _, e := range engines {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no LaTeX engine found in PATH (tried %s)", strings.Join(engines, ", "))
}

// Args builds the compile invocation for an engine. Split out for tests.
func Args(engine, mainFile string) []string {
	switch engine {
	case "latexmk":
		return []string{"-pdf", "-interaction=nonstopmode", "-halt-on-error", mainFile}
	default:
		return []string{"-interaction=nonstopmode", "-halt-on-error", mainFile}
	}
}

// MainSource locates the root .tex file in sourceDir: resume.tex or main.tex
// if present, otherwise the only .tex file.
func MainSource(sourceDir string) (string, error) {
	for _, name := range []string{"resume.tex", "main.tex"} {
		p := filepath.Join(sourceDir, name)
		if _, err := os.Stat(p); err == nil {
			return name, nil
		}
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", sourceDir, err)
	}

	var texFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".tex") {
			texFiles = append(texFiles, e.Name())
		}
	}

	switch len(texFiles) {
	case 0:
		return "", fmt.Errorf("no .tex source in %s", sourceDir)
	case 1:
		return texFiles[0], nil
	default:
		return "", fmt.Errorf("multiple .tex files in %s and none named resume.tex or main.tex", sourceDir)
	}
}

// Sources reads every .tex, .sty and .cls file under sourceDir, keyed by
// path relative to sourceDir. Used for cache keys.
func Sources(sourceDir string) (map[string]string, error) {
	out := make(map[string]string)

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(d.Name()) {
		case ".tex", ".sty", ".cls", ".bib":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			rel = path
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no LaTeX sources under %s", sourceDir)
	}
	return out, nil
}

// Compile runs the engine in sourceDir and returns the path of the produced
// PDF. The engine's working directory is the source dir so relative inputs
// resolve.
func Compile(ctx context.Context, engine, sourceDir string) (string, error) {
	mainFile, err := MainSource(sourceDir)
	if err != nil {
		return "", err
	}

	clog.Debug("compiling resume", "engine", engine, "main", mainFile)

	cmd := exec.CommandContext(ctx, engine, Args(engine, mainFile)...)
	cmd.Dir = sourceDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w\n%s", engine, err, tail(string(output), 30))
	}

	pdf := filepath.Join(sourceDir, strings.TrimSuffix(mainFile, ".tex")+".pdf")
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("%s reported success but %s is missing", engine, pdf)
	}
	return pdf, nil
}

// Install copies the compiled PDF to the static asset path, creating
// directories as needed.
func Install(pdfPath, assetPath string) error {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", pdfPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(assetPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(assetPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", assetPath, err)
	}
	return nil
}

// tail returns the last n lines of s. LaTeX logs are long; the error is at
// the end.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
