package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// WalkOptions selects which files under the target root are scanned.
type WalkOptions struct {
	// ExcludeDirs are directory names skipped wherever they appear
	ExcludeDirs []string

	// Extensions are file extensions to scan, with the leading dot
	Extensions []string

	// IncludeEnvFiles adds .env and .env.* files regardless of extension
	IncludeEnvFiles bool
}

// DefaultWalkOptions returns the standard exclusions and extensions.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		ExcludeDirs:     []string{"node_modules", "dist", "build", "dist-electron", "dist-web", ".git", "__pycache__", ".venv", "coverage"},
		Extensions:      []string{".ts", ".tsx", ".js", ".jsx", ".py"},
		IncludeEnvFiles: true,
	}
}

// Target is one file to scan.
type Target struct {
	// Path is the file path on disk
	Path string

	// Rel is the slash-separated path relative to the walk root, used in reports
	Rel string
}

// Walk lists every matching file under root in lexical order.
func Walk(root string, opts WalkOptions) ([]Target, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if !info.IsDir() {
		return []Target{{Path: root, Rel: filepath.ToSlash(filepath.Base(root))}}, nil
	}

	var targets []Target
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && slices.Contains(opts.ExcludeDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !opts.wants(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		targets = append(targets, Target{Path: path, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.SortFunc(targets, func(a, b Target) int {
		return strings.Compare(a.Rel, b.Rel)
	})
	return targets, nil
}

func (o WalkOptions) wants(name string) bool {
	if o.IncludeEnvFiles && (name == ".env" || strings.HasPrefix(name, ".env.")) {
		return !isEnvTemplate(name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.Contains(o.Extensions, ext)
}

// isEnvTemplate matches committed templates such as .env.example, which are
// expected to hold placeholder values.
func isEnvTemplate(name string) bool {
	for _, suffix := range []string{".example", ".sample", ".template"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
