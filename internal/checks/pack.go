package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
	"gopkg.in/yaml.v3"
)

// PackFile is the YAML layout of a rule pack.
//
// Example pack (aws.yaml):
//
//	name: aws
//	rules:
//	  - document: security-spec
//	    rule: "8"
//	    title: "No hardcoded credentials"
//	    severity: ERROR
//	    regex: 'AKIA[0-9A-Z]{16}'
//	    languages: [typescript, javascript, python]
//	    message: "AWS access key id in source: {match}"
//	    suggestion: "load it from the environment"
//	    exempt: [example]
//
// A rule only runs when its document and rule id are enabled in the spec
// documents, exactly like the built-in checks.
type PackFile struct {
	Name  string     `yaml:"name"`
	Rules []PackRule `yaml:"rules"`
}

// PackRule is one pattern in a rule pack.
type PackRule struct {
	Document   string   `yaml:"document"`
	Rule       string   `yaml:"rule"`
	Title      string   `yaml:"title"`
	Severity   string   `yaml:"severity"`
	Regex      string   `yaml:"regex"`
	Languages  []string `yaml:"languages,omitempty"`
	Message    string   `yaml:"message"`
	Suggestion string   `yaml:"suggestion,omitempty"`

	// Exempt lists substrings that exempt a line (case-insensitive)
	Exempt []string `yaml:"exempt,omitempty"`

	// FileLevel reports once per file at line 0 instead of per line
	FileLevel bool `yaml:"file_level,omitempty"`
}

// PackChecker runs the rules of one pack.
type PackChecker struct {
	name      string
	table     []PatternRule
	fileRules []FileRule
}

// LoadPack reads and compiles a rule pack file.
func LoadPack(path string) (*PackChecker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule pack: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pack, err := ParsePack(name, data)
	if err != nil {
		return nil, fmt.Errorf("rule pack %s: %w", path, err)
	}
	return pack, nil
}

// ParsePack compiles a rule pack. defaultName is used when the pack has no name.
func ParsePack(defaultName string, data []byte) (*PackChecker, error) {
	var file PackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if file.Name == "" {
		file.Name = defaultName
	}
	if file.Name == "" {
		return nil, fmt.Errorf("pack name is required")
	}

	c := &PackChecker{name: "pack:" + file.Name}
	for i, r := range file.Rules {
		if err := c.add(r); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return c, nil
}

func (c *PackChecker) add(r PackRule) error {
	if r.Document == "" {
		return fmt.Errorf("document is required")
	}
	if r.Rule == "" {
		return fmt.Errorf("rule is required")
	}
	if r.Regex == "" {
		return fmt.Errorf("regex is required")
	}

	severity, err := types.ParseSeverity(r.Severity)
	if err != nil {
		return err
	}

	pattern, err := regexp.Compile(r.Regex)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}

	var langs []Language
	for _, name := range r.Languages {
		lang, err := ParseLanguage(name)
		if err != nil {
			return err
		}
		langs = append(langs, lang)
	}

	message := r.Message
	if message == "" {
		message = r.Title
	}
	if message == "" {
		return fmt.Errorf("message or title is required")
	}

	if r.FileLevel {
		patterns := make(map[Language]*regexp.Regexp)
		if len(langs) == 0 {
			langs = []Language{LangTypeScript, LangJavaScript, LangPython, LangEnv, LangUnknown}
		}
		for _, l := range langs {
			patterns[l] = pattern
		}
		c.fileRules = append(c.fileRules, FileRule{
			Document:   r.Document,
			RuleID:     r.Rule,
			Title:      r.Title,
			Severity:   severity,
			Patterns:   patterns,
			Message:    message,
			Suggestion: r.Suggestion,
		})
		return nil
	}

	exempt := make([]string, len(r.Exempt))
	for i, e := range r.Exempt {
		exempt[i] = strings.ToLower(e)
	}

	c.table = append(c.table, PatternRule{
		Document:  r.Document,
		RuleID:    r.Rule,
		Title:     r.Title,
		Severity:  severity,
		Pattern:   pattern,
		Languages: langs,
		Exempt: func(_ Language, line string) bool {
			return containsAny(line, exempt)
		},
		Message: func(m []string) string {
			return strings.ReplaceAll(message, "{match}", m[0])
		},
		Suggestion: fixed(r.Suggestion),
	})
	return nil
}

// Name implements Checker.
func (c *PackChecker) Name() string {
	return c.name
}

// Len returns the number of compiled rules.
func (c *PackChecker) Len() int {
	return len(c.table) + len(c.fileRules)
}

// Check implements Checker.
func (c *PackChecker) Check(f *File, reg *rules.Registry) []types.Issue {
	var issues []types.Issue
	for _, r := range c.fileRules {
		if issue, ok := r.check(c.Name(), f, reg); ok {
			issues = append(issues, issue)
		}
	}
	return append(issues, scanLines(c.Name(), c.table, f, reg, false)...)
}

// LoadPacks loads every pack path in order. Directories are expanded to the
// .yaml and .yml files they contain.
func LoadPacks(paths []string) ([]*PackChecker, error) {
	var packs []*PackChecker
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("rule pack: %w", err)
		}

		files := []string{p}
		if info.IsDir() {
			files, err = packFilesIn(p)
			if err != nil {
				return nil, err
			}
		}

		for _, file := range files {
			pack, err := LoadPack(file)
			if err != nil {
				return nil, err
			}
			packs = append(packs, pack)
		}
	}
	return packs, nil
}

func packFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rule pack directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
