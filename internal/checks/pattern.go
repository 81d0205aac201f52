package checks

import (
	"regexp"
	"slices"
	"strings"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

// PatternRule is one row of a checker table.
type PatternRule struct {
	Document string
	RuleID   string

	// Title is used when the spec document does not supply one.
	Title string

	Severity types.Severity
	Pattern  *regexp.Regexp

	// Languages limits the row to these languages; empty means all.
	Languages []Language

	// Exempt skips a line before matching.
	Exempt func(lang Language, line string) bool

	// Accept filters a match; nil accepts every match.
	Accept func(match []string) bool

	Message    func(match []string) string
	Suggestion func(match []string) string
}

// AppliesTo reports whether the row runs for the language.
func (p PatternRule) AppliesTo(lang Language) bool {
	return len(p.Languages) == 0 || slices.Contains(p.Languages, lang)
}

// Match returns the submatches of the first accepted match on the line.
func (p PatternRule) Match(lang Language, line string) []string {
	if !p.AppliesTo(lang) {
		return nil
	}
	if p.Exempt != nil && p.Exempt(lang, line) {
		return nil
	}
	for _, m := range p.Pattern.FindAllStringSubmatch(line, -1) {
		if p.Accept == nil || p.Accept(m) {
			return m
		}
	}
	return nil
}

func (p PatternRule) issue(checker string, f *File, line int, match []string, reg *rules.Registry) types.Issue {
	title := reg.Title(p.Document, p.RuleID)
	if title == "" {
		title = p.Title
	}

	issue := types.Issue{
		File:     f.Path,
		Line:     line,
		Rule:     types.RuleRef{Document: p.Document, ID: p.RuleID, Title: title},
		Severity: p.Severity,
		Checker:  checker,
	}
	if p.Message != nil {
		issue.Message = p.Message(match)
	}
	if issue.Message == "" {
		issue.Message = title
	}
	if p.Suggestion != nil {
		issue.Suggestion = p.Suggestion(match)
	}
	return issue
}

// scanLines applies the table to every line of f. When firstOnly is set,
// at most one row reports per line (table order decides which).
func scanLines(checker string, table []PatternRule, f *File, reg *rules.Registry, firstOnly bool) []types.Issue {
	var active []PatternRule
	for _, row := range table {
		if row.AppliesTo(f.Lang) && reg.IsEnabled(row.Document, row.RuleID) {
			active = append(active, row)
		}
	}
	if len(active) == 0 {
		return nil
	}

	var issues []types.Issue
	for i, line := range f.Lines {
		for _, row := range active {
			m := row.Match(f.Lang, line)
			if m == nil {
				continue
			}
			issues = append(issues, row.issue(checker, f, i+1, m, reg))
			if firstOnly {
				break
			}
		}
	}
	return issues
}

// FileRule reports at most one file-level issue when its pattern matches
// anywhere in the content.
type FileRule struct {
	Document   string
	RuleID     string
	Title      string
	Severity   types.Severity
	Patterns   map[Language]*regexp.Regexp
	Message    string
	Suggestion string
}

func (r FileRule) check(checker string, f *File, reg *rules.Registry) (types.Issue, bool) {
	if !reg.IsEnabled(r.Document, r.RuleID) {
		return types.Issue{}, false
	}
	re, ok := r.Patterns[f.Lang]
	if !ok || !re.MatchString(f.Content) {
		return types.Issue{}, false
	}

	title := reg.Title(r.Document, r.RuleID)
	if title == "" {
		title = r.Title
	}
	return types.Issue{
		File:       f.Path,
		Line:       0,
		Rule:       types.RuleRef{Document: r.Document, ID: r.RuleID, Title: title},
		Severity:   r.Severity,
		Message:    r.Message,
		Suggestion: r.Suggestion,
		Checker:    checker,
	}, true
}

// fixed returns a message func that ignores the match.
func fixed(s string) func([]string) string {
	return func([]string) string { return s }
}

func containsAny(line string, needles []string) bool {
	lower := strings.ToLower(line)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
