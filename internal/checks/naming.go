package checks

import (
	"fmt"
	"regexp"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

var namingRules = []PatternRule{
	{
		Document:  rules.DocNaming,
		RuleID:    "1",
		Title:     "Python variables use snake_case",
		Severity:  types.SeverityWarning,
		Pattern:   regexp.MustCompile(`^\s*([a-z][a-z0-9]*[A-Z][A-Za-z0-9]*)\s*=(?:[^=]|$)`),
		Languages: []Language{LangPython},
		Exempt:    isCommentLine,
		Message: func(m []string) string {
			return fmt.Sprintf("variable %s should use snake_case", m[1])
		},
		Suggestion: func(m []string) string {
			return fmt.Sprintf("rename to %s", toSnakeCase(m[1]))
		},
	},
	{
		Document:  rules.DocNaming,
		RuleID:    "2",
		Title:     "Functions and variables use camelCase",
		Severity:  types.SeverityWarning,
		Pattern:   regexp.MustCompile(`\b(?:function\s*\*?|const|let|var)\s+([a-z][A-Za-z0-9]*_[A-Za-z0-9_]*)\b`),
		Languages: []Language{LangTypeScript, LangJavaScript},
		Exempt:    isCommentLine,
		Message: func(m []string) string {
			return fmt.Sprintf("%s should use camelCase without underscores", m[1])
		},
		Suggestion: func(m []string) string {
			return fmt.Sprintf("rename to %s", toCamelCase(m[1]))
		},
	},
	{
		Document:  rules.DocNaming,
		RuleID:    "4",
		Title:     "Constants use UPPER_SNAKE_CASE",
		Severity:  types.SeverityInfo,
		Pattern:   regexp.MustCompile("\\bexport\\s+const\\s+([A-Za-z_$][\\w$]*)\\s*(?::\\s*[\\w.]+\\s*)?=\\s*(?:\"[^\"]*\"|'[^']*'|`[^`$]*`|-?\\d[\\d_.]*|true|false)\\s*;?\\s*(?://.*)?$"),
		Languages: []Language{LangTypeScript, LangJavaScript},
		Exempt:    isCommentLine,
		Accept: func(m []string) bool {
			return !isUpperSnake(m[1])
		},
		Message: func(m []string) string {
			return fmt.Sprintf("exported constant %s should use UPPER_SNAKE_CASE", m[1])
		},
		Suggestion: func(m []string) string {
			return fmt.Sprintf("rename to %s", toUpperSnakeCase(m[1]))
		},
	},
	{
		Document:  rules.DocNaming,
		RuleID:    "9",
		Title:     "Environment variables use UPPER_SNAKE_CASE",
		Severity:  types.SeverityWarning,
		Pattern:   regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_.\-]*)\s*=`),
		Languages: []Language{LangEnv},
		Exempt:    isCommentLine,
		Accept: func(m []string) bool {
			return !isUpperSnake(m[1])
		},
		Message: func(m []string) string {
			return fmt.Sprintf("environment variable %s should use UPPER_SNAKE_CASE", m[1])
		},
		Suggestion: func(m []string) string {
			return fmt.Sprintf("rename to %s", toUpperSnakeCase(m[1]))
		},
	},
}

// NamingChecker applies naming-conventions rules. Which rows run depends on
// the file's language.
type NamingChecker struct {
	table []PatternRule
}

// NewNamingChecker returns the checker with the built-in table.
func NewNamingChecker() *NamingChecker {
	return &NamingChecker{table: namingRules}
}

// Name implements Checker.
func (c *NamingChecker) Name() string {
	return "naming"
}

// Check implements Checker.
func (c *NamingChecker) Check(f *File, reg *rules.Registry) []types.Issue {
	return scanLines(c.Name(), c.table, f, reg, false)
}
