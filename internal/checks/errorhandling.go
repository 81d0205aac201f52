package checks

import (
	"regexp"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

var (
	emptyScriptCatch = regexp.MustCompile(`\bcatch\s*(?:\([^)]*\))?\s*\{(?:\s|//[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/)*\}`)
	emptyPythonCatch = regexp.MustCompile(`(?m)^[ \t]*except\b[^\n]*:(?:[ \t]*(?:#[^\n]*)?\n(?:[ \t]*(?:#[^\n]*)?\n)*)?[ \t]*pass[ \t]*(?:#[^\n]*)?$`)
)

// emptyCatchRule reports one file-level issue however many empty handlers
// the file contains.
var emptyCatchRule = FileRule{
	Document: rules.DocErrorHandling,
	RuleID:   "5",
	Title:    "Never swallow errors",
	Severity: types.SeverityError,
	Patterns: map[Language]*regexp.Regexp{
		LangTypeScript: emptyScriptCatch,
		LangJavaScript: emptyScriptCatch,
		LangPython:     emptyPythonCatch,
	},
	Message:    "file contains an empty or comment-only exception handler",
	Suggestion: "log, recover from or rethrow the error inside every handler",
}

var errorHandlingRules = []PatternRule{
	{
		Document:   rules.DocErrorHandling,
		RuleID:     "3",
		Title:      "Use custom error types",
		Severity:   types.SeverityInfo,
		Pattern:    regexp.MustCompile(`\bthrow\s+new\s+Error\s*\(`),
		Languages:  []Language{LangTypeScript, LangJavaScript},
		Exempt:     isCommentLine,
		Message:    fixed("generic Error thrown"),
		Suggestion: fixed("throw a custom error class that carries a code and context"),
	},
	{
		Document:   rules.DocErrorHandling,
		RuleID:     "3",
		Title:      "Use custom error types",
		Severity:   types.SeverityInfo,
		Pattern:    regexp.MustCompile(`\braise\s+Exception\s*\(`),
		Languages:  []Language{LangPython},
		Exempt:     isCommentLine,
		Message:    fixed("generic Exception raised"),
		Suggestion: fixed("raise a custom exception class"),
	},
}

// ErrorHandlingChecker applies error-handling-spec rules.
type ErrorHandlingChecker struct {
	fileRules []FileRule
	table     []PatternRule
}

// NewErrorHandlingChecker returns the checker with the built-in rules.
func NewErrorHandlingChecker() *ErrorHandlingChecker {
	return &ErrorHandlingChecker{
		fileRules: []FileRule{emptyCatchRule},
		table:     errorHandlingRules,
	}
}

// Name implements Checker.
func (c *ErrorHandlingChecker) Name() string {
	return "error-handling"
}

// Check implements Checker.
func (c *ErrorHandlingChecker) Check(f *File, reg *rules.Registry) []types.Issue {
	var issues []types.Issue
	for _, r := range c.fileRules {
		if issue, ok := r.check(c.Name(), f, reg); ok {
			issues = append(issues, issue)
		}
	}
	return append(issues, scanLines(c.Name(), c.table, f, reg, false)...)
}
