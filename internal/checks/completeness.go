package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

// SuspiciousPackages are import names that do not exist in any registry.
var SuspiciousPackages = []string{
	"super-magic-lib",
	"fake-package",
	"non-existent",
	"magic-helper",
	"dummy-lib",
}

// placeholderAttribute matches UI placeholder attributes and properties,
// which are not unresolved values.
var placeholderAttribute = regexp.MustCompile(`(?i)(?:\bplaceholder\s*[=:]|\.placeholder\b)`)

func isPlaceholderAttribute(_ Language, line string) bool {
	return placeholderAttribute.MatchString(line) && !strings.Contains(strings.ToLower(line), "your-")
}

var completenessRules = []PatternRule{
	{
		Document: rules.DocRequirements,
		RuleID:   "1",
		Title:    "Generate complete, runnable code",
		Severity: types.SeverityWarning,
		Pattern:  regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX|HACK)\b`),
		Message: func(m []string) string {
			return fmt.Sprintf("%s marker left in code", strings.ToUpper(m[1]))
		},
		Suggestion: fixed("finish the implementation or track it in an issue"),
	},
	{
		Document: rules.DocRequirements,
		RuleID:   "1",
		Title:    "Generate complete, runnable code",
		Severity: types.SeverityError,
		Pattern:  regexp.MustCompile(`(?i)\byour-[a-z0-9][\w-]*|\bplaceholder\b`),
		Exempt:   isPlaceholderAttribute,
		Message: func(m []string) string {
			return fmt.Sprintf("unresolved placeholder %q", m[0])
		},
		Suggestion: fixed("replace the placeholder with a real value"),
	},
	{
		Document:  rules.DocRequirements,
		RuleID:    "10",
		Title:     "Code must compile",
		Severity:  types.SeverityInfo,
		Pattern:   regexp.MustCompile(`(?:\bfrom\s+|\brequire\s*\(\s*|\bimport\s*\(\s*|^\s*import\s+)["']((?:\.\./){3,}[^"']*)["']`),
		Languages: []Language{LangTypeScript, LangJavaScript},
		Exempt:    isCommentLine,
		Message: func(m []string) string {
			return fmt.Sprintf("relative import %s climbs %d directories", m[1], strings.Count(m[1], "../"))
		},
		Suggestion: fixed("use a path alias such as @/ instead of deep relative paths"),
	},
	{
		Document:  rules.DocRequirements,
		RuleID:    "13",
		Title:     "Only use libraries that exist",
		Severity:  types.SeverityError,
		Pattern:   regexp.MustCompile(`(?:\bimport\b|\brequire\s*\(|\bfrom\b).*["']((?:` + strings.Join(quoteAll(SuspiciousPackages), "|") + `)(?:/[^"']*)?)["']`),
		Languages: []Language{LangTypeScript, LangJavaScript},
		Exempt:    isCommentLine,
		Message: func(m []string) string {
			return fmt.Sprintf("import of a package that does not exist: %s", m[1])
		},
		Suggestion: fixed("check the package exists in the registry before importing it"),
	},
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = regexp.QuoteMeta(n)
	}
	return out
}

// CompletenessChecker applies requirements-spec rules. Markers and
// placeholders on the same line are reported separately.
type CompletenessChecker struct {
	table []PatternRule
}

// NewCompletenessChecker returns the checker with the built-in table.
func NewCompletenessChecker() *CompletenessChecker {
	return &CompletenessChecker{table: completenessRules}
}

// Name implements Checker.
func (c *CompletenessChecker) Name() string {
	return "completeness"
}

// Check implements Checker.
func (c *CompletenessChecker) Check(f *File, reg *rules.Registry) []types.Issue {
	return scanLines(c.Name(), c.table, f, reg, false)
}
