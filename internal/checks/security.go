package checks

import (
	"regexp"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

var (
	// envAccessIdioms mark a line as reading configuration from the environment.
	envAccessIdioms = []string{
		"process.env",
		"import.meta.env",
		"deno.env",
		"os.getenv",
		"os.environ",
	}

	// placeholderMarkers mark a line as an example or template value.
	placeholderMarkers = []string{
		"your-",
		"your_",
		"example",
		"placeholder",
		"changeme",
	}

	sanitizers = []string{"dompurify", "sanitize"}
)

func isSecretExempt(lang Language, line string) bool {
	return isCommentLine(lang, line) ||
		containsAny(line, envAccessIdioms) ||
		containsAny(line, placeholderMarkers)
}

func isSinkExempt(lang Language, line string) bool {
	return isSecretExempt(lang, line) || containsAny(line, sanitizers)
}

var codeLanguages = []Language{LangTypeScript, LangJavaScript, LangPython}

var securityRules = []PatternRule{
	{
		Document:   rules.DocSecurity,
		RuleID:     "8",
		Title:      "No hardcoded credentials",
		Severity:   types.SeverityError,
		Pattern:    regexp.MustCompile(`(?i)(?:API_?KEY|APIKEY)\w*["']?\s*[=:]\s*["'][A-Za-z0-9_\-]{20,}["']`),
		Languages:  codeLanguages,
		Exempt:     isSecretExempt,
		Message:    fixed("possible hardcoded API key"),
		Suggestion: fixed("read the key from an environment variable or a secrets store"),
	},
	{
		Document:   rules.DocSecurity,
		RuleID:     "8",
		Title:      "No hardcoded credentials",
		Severity:   types.SeverityError,
		Pattern:    regexp.MustCompile(`(?i)(?:SECRET|TOKEN|PASSWORD|PASSWD)\w*["']?\s*[=:]\s*["'][^"'\s]{10,}["']`),
		Languages:  codeLanguages,
		Exempt:     isSecretExempt,
		Message:    fixed("possible hardcoded secret or token"),
		Suggestion: fixed("read the value from an environment variable or a secrets store"),
	},
	{
		Document:   rules.DocSecurity,
		RuleID:     "8",
		Title:      "No hardcoded credentials",
		Severity:   types.SeverityError,
		Pattern:    regexp.MustCompile(`["'` + "`" + `]eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+["'` + "`" + `]`),
		Languages:  codeLanguages,
		Exempt:     isSecretExempt,
		Message:    fixed("possible hardcoded JWT"),
		Suggestion: fixed("obtain tokens at runtime instead of embedding them"),
	},
	{
		Document:   rules.DocSecurity,
		RuleID:     "1",
		Title:      "Validate and sanitize input",
		Severity:   types.SeverityError,
		Pattern:    regexp.MustCompile(`\.(?:innerHTML|outerHTML)\s*(?:\+)?=[^=]|\binsertAdjacentHTML\s*\(|\bdocument\.write(?:ln)?\s*\(|\bdangerouslySetInnerHTML\b`),
		Languages:  []Language{LangTypeScript, LangJavaScript},
		Exempt:     isSinkExempt,
		Message:    fixed("unsanitized HTML injection sink"),
		Suggestion: fixed("use textContent, or sanitize the markup with DOMPurify first"),
	},
	{
		Document:   rules.DocSecurity,
		RuleID:     "1",
		Title:      "Validate and sanitize input",
		Severity:   types.SeverityError,
		Pattern:    regexp.MustCompile("(?i)`[^`]*\\b(?:SELECT\\s.*\\bFROM|INSERT\\s+INTO|UPDATE\\s.*\\bSET|DELETE\\s+FROM)\\b[^`]*\\$\\{"),
		Languages:  []Language{LangTypeScript, LangJavaScript},
		Exempt:     isCommentLine,
		Message:    fixed("SQL statement built by string interpolation"),
		Suggestion: fixed("use parameterized queries or an ORM"),
	},
}

// SecurityChecker applies security-spec rules. Every finding is an ERROR
// and each line reports at most once.
type SecurityChecker struct {
	table []PatternRule
}

// NewSecurityChecker returns the checker with the built-in table.
func NewSecurityChecker() *SecurityChecker {
	return &SecurityChecker{table: securityRules}
}

// Name implements Checker.
func (c *SecurityChecker) Name() string {
	return "security"
}

// Check implements Checker.
func (c *SecurityChecker) Check(f *File, reg *rules.Registry) []types.Issue {
	return scanLines(c.Name(), c.table, f, reg, true)
}
