package types

import "fmt"

// RuleRef names the rule an issue was raised under.
// Document is the spec document name without suffix (e.g. "security-spec"),
// ID is the rule number exactly as written in the heading.
type RuleRef struct {
	Document string `json:"document"`
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
}

// String renders the reference as "document#id".
func (r RuleRef) String() string {
	return r.Document + "#" + r.ID
}

// Issue is a single finding. Line is 1-based; 0 means the issue applies
// to the whole file.
type Issue struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Rule       RuleRef  `json:"rule"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Checker    string   `json:"checker,omitempty"`
}

// IsFileLevel reports whether the issue is not anchored to a line.
func (i Issue) IsFileLevel() bool {
	return i.Line == 0
}

// Validate checks if the issue has valid field values
func (i Issue) Validate() error {
	if i.File == "" {
		return fmt.Errorf("file is required")
	}
	if i.Line < 0 {
		return fmt.Errorf("line cannot be negative (got %d)", i.Line)
	}
	if !i.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", i.Severity)
	}
	if i.Rule.Document == "" || i.Rule.ID == "" {
		return fmt.Errorf("rule reference is required")
	}
	if i.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}
