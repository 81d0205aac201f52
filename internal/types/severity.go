package types

import (
	"fmt"
	"strings"
)

// Severity ranks an issue. ERROR outranks WARNING, which outranks INFO.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Rank returns 0 for ERROR, 1 for WARNING, 2 for INFO.
// Unknown values sort after INFO.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	}
	return 3
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() <= min.Rank()
}

// ParseSeverity accepts any casing of ERROR, WARNING or INFO.
func ParseSeverity(value string) (Severity, error) {
	s := Severity(strings.ToUpper(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid severity %q (want ERROR, WARNING or INFO)", value)
	}
	return s, nil
}
