package rules

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrUndecodable is returned for documents that are not valid UTF-8.
var ErrUndecodable = errors.New("document is not valid UTF-8")

var (
	headingPattern = regexp.MustCompile(`(?i)^ {0,3}#{1,6}\s*\[\s*(规则|约定|rule|convention)\s*(\d+)\s*\]\s*(.*)$`)
	leadingMarker  = regexp.MustCompile(`(?i)^\[\s*(ENABLED|DISABLED)\s*\]\s*`)
	trailingMarker = regexp.MustCompile(`(?i)\s*\[\s*(ENABLED|DISABLED)\s*\]\s*#*\s*$`)
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
	fencePrefixes  = []string{"```", "~~~"}
)

// Rule is one declared rule heading.
type Rule struct {
	ID      string
	Title   string
	Enabled bool
	Line    int
}

// Document is a parsed spec document.
type Document struct {
	Name  string
	Path  string
	Rules []Rule
}

// Enabled returns the set of enabled rule ids.
func (d *Document) Enabled() map[string]bool {
	set := make(map[string]bool)
	for _, r := range d.Rules {
		if r.Enabled {
			set[r.ID] = true
		}
	}
	return set
}

// Lookup returns the rule declared with the given id.
func (d *Document) Lookup(id string) (Rule, bool) {
	for _, r := range d.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// ParseDocument extracts rule headings from a document.
//
// Headings inside fenced code blocks are ignored. When the same id is
// declared more than once, the rule is enabled only if every declaration
// is enabled; the first declaration's title and line are kept.
func ParseDocument(name string, data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("parse %s: %w", name, ErrUndecodable)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	doc := &Document{Name: name}
	seen := make(map[string]int)
	inFence := false

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")

		if isFence(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		rule, ok := parseHeading(line)
		if !ok {
			continue
		}
		rule.Line = i + 1

		if idx, dup := seen[rule.ID]; dup {
			doc.Rules[idx].Enabled = doc.Rules[idx].Enabled && rule.Enabled
			continue
		}
		seen[rule.ID] = len(doc.Rules)
		doc.Rules = append(doc.Rules, rule)
	}

	return doc, nil
}

func isFence(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	for _, p := range fencePrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func parseHeading(line string) (Rule, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return Rule{}, false
	}

	rule := Rule{ID: normalizeID(m[2]), Enabled: true}
	rest := strings.TrimSpace(m[3])

	if lm := leadingMarker.FindStringSubmatch(rest); lm != nil {
		rule.Enabled = !strings.EqualFold(lm[1], "DISABLED")
		rest = rest[len(lm[0]):]
	}
	if tm := trailingMarker.FindStringSubmatchIndex(rest); tm != nil {
		if strings.EqualFold(rest[tm[2]:tm[3]], "DISABLED") {
			rule.Enabled = false
		}
		rest = rest[:tm[0]]
	}

	rule.Title = strings.TrimSpace(rest)
	return rule, true
}

// normalizeID drops leading zeros so "08" and "8" name the same rule.
func normalizeID(id string) string {
	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
