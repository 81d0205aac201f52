// Package checks holds the checker pipeline.
//
// Each Checker scans one File and returns the issues it found. Checkers
// consult the rules.Registry before applying any rule, so a rule that is
// disabled or missing from the spec documents never produces an issue.
//
// Line-oriented checks are expressed as PatternRule tables: a pattern, a
// severity, the languages it applies to and an optional exemption. Adding a
// check means adding a row, not writing a parser. Nothing here builds a
// syntax tree; matching is plain text and regular expressions.
package checks
