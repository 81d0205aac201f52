// Package rules reads spec documents and answers which rules are enabled.
//
// A spec document is markdown. Every rule is declared by a heading of the form
//
//	## [规则 8] Secure configuration [ENABLED]
//	## [约定 4] [DISABLED] Constant naming
//
// The status marker is optional and may follow the bracketed label or end the
// line. A rule without a marker is enabled. The Registry built from the
// documents is immutable and fail-closed: a rule it does not know about is
// treated as disabled.
package rules
