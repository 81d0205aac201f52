package types

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// SchemaVersion is the version of the serialized ScanResult.
// Readers accept any result with the same major version.
const SchemaVersion = "v1.1.0"

// Counts tallies issues per severity.
type Counts struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Total   int `json:"total"`
}

// Add counts one issue of the given severity.
func (c *Counts) Add(s Severity) {
	switch s {
	case SeverityError:
		c.Error++
	case SeverityWarning:
		c.Warning++
	case SeverityInfo:
		c.Info++
	}
	c.Total++
}

// Of returns the count for a single severity.
func (c Counts) Of(s Severity) int {
	switch s {
	case SeverityError:
		return c.Error
	case SeverityWarning:
		return c.Warning
	case SeverityInfo:
		return c.Info
	}
	return 0
}

// SkippedFile records a target the scan could not read or decode.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// DocumentInfo describes one spec document that contributed to the registry.
type DocumentInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Enabled  []RuleRef `json:"enabled"`
	Disabled []RuleRef `json:"disabled"`
	Warning  string    `json:"warning,omitempty"`
}

// FileGroup holds the issues of one file, file-level issues first.
type FileGroup struct {
	File      string
	FileLevel []Issue
	Lines     []Issue
}

// ScanResult is the outcome of one scan and the data contract consumed by
// report renderers.
type ScanResult struct {
	SchemaVersion string         `json:"schema_version"`
	RunID         string         `json:"run_id"`
	Stage         string         `json:"stage,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
	SpecDir       string         `json:"spec_dir"`
	TargetDir     string         `json:"target_dir"`
	FilesScanned  int            `json:"files_scanned"`
	Languages     map[string]int `json:"languages,omitempty"`
	Skipped       []SkippedFile  `json:"skipped,omitempty"`
	Documents     []DocumentInfo `json:"documents"`
	Issues        []Issue        `json:"issues"`
	Counts        Counts         `json:"counts"`
}

// HasErrors reports whether any ERROR issue was found.
func (r *ScanResult) HasErrors() bool {
	return r.Counts.Error > 0
}

// ExitCode is 1 when at least one ERROR issue exists and 0 otherwise.
func (r *ScanResult) ExitCode() int {
	if r.HasErrors() {
		return 1
	}
	return 0
}

// Groups splits the issues per file, keeping their current order.
func (r *ScanResult) Groups() []FileGroup {
	var groups []FileGroup
	index := make(map[string]int)
	for _, issue := range r.Issues {
		i, ok := index[issue.File]
		if !ok {
			i = len(groups)
			index[issue.File] = i
			groups = append(groups, FileGroup{File: issue.File})
		}
		if issue.IsFileLevel() {
			groups[i].FileLevel = append(groups[i].FileLevel, issue)
		} else {
			groups[i].Lines = append(groups[i].Lines, issue)
		}
	}
	return groups
}

// RuleTotals returns the number of enabled and declared rules across documents.
func (r *ScanResult) RuleTotals() (enabled, total int) {
	for _, doc := range r.Documents {
		enabled += len(doc.Enabled)
		total += len(doc.Enabled) + len(doc.Disabled)
	}
	return enabled, total
}

// ComplianceRate scores the run from 0 to 100. A clean scan scores 100;
// otherwise errors weigh 10 and every issue weighs 5, relative to the
// number of declared rules.
func (r *ScanResult) ComplianceRate() int {
	enabled, total := r.RuleTotals()
	if r.FilesScanned == 0 {
		if total == 0 {
			return 100
		}
		return int(math.Round(float64(enabled) / float64(total) * 100))
	}
	if r.Counts.Total == 0 {
		return 100
	}
	if total == 0 {
		return 0
	}
	penalty := math.Round(float64(r.Counts.Error*10+r.Counts.Total*5) / float64(total) * 100)
	return max(0, 100-int(penalty))
}

// SortIssues orders issues by file, severity, line, rule and message.
// The order is total, so the same set of issues always sorts the same way.
func SortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Severity.Rank(), b.Severity.Rank()),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Rule.Document, b.Rule.Document),
			cmp.Compare(a.Rule.ID, b.Rule.ID),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
