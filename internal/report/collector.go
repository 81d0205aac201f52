package report

import (
	"cmp"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/steveyegge/speclint/internal/types"
)

// Collector accumulates issues from concurrent scanners. Issues are kept
// exactly as reported; nothing is merged or deduplicated.
type Collector struct {
	mu      sync.Mutex
	issues  []types.Issue
	skipped []types.SkippedFile
	scanned int
	langs   map[string]int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends issues found in one file.
func (c *Collector) Add(issues ...types.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issues...)
}

// FileScanned records that one file of the given language went through
// the pipeline.
func (c *Collector) FileScanned(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scanned++
	if c.langs == nil {
		c.langs = make(map[string]int)
	}
	c.langs[language]++
}

// Skip records a file that could not be scanned.
func (c *Collector) Skip(path, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped = append(c.skipped, types.SkippedFile{Path: path, Reason: reason})
}

// Meta carries run metadata into the finalized result.
type Meta struct {
	RunID     string
	Stage     string
	StartedAt time.Time
	SpecDir   string
	TargetDir string
	Documents []types.DocumentInfo
}

// Finalize sorts the collected issues, computes counts and returns the result.
// The order does not depend on the order issues were added in.
func (c *Collector) Finalize(meta Meta) *types.ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	issues := make([]types.Issue, len(c.issues))
	copy(issues, c.issues)
	types.SortIssues(issues)

	skipped := make([]types.SkippedFile, len(c.skipped))
	copy(skipped, c.skipped)
	sortSkipped(skipped)

	result := &types.ScanResult{
		SchemaVersion: types.SchemaVersion,
		RunID:         meta.RunID,
		Stage:         meta.Stage,
		StartedAt:     meta.StartedAt,
		FinishedAt:    time.Now(),
		SpecDir:       meta.SpecDir,
		TargetDir:     meta.TargetDir,
		FilesScanned:  c.scanned,
		Languages:     maps.Clone(c.langs),
		Skipped:       skipped,
		Documents:     meta.Documents,
		Issues:        issues,
	}
	for _, issue := range issues {
		result.Counts.Add(issue.Severity)
	}
	return result
}

func sortSkipped(skipped []types.SkippedFile) {
	slices.SortFunc(skipped, func(a, b types.SkippedFile) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Reason, b.Reason))
	})
}
