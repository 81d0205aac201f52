package report

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/steveyegge/speclint/internal/types"
)

// DefaultStage labels reports when no stage is given.
const DefaultStage = "stage-1"

// RenderMarkdown writes the stage compliance report.
func RenderMarkdown(w io.Writer, r *types.ScanResult) error {
	var b strings.Builder
	stage := r.Stage
	if stage == "" {
		stage = DefaultStage
	}
	enabled, total := r.RuleTotals()

	fmt.Fprintf(&b, "# Spec compliance report: %s\n\n", stage)
	fmt.Fprintf(&b, "**Stage**: %s  \n", stage)
	fmt.Fprintf(&b, "**Generated**: %s  \n", r.FinishedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Target**: %s  \n", r.TargetDir)
	fmt.Fprintf(&b, "**Run**: %s\n\n---\n\n", r.RunID)

	b.WriteString("## Overview\n\n")
	b.WriteString("| Metric | Value |\n|------|------|\n")
	fmt.Fprintf(&b, "| Compliance rate | **%d%%** |\n", r.ComplianceRate())
	fmt.Fprintf(&b, "| Declared rules | %d |\n", total)
	fmt.Fprintf(&b, "| Enabled rules | %d |\n", enabled)
	fmt.Fprintf(&b, "| Files scanned | %d |\n", r.FilesScanned)
	fmt.Fprintf(&b, "| Files skipped | %d |\n", len(r.Skipped))
	fmt.Fprintf(&b, "| Issues | %d |\n", r.Counts.Total)
	for _, s := range types.Severities {
		fmt.Fprintf(&b, "| %s | %d |\n", s, r.Counts.Of(s))
	}
	b.WriteString("\n")

	if len(r.Languages) > 0 {
		b.WriteString("## Files by language\n\n| Language | Files |\n|---------|--------|\n")
		for _, lang := range slices.Sorted(maps.Keys(r.Languages)) {
			fmt.Fprintf(&b, "| %s | %d |\n", lang, r.Languages[lang])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Issues\n\n")
	if r.Counts.Total == 0 {
		b.WriteString("No issues found.\n\n")
	}
	for _, s := range types.Severities {
		n := r.Counts.Of(s)
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d)\n\n", s, n)
		b.WriteString("| File | Line | Rule | Message |\n|------|------|------|---------|\n")
		for _, issue := range r.Issues {
			if issue.Severity != s {
				continue
			}
			line := "file"
			if !issue.IsFileLevel() {
				line = fmt.Sprint(issue.Line)
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", issue.File, line, issue.Rule.String(), escapeCell(issue.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Rules\n\n")
	for _, doc := range r.Documents {
		fmt.Fprintf(&b, "### %s\n\n", doc.Name)
		if doc.Warning != "" {
			fmt.Fprintf(&b, "> %s\n\n", doc.Warning)
		}
		declared := len(doc.Enabled) + len(doc.Disabled)
		fmt.Fprintf(&b, "- **Declared**: %d\n- **Enabled**: %d\n\n", declared, len(doc.Enabled))
		for _, ref := range doc.Enabled {
			fmt.Fprintf(&b, "- [x] **[%s]** %s\n", ref.ID, ref.Title)
		}
		for _, ref := range doc.Disabled {
			fmt.Fprintf(&b, "- [ ] **[%s]** %s (disabled)\n", ref.ID, ref.Title)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMarkdown renders the report to <outDir>/<stage>-report.md and returns
// the path written.
func WriteMarkdown(r *types.ScanResult, outDir string) (string, error) {
	stage := r.Stage
	if stage == "" {
		stage = DefaultStage
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(outDir, stageFileName(stage)+"-report.md")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderMarkdown(f, r); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func stageFileName(stage string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, stage)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
