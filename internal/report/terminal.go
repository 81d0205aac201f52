package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/steveyegge/speclint/internal/types"
)

// RenderOptions controls terminal output. They affect display only; counts
// and the exit code always reflect every issue.
type RenderOptions struct {
	// MinSeverity hides less severe issues (empty shows everything)
	MinSeverity types.Severity

	// ShowSuggestions prints the remediation hint under each issue
	ShowSuggestions bool

	// NoColor disables ANSI colours
	NoColor bool
}

type palette struct {
	red, yellow, cyan, green, bold, faint func(a ...interface{}) string
}

func newPalette(noColor bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		red:    mk(color.FgRed, color.Bold),
		yellow: mk(color.FgYellow),
		cyan:   mk(color.FgCyan),
		green:  mk(color.FgGreen),
		bold:   mk(color.Bold),
		faint:  mk(color.Faint),
	}
}

func (p palette) severity(s types.Severity) string {
	label := fmt.Sprintf("%-7s", s)
	switch s {
	case types.SeverityError:
		return p.red("✗ " + label)
	case types.SeverityWarning:
		return p.yellow("! " + label)
	default:
		return p.cyan("ⓘ " + label)
	}
}

// SummaryLine states the total and the per-severity breakdown.
func SummaryLine(r *types.ScanResult) string {
	return fmt.Sprintf("Found %d issue(s): %d error, %d warning, %d info",
		r.Counts.Total, r.Counts.Error, r.Counts.Warning, r.Counts.Info)
}

// Render writes the human-readable report. The summary line always comes
// before any per-file detail.
func Render(w io.Writer, r *types.ScanResult, opts RenderOptions) error {
	p := newPalette(opts.NoColor)
	threshold := opts.MinSeverity
	if threshold == "" {
		threshold = types.SeverityInfo
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.bold(SummaryLine(r)))
	fmt.Fprintf(&b, "Scanned %d file(s)", r.FilesScanned)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", %s", p.yellow(fmt.Sprintf("%d skipped", len(r.Skipped))))
	}
	enabled, total := r.RuleTotals()
	fmt.Fprintf(&b, " against %d of %d rule(s) from %d document(s)\n", enabled, total, len(r.Documents))

	hidden := 0
	for _, group := range r.Groups() {
		var shown []types.Issue
		for _, issue := range slices.Concat(group.FileLevel, group.Lines) {
			if issue.Severity.AtLeast(threshold) {
				shown = append(shown, issue)
			} else {
				hidden++
			}
		}
		if len(shown) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s\n", p.bold(group.File))
		for _, issue := range shown {
			location := "file"
			if !issue.IsFileLevel() {
				location = fmt.Sprintf("L%d", issue.Line)
			}
			rule := issue.Rule.String()
			if issue.Rule.Title != "" {
				rule += " " + issue.Rule.Title
			}
			fmt.Fprintf(&b, "  %s %-6s %s %s\n", p.severity(issue.Severity), location, issue.Message, p.faint("["+rule+"]"))
			if opts.ShowSuggestions && issue.Suggestion != "" {
				fmt.Fprintf(&b, "    %s %s\n", p.green("→"), issue.Suggestion)
			}
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.yellow("Skipped files"))
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "  %s: %s\n", s.Path, s.Reason)
		}
	}

	b.WriteString("\n" + strings.Repeat("─", 60) + "\n")
	if hidden > 0 {
		fmt.Fprintf(&b, "%s %d issue(s) below %s not shown\n", p.faint("ⓘ"), hidden, threshold)
	}
	if r.HasErrors() {
		fmt.Fprintf(&b, "%s %d error(s) must be fixed\n", p.red("✗"), r.Counts.Error)
	} else {
		fmt.Fprintf(&b, "%s No errors found\n", p.green("✓"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
