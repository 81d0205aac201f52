package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/checks"
	"github.com/steveyegge/speclint/internal/config"
	"github.com/steveyegge/speclint/internal/report"
	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/scan"
	"github.com/steveyegge/speclint/internal/storage"
	"github.com/steveyegge/speclint/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [target-dir]",
	Short: "Scan source files against the enabled spec rules",
	Long: `Scan a source tree against every rule enabled in the spec documents.

Examples:
  # Scan ./src with the documents in ./.qoder/rules
  speclint check

  # Scan another tree, only show errors and warnings
  speclint check ./web --min-severity WARNING

  # Write the JSON result and the markdown stage report, and record the run
  speclint check --stage stage-2 --json out/result.json --report --history .speclint/history.db

  # Add project specific patterns
  speclint check --pack rules/aws.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := cfg
		if err := applyCheckFlags(cmd, args, &c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts := checkOptions{}
		opts.Suggestions, _ = cmd.Flags().GetBool("suggestions")
		opts.Markdown, _ = cmd.Flags().GetBool("report")
		opts.NoColor = noColor

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		result, err := runCheck(ctx, c, opts, os.Stdout)
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(result.ExitCode())
	},
}

// checkOptions are output choices that are not part of the config file.
type checkOptions struct {
	Suggestions bool
	Markdown    bool
	NoColor     bool
}

func init() {
	addCheckFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("spec-dir", "", "Directory holding the spec documents")
	f.String("target-dir", "", "Directory to scan (same as the positional argument)")
	f.String("stage", "", "Stage label used in reports and history")
	f.Int("workers", 0, "Number of files scanned in parallel")
	f.String("min-severity", "", "Hide issues below ERROR, WARNING or INFO (display only)")
	f.StringSlice("pack", nil, "YAML rule pack file or directory (repeatable)")
	f.String("json", "", "Write the JSON result to this file")
	f.Bool("report", false, "Write the markdown stage report to the report directory")
	f.String("out", "", "Report directory")
	f.String("history", "", "Record the run in this SQLite database")
	f.Bool("suggestions", false, "Show fix suggestions under each issue")
}

// applyCheckFlags copies the flags that were set onto c. Flags win over
// the config file and the environment.
func applyCheckFlags(cmd *cobra.Command, args []string, c *config.Config) error {
	f := cmd.Flags()
	stringFlags := map[string]*string{
		"spec-dir":     &c.SpecDir,
		"target-dir":   &c.TargetDir,
		"stage":        &c.Stage,
		"min-severity": &c.MinSeverity,
		"json":         &c.Report.JSON,
		"out":          &c.Report.OutDir,
		"history":      &c.History.DB,
	}
	for name, dst := range stringFlags {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if f.Changed("workers") {
		n, err := f.GetInt("workers")
		if err != nil {
			return err
		}
		c.Workers = n
	}
	if f.Changed("pack") {
		packs, err := f.GetStringSlice("pack")
		if err != nil {
			return err
		}
		c.RulePacks = append(c.RulePacks, packs...)
	}
	if len(args) == 1 {
		if f.Changed("target-dir") && args[0] != c.TargetDir {
			return fmt.Errorf("target given twice: %q and --target-dir %q", args[0], c.TargetDir)
		}
		c.TargetDir = args[0]
	}
	return nil
}

// buildPipeline returns the built-in checkers followed by one checker per
// rule pack.
func buildPipeline(packPaths []string) (*checks.Pipeline, error) {
	packs, err := checks.LoadPacks(packPaths)
	if err != nil {
		return nil, err
	}
	checkers := checks.DefaultCheckers()
	for _, p := range packs {
		checkers = append(checkers, p)
	}
	return checks.NewPipeline(checkers...)
}

// runCheck validates the config, scans the target tree, renders the result
// to w and writes the optional JSON, markdown and history outputs.
func runCheck(ctx context.Context, c config.Config, opts checkOptions, w io.Writer) (*types.ScanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	minSeverity, err := types.ParseSeverity(c.MinSeverity)
	if err != nil {
		return nil, err
	}

	reg, err := rules.LoadRegistry(os.DirFS(c.SpecDir), c.LoadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load spec documents: %w", err)
	}
	pipeline, err := buildPipeline(c.RulePacks)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule packs: %w", err)
	}

	runner := &scan.Runner{Pipeline: pipeline, Registry: reg, Workers: c.Workers}
	meta := report.Meta{
		RunID:     uuid.NewString(),
		Stage:     c.Stage,
		StartedAt: time.Now(),
		SpecDir:   c.SpecDir,
		TargetDir: c.TargetDir,
	}
	result, err := scan.Scan(ctx, c.TargetDir, c.WalkOptions(), runner, meta)
	if err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	err = report.Render(w, result, report.RenderOptions{
		MinSeverity:     minSeverity,
		ShowSuggestions: opts.Suggestions,
		NoColor:         opts.NoColor,
	})
	if err != nil {
		return nil, err
	}

	if err := writeOutputs(ctx, c, opts, result, w); err != nil {
		return result, err
	}
	return result, nil
}

func writeOutputs(ctx context.Context, c config.Config, opts checkOptions, result *types.ScanResult, w io.Writer) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	if opts.NoColor {
		cyan = fmt.Sprint
	}

	if c.Report.JSON != "" {
		if err := report.WriteJSONFile(c.Report.JSON, result); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s JSON result written to %s\n", cyan("→"), c.Report.JSON)
	}

	if opts.Markdown {
		path, err := report.WriteMarkdown(result, c.Report.OutDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Report written to %s\n", cyan("→"), path)
	}

	if c.History.DB != "" {
		store, err := storage.NewStorage(ctx, &storage.Config{Path: c.History.DB})
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() { _ = store.Close() }()
		if err := store.SaveRun(ctx, result); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Run %s recorded in %s\n", cyan("→"), result.RunID, c.History.DB)
	}
	return nil
}
