package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/report"
	"github.com/steveyegge/speclint/internal/storage"
	"github.com/steveyegge/speclint/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the markdown stage report for a scan result",
	Long: `Render the markdown stage report from a JSON result written by
'speclint check --json' or from a run recorded in the history database.

Examples:
  speclint report --input out/result.json --stage stage-1
  speclint report --run 3f2a --history .speclint/history.db --out docs
  speclint report --input out/result.json --out -   # print to stdout`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		runID, _ := cmd.Flags().GetString("run")
		stage, _ := cmd.Flags().GetString("stage")
		outDir := cfg.Report.OutDir
		if cmd.Flags().Changed("out") {
			outDir, _ = cmd.Flags().GetString("out")
		}

		result, err := loadResult(context.Background(), input, runID, historyPath(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if stage != "" {
			result.Stage = stage
		}

		if err := writeReport(os.Stdout, result, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	reportCmd.Flags().String("input", "", "JSON result file")
	reportCmd.Flags().String("run", "", "Recorded run id (or unique prefix)")
	reportCmd.Flags().String("history", "", "SQLite history database (default "+storage.DefaultPath+")")
	reportCmd.Flags().String("stage", "", "Stage label, overrides the one stored in the result")
	reportCmd.Flags().String("out", "", "Report directory, or - for stdout")
	rootCmd.AddCommand(reportCmd)
}

// loadResult reads the result from a JSON file or from the history database.
// Exactly one source must be given.
func loadResult(ctx context.Context, input, runID, dbPath string) (*types.ScanResult, error) {
	switch {
	case input != "" && runID != "":
		return nil, errors.New("--input and --run are mutually exclusive")
	case input != "":
		return report.ReadJSONFile(input)
	case runID != "":
		store, err := storage.NewStorage(ctx, &storage.Config{Path: dbPath})
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		defer func() { _ = store.Close() }()
		return store.GetRun(ctx, runID)
	}
	return nil, errors.New("one of --input or --run is required")
}

func writeReport(w io.Writer, result *types.ScanResult, outDir string) error {
	if outDir == "-" {
		return report.RenderMarkdown(w, result)
	}
	path, err := report.WriteMarkdown(result, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Report written to %s (compliance %d%%)\n", path, result.ComplianceRate())
	return nil
}
