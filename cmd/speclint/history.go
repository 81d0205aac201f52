package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scan runs",
	Long: `List the runs recorded with 'speclint check --history', newest first.

Examples:
  speclint history
  speclint history --stage stage-2 --limit 5
  speclint history --rules 3f2a   # issue counts per rule for one run`,
	Run: func(cmd *cobra.Command, args []string) {
		dbPath := historyPath(cmd)
		stage, _ := cmd.Flags().GetString("stage")
		limit, _ := cmd.Flags().GetInt("limit")
		runID, _ := cmd.Flags().GetString("rules")

		ctx := context.Background()
		store, err := storage.NewStorage(ctx, &storage.Config{Path: dbPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open history: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()

		if runID != "" {
			err = showRuleCounts(ctx, os.Stdout, store, runID)
		} else {
			err = listRuns(ctx, os.Stdout, store, stage, limit)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	historyCmd.Flags().String("history", "", "SQLite history database (default "+storage.DefaultPath+")")
	historyCmd.Flags().String("stage", "", "Only list runs of this stage")
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs (0 for all)")
	historyCmd.Flags().String("rules", "", "Show issue counts per rule for this run id (or unique prefix)")
	rootCmd.AddCommand(historyCmd)
}

// historyPath resolves the database from --history, then the config, then
// the default location.
func historyPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("history") {
		p, _ := cmd.Flags().GetString("history")
		return p
	}
	if cfg.History.DB != "" {
		return cfg.History.DB
	}
	return storage.DefaultPath
}

func listRuns(ctx context.Context, w io.Writer, store storage.Storage, stage string, limit int) error {
	runs, err := store.ListRuns(ctx, stage, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for _, run := range runs {
		mark := green("✓")
		if run.Counts.Error > 0 {
			mark = red("✗")
		}
		stageLabel := run.Stage
		if stageLabel == "" {
			stageLabel = "-"
		}
		fmt.Fprintf(w, "%s %s  %s  %-10s %3d file(s)  %d error, %d warning, %d info  %s\n",
			mark, shortID(run.ID), run.StartedAt.Local().Format(time.DateTime), stageLabel,
			run.FilesScanned, run.Counts.Error, run.Counts.Warning, run.Counts.Info, run.TargetDir)
	}
	return nil
}

func showRuleCounts(ctx context.Context, w io.Writer, store storage.Storage, id string) error {
	result, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	counts, err := store.RuleCounts(ctx, result.RunID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %s: %d issue(s)\n", result.RunID, result.Counts.Total)
	for _, c := range counts {
		fmt.Fprintf(w, "  %4d  %-8s %s\n", c.Count, c.Severity, c.Rule)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
