package scan

import (
	"context"
	"log/slog"

	"github.com/steveyegge/speclint/internal/report"
	"github.com/steveyegge/speclint/internal/types"
)

// Scan walks root, runs every target through the runner and returns the
// finalized result.
func Scan(ctx context.Context, root string, walk WalkOptions, runner *Runner, meta report.Meta) (*types.ScanResult, error) {
	targets, err := Walk(root, walk)
	if err != nil {
		return nil, err
	}
	slog.Debug("scan targets collected", "root", root, "files", len(targets), "workers", runner.Workers)

	sink := report.NewCollector()
	if err := runner.Run(ctx, targets, sink); err != nil {
		return nil, err
	}

	if meta.Documents == nil {
		meta.Documents = runner.Registry.Documents()
	}
	return sink.Finalize(meta), nil
}
