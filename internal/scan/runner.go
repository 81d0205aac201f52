package scan

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/steveyegge/speclint/internal/checks"
	"github.com/steveyegge/speclint/internal/report"
	"github.com/steveyegge/speclint/internal/rules"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Runner scans targets through a pipeline and feeds a collector.
type Runner struct {
	Pipeline *checks.Pipeline
	Registry *rules.Registry

	// Workers bounds the number of files scanned at once; values below 1 scan
	// one file at a time.
	Workers int

	// ProgressInterval throttles progress logging (default one second).
	ProgressInterval time.Duration
}

// Run scans every target. Files that cannot be read or decoded are recorded
// as skipped and never stop the run. Run only fails if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, targets []Target, sink *report.Collector) error {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	interval := r.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}

	progress := rate.Sometimes{First: 1, Interval: interval}
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, t := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.scanFile(t, sink)

			n := done.Add(1)
			progress.Do(func() {
				slog.Debug("scan progress", "done", n, "total", len(targets))
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (r *Runner) scanFile(t Target, sink *report.Collector) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		slog.Warn("skipping unreadable file", "file", t.Rel, "error", err)
		sink.Skip(t.Rel, err.Error())
		return
	}

	content, reason := decode(data)
	if reason != "" {
		slog.Warn("skipping file", "file", t.Rel, "reason", reason)
		sink.Skip(t.Rel, reason)
		return
	}

	f := checks.NewFile(t.Rel, content)
	sink.Add(r.Pipeline.Run(f, r.Registry)...)
	sink.FileScanned(f.Lang.String())
}

// decode returns the text of a file, or a reason it cannot be scanned.
func decode(data []byte) (string, string) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if bytes.IndexByte(data, 0) >= 0 {
		return "", "binary content"
	}
	if !utf8.Valid(data) {
		return "", "not valid UTF-8"
	}
	return string(data), ""
}
