package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steveyegge/speclint/internal/report"
	"github.com/steveyegge/speclint/internal/types"
)

// ErrRunNotFound is returned when no stored run matches an id.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of the run history.
type RunSummary struct {
	ID           string
	Stage        string
	StartedAt    time.Time
	FinishedAt   time.Time
	TargetDir    string
	FilesScanned int
	FilesSkipped int
	Counts       types.Counts
}

// RuleCount is the number of issues a rule produced in a run.
type RuleCount struct {
	Rule     types.RuleRef
	Severity types.Severity
	Count    int
}

// SaveRun stores a finalized result and its issues in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, r *types.ScanResult) error {
	if r.RunID == "" {
		return fmt.Errorf("run id is required")
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, stage, started_at, finished_at, spec_dir, target_dir,
		                  files_scanned, files_skipped, error_count, warning_count, info_count,
		                  schema_version, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Stage, formatTime(r.StartedAt), formatTime(r.FinishedAt), r.SpecDir, r.TargetDir,
		r.FilesScanned, len(r.Skipped), r.Counts.Error, r.Counts.Warning, r.Counts.Info,
		r.SchemaVersion, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_issues (run_id, seq, file, line, document, rule_id, severity, message, suggestion, checker)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare issue insert: %w", err)
	}
	defer stmt.Close()

	for i, issue := range r.Issues {
		_, err := stmt.ExecContext(ctx, r.RunID, i, issue.File, issue.Line, issue.Rule.Document,
			issue.Rule.ID, string(issue.Severity), issue.Message, issue.Suggestion, issue.Checker)
		if err != nil {
			return fmt.Errorf("failed to insert issue %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, stage string, limit int) ([]RunSummary, error) {
	query := `
		SELECT id, stage, started_at, finished_at, target_dir, files_scanned, files_skipped,
		       error_count, warning_count, info_count
		FROM runs`
	var args []any
	if stage != "" {
		query += " WHERE stage = ?"
		args = append(args, stage)
	}
	query += " ORDER BY started_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Stage, &started, &finished, &run.TargetDir,
			&run.FilesScanned, &run.FilesSkipped,
			&run.Counts.Error, &run.Counts.Warning, &run.Counts.Info); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		run.Counts.Total = run.Counts.Error + run.Counts.Warning + run.Counts.Info
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a stored result by id or by a unique id prefix.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*types.ScanResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, result_json FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	defer rows.Close()

	var ids, payloads []string
	for rows.Next() {
		var rid, payload string
		if err := rows.Scan(&rid, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if rid == id {
			return report.ReadJSON(strings.NewReader(payload))
		}
		ids = append(ids, rid)
		payloads = append(payloads, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return report.ReadJSON(strings.NewReader(payloads[0]))
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// RuleCounts returns issue counts per rule and severity for a run, most
// frequent first.
func (s *SQLiteStorage) RuleCounts(ctx context.Context, runID string) ([]RuleCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document, rule_id, severity, COUNT(*) AS n
		FROM run_issues
		WHERE run_id = ?
		GROUP BY document, rule_id, severity
		ORDER BY n DESC, document, rule_id, severity
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count issues: %w", err)
	}
	defer rows.Close()

	var counts []RuleCount
	for rows.Next() {
		var c RuleCount
		var severity string
		if err := rows.Scan(&c.Rule.Document, &c.Rule.ID, &severity, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan rule count: %w", err)
		}
		c.Severity = types.Severity(severity)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteRun removes a run and its issues.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
