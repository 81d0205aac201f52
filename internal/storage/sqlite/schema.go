package sqlite

const schema = `
-- One row per scan
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    stage TEXT NOT NULL DEFAULT '',
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    spec_dir TEXT NOT NULL DEFAULT '',
    target_dir TEXT NOT NULL DEFAULT '',
    files_scanned INTEGER NOT NULL DEFAULT 0,
    files_skipped INTEGER NOT NULL DEFAULT 0,
    error_count INTEGER NOT NULL DEFAULT 0,
    warning_count INTEGER NOT NULL DEFAULT 0,
    info_count INTEGER NOT NULL DEFAULT 0,
    schema_version TEXT NOT NULL,
    result_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage);

-- Issues of a run, in report order
CREATE TABLE IF NOT EXISTS run_issues (
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    file TEXT NOT NULL,
    line INTEGER NOT NULL CHECK(line >= 0),
    document TEXT NOT NULL,
    rule_id TEXT NOT NULL,
    severity TEXT NOT NULL CHECK(severity IN ('ERROR', 'WARNING', 'INFO')),
    message TEXT NOT NULL,
    suggestion TEXT NOT NULL DEFAULT '',
    checker TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, seq),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_issues_rule ON run_issues(document, rule_id);
CREATE INDEX IF NOT EXISTS idx_run_issues_severity ON run_issues(severity);
`
