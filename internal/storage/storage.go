package storage

import (
	"context"

	"github.com/steveyegge/speclint/internal/storage/sqlite"
	"github.com/steveyegge/speclint/internal/types"
)

// DefaultPath is where run history is kept when no path is configured.
const DefaultPath = ".speclint/history.db"

// Storage defines the interface for run history backends
type Storage interface {
	// Runs
	SaveRun(ctx context.Context, r *types.ScanResult) error
	GetRun(ctx context.Context, id string) (*types.ScanResult, error)
	ListRuns(ctx context.Context, stage string, limit int) ([]sqlite.RunSummary, error)
	DeleteRun(ctx context.Context, id string) error

	// Statistics
	RuleCounts(ctx context.Context, runID string) ([]sqlite.RuleCount, error)

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".speclint/history.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path: DefaultPath,
	}
}

// NewStorage creates a new SQLite storage backend
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sqlite.New(cfg.Path)
}
