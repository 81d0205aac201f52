package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/scan"
	"github.com/steveyegge/speclint/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no config path is given.
const DefaultFile = ".speclint.yaml"

var (
	// ErrSpecDirMissing is returned when the spec document directory does not exist
	ErrSpecDirMissing = errors.New("spec directory not found")

	// ErrTargetDirMissing is returned when the directory to scan does not exist
	ErrTargetDirMissing = errors.New("target directory not found")
)

// Config holds every setting of a scan.
type Config struct {
	// SpecDir holds the rule documents
	SpecDir string `yaml:"spec_dir"`

	// TargetDir is the source tree to scan
	TargetDir string `yaml:"target_dir"`

	// Stage labels the run in reports and history (e.g. "stage-2")
	Stage string `yaml:"stage"`

	Documents        []string `yaml:"documents"`
	DocumentSuffixes []string `yaml:"document_suffixes"`
	DocumentSubdirs  []string `yaml:"document_subdirs"`

	ExcludeDirs []string `yaml:"exclude_dirs"`
	Extensions  []string `yaml:"extensions"`

	// Workers bounds parallel file scans. Default: 4
	Workers int `yaml:"workers"`

	// RulePacks are YAML pack files or directories of them
	RulePacks []string `yaml:"rule_packs"`

	// MinSeverity hides less severe issues from terminal output. Default: INFO
	MinSeverity string `yaml:"min_severity"`

	History struct {
		// DB is the SQLite file runs are recorded in; empty disables history
		DB string `yaml:"db"`
	} `yaml:"history"`

	Report struct {
		OutDir string `yaml:"out_dir"` // "./docs"
		JSON   string `yaml:"json"`    // path of the JSON result, empty to skip
	} `yaml:"report"`

	Logging struct {
		Format string `yaml:"format"` // "text"|"json"
		Level  string `yaml:"level"`  // "debug"|"info"|"warn"|"error"
	} `yaml:"logging"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	opts := rules.DefaultLoadOptions()
	walk := scan.DefaultWalkOptions()

	var c Config
	c.SpecDir = ".qoder/rules"
	c.TargetDir = "src"
	c.Documents = opts.Documents
	c.DocumentSuffixes = opts.Suffixes
	c.DocumentSubdirs = opts.Subdirs
	c.ExcludeDirs = walk.ExcludeDirs
	c.Extensions = walk.Extensions
	c.Workers = 4
	c.MinSeverity = string(types.SeverityInfo)
	c.Report.OutDir = "docs"
	c.Logging.Format = "text"
	c.Logging.Level = "warn"
	return c
}

// Load reads the config file at path over the defaults and then applies
// environment overrides. With an empty path, DefaultFile is used if present.
func Load(path string) (Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return c, fmt.Errorf("reading config: %w", err)
	}

	if err := c.ApplyEnv(); err != nil {
		return c, err
	}
	return c, nil
}

// ApplyEnv overrides settings from environment variables:
//   - SPECLINT_SPEC_DIR, SPECLINT_TARGET_DIR, SPECLINT_STAGE
//   - SPECLINT_WORKERS, SPECLINT_MIN_SEVERITY
//   - SPECLINT_HISTORY_DB, SPECLINT_REPORT_DIR
//   - SPECLINT_LOG_FORMAT, SPECLINT_LOG_LEVEL
func (c *Config) ApplyEnv() error {
	parseEnvString("SPECLINT_SPEC_DIR", &c.SpecDir)
	parseEnvString("SPECLINT_TARGET_DIR", &c.TargetDir)
	parseEnvString("SPECLINT_STAGE", &c.Stage)
	parseEnvString("SPECLINT_MIN_SEVERITY", &c.MinSeverity)
	parseEnvString("SPECLINT_HISTORY_DB", &c.History.DB)
	parseEnvString("SPECLINT_REPORT_DIR", &c.Report.OutDir)
	parseEnvString("SPECLINT_LOG_FORMAT", &c.Logging.Format)
	parseEnvString("SPECLINT_LOG_LEVEL", &c.Logging.Level)
	return parseEnvInt("SPECLINT_WORKERS", &c.Workers)
}

// Validate checks values and that the spec and target directories exist.
// It must pass before any scan starts.
func (c Config) Validate() error {
	if err := requireDir(c.SpecDir, ErrSpecDirMissing); err != nil {
		return err
	}
	if err := requireDir(c.TargetDir, ErrTargetDirMissing); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if _, err := types.ParseSeverity(c.MinSeverity); err != nil {
		return fmt.Errorf("min_severity: %w", err)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json' (got %q)", c.Logging.Format)
	}
	return nil
}

func requireDir(path string, sentinel error) error {
	if path == "" {
		return fmt.Errorf("%w: no path configured", sentinel)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", sentinel, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", sentinel, path)
	}
	return nil
}

// LoadOptions returns where the rule registry looks for documents.
func (c Config) LoadOptions() rules.LoadOptions {
	return rules.LoadOptions{
		Documents: c.Documents,
		Suffixes:  c.DocumentSuffixes,
		Subdirs:   c.DocumentSubdirs,
	}
}

// WalkOptions returns which files are scanned.
func (c Config) WalkOptions() scan.WalkOptions {
	exts := make([]string, len(c.Extensions))
	for i, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[i] = strings.ToLower(e)
	}
	return scan.WalkOptions{
		ExcludeDirs:     c.ExcludeDirs,
		Extensions:      exts,
		IncludeEnvFiles: true,
	}
}
