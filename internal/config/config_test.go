package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "INFO", cfg.MinSeverity)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speclint.yaml")
	content := `
spec_dir: docs/rules
target_dir: app
stage: stage-3
workers: 2
extensions: [ts, .py]
rule_packs: [packs/]
history:
  db: .speclint/history.db
logging:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("SPECLINT_TARGET_DIR", "web")
	t.Setenv("SPECLINT_WORKERS", "6")
	t.Setenv("SPECLINT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docs/rules", cfg.SpecDir)
	assert.Equal(t, "web", cfg.TargetDir)
	assert.Equal(t, "stage-3", cfg.Stage)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, []string{"packs/"}, cfg.RulePacks)
	assert.Equal(t, ".speclint/history.db", cfg.History.DB)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, Default().ExcludeDirs, cfg.ExcludeDirs)

	walk := cfg.WalkOptions()
	assert.Equal(t, []string{".ts", ".py"}, walk.Extensions)
	assert.True(t, walk.IncludeEnvFiles)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPECLINT_WORKERS", "many")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	specDir := filepath.Join(dir, "rules")
	targetDir := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(specDir, 0755))
	require.NoError(t, os.Mkdir(targetDir, 0755))

	valid := Default()
	valid.SpecDir = specDir
	valid.TargetDir = targetDir
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"missing spec dir", func(c *Config) { c.SpecDir = filepath.Join(dir, "nope") }, ErrSpecDirMissing},
		{"empty spec dir", func(c *Config) { c.SpecDir = "" }, ErrSpecDirMissing},
		{"missing target dir", func(c *Config) { c.TargetDir = filepath.Join(dir, "nope") }, ErrTargetDirMissing},
		{"zero workers", func(c *Config) { c.Workers = 0 }, nil},
		{"bad severity", func(c *Config) { c.MinSeverity = "LOUD" }, nil},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, nil},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := InitLogger(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	slog.Warn("shown", "file", "a.ts")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"file":"a.ts"`)

	_, err = InitLogger(&buf, "text", "loud")
	assert.Error(t, err)
}
