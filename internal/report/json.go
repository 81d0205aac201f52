package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/steveyegge/speclint/internal/types"
	"golang.org/x/mod/semver"
)

// ErrIncompatibleSchema is returned when a serialized result was written
// with a different major schema version.
var ErrIncompatibleSchema = errors.New("incompatible scan result schema")

// WriteJSON encodes the result as indented JSON.
func WriteJSON(w io.Writer, r *types.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode scan result: %w", err)
	}
	return nil
}

// WriteJSONFile writes the result to path, creating parent directories.
func WriteJSONFile(path string, r *types.ScanResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a result and checks that its schema version is
// compatible with this build.
func ReadJSON(rd io.Reader) (*types.ScanResult, error) {
	var r types.ScanResult
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode scan result: %w", err)
	}
	if err := CheckSchema(r.SchemaVersion); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReadJSONFile reads a result written by WriteJSONFile.
func ReadJSONFile(path string) (*types.ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// CheckSchema accepts versions sharing the major version of types.SchemaVersion.
func CheckSchema(version string) error {
	if !semver.IsValid(version) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleSchema, version)
	}
	if semver.Major(version) != semver.Major(types.SchemaVersion) {
		return fmt.Errorf("%w: got %s, want %s.x", ErrIncompatibleSchema, version, semver.Major(types.SchemaVersion))
	}
	return nil
}
