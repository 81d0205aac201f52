package checks

import (
	"fmt"
	"log/slog"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
)

// Checker scans a single file. Implementations must be pure: the result
// depends only on the file and the registry.
type Checker interface {
	// Name returns the unique identifier for this checker.
	Name() string

	// Check returns every issue found in f for rules enabled in reg.
	Check(f *File, reg *rules.Registry) []types.Issue
}

// DefaultCheckers returns the built-in checkers in pipeline order.
func DefaultCheckers() []Checker {
	return []Checker{
		NewNamingChecker(),
		NewSecurityChecker(),
		NewErrorHandlingChecker(),
		NewCompletenessChecker(),
	}
}

// Pipeline runs a fixed list of checkers over files.
type Pipeline struct {
	checkers []Checker
}

// NewPipeline creates a pipeline. With no checkers it uses DefaultCheckers.
func NewPipeline(checkers ...Checker) (*Pipeline, error) {
	if len(checkers) == 0 {
		checkers = DefaultCheckers()
	}

	seen := make(map[string]bool)
	for _, c := range checkers {
		if seen[c.Name()] {
			return nil, fmt.Errorf("checker %s already registered", c.Name())
		}
		seen[c.Name()] = true
	}

	return &Pipeline{checkers: checkers}, nil
}

// Checkers returns the checkers in run order.
func (p *Pipeline) Checkers() []Checker {
	out := make([]Checker, len(p.checkers))
	copy(out, p.checkers)
	return out
}

// Run applies every checker to f. A checker that panics contributes no
// issues; the others are unaffected.
func (p *Pipeline) Run(f *File, reg *rules.Registry) []types.Issue {
	var issues []types.Issue
	for _, c := range p.checkers {
		issues = append(issues, runChecker(c, f, reg)...)
	}
	return issues
}

func runChecker(c Checker, f *File, reg *rules.Registry) (issues []types.Issue) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("checker failed", "checker", c.Name(), "file", f.Path, "panic", r)
			issues = nil
		}
	}()
	return c.Check(f, reg)
}
