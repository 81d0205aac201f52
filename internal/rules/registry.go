package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/steveyegge/speclint/internal/types"
)

// Document names the checkers read rules from.
const (
	DocRequirements  = "requirements-spec"
	DocNaming        = "naming-conventions"
	DocErrorHandling = "error-handling-spec"
	DocTesting       = "testing-spec"
	DocSecurity      = "security-spec"
	DocWorkflow      = "workflow-spec"
	DocAPIDesign     = "api-design-spec"
	DocGitWorkflow   = "git-workflow-spec"
)

// DefaultDocuments is the ordered list of documents a registry is built from.
var DefaultDocuments = []string{
	DocRequirements,
	DocNaming,
	DocErrorHandling,
	DocTesting,
	DocSecurity,
	DocWorkflow,
	DocAPIDesign,
	DocGitWorkflow,
}

// LoadOptions controls where LoadRegistry looks for documents.
type LoadOptions struct {
	// Documents is the ordered list of document names
	Documents []string

	// Suffixes are tried in order after each name (e.g. ".zh-CN.md")
	Suffixes []string

	// Subdirs are tried in order, relative to the spec root ("" is the root itself)
	Subdirs []string
}

// DefaultLoadOptions returns the standard document layout.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Documents: DefaultDocuments,
		Suffixes:  []string{".zh-CN.md", ".md"},
		Subdirs:   []string{"", "core", "quality"},
	}
}

// Key identifies a rule across documents.
type Key struct {
	Document string
	ID       string
}

// Registry maps (document, rule id) to the parsed rule.
// It has no mutators and is safe for concurrent reads.
type Registry struct {
	rules map[Key]Rule
	docs  []types.DocumentInfo
}

// NewRegistry builds a registry from already parsed documents.
// Documents are recorded in the order given.
func NewRegistry(docs ...*Document) *Registry {
	r := &Registry{rules: make(map[Key]Rule)}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		r.add(doc, "")
	}
	return r
}

func (r *Registry) add(doc *Document, warning string) {
	info := types.DocumentInfo{Name: doc.Name, Path: doc.Path, Warning: warning}
	for _, rule := range doc.Rules {
		key := Key{Document: doc.Name, ID: rule.ID}
		if prev, ok := r.rules[key]; ok {
			rule.Enabled = rule.Enabled && prev.Enabled
		}
		r.rules[key] = rule

		ref := types.RuleRef{Document: doc.Name, ID: rule.ID, Title: rule.Title}
		if rule.Enabled {
			info.Enabled = append(info.Enabled, ref)
		} else {
			info.Disabled = append(info.Disabled, ref)
		}
	}
	r.docs = append(r.docs, info)
}

// IsEnabled reports whether the rule is declared and enabled.
// Unknown documents and ids are disabled.
func (r *Registry) IsEnabled(document, id string) bool {
	if r == nil {
		return false
	}
	rule, ok := r.rules[Key{Document: document, ID: id}]
	return ok && rule.Enabled
}

// Rule returns the declared rule, enabled or not.
func (r *Registry) Rule(document, id string) (Rule, bool) {
	if r == nil {
		return Rule{}, false
	}
	rule, ok := r.rules[Key{Document: document, ID: id}]
	return rule, ok
}

// Title returns the declared title, or "" if the rule is unknown.
func (r *Registry) Title(document, id string) string {
	rule, _ := r.Rule(document, id)
	return rule.Title
}

// Documents describes every document that was found, in load order.
func (r *Registry) Documents() []types.DocumentInfo {
	if r == nil {
		return nil
	}
	out := make([]types.DocumentInfo, len(r.docs))
	copy(out, r.docs)
	return out
}

// EnabledCount returns the number of enabled rules.
func (r *Registry) EnabledCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rule := range r.rules {
		if rule.Enabled {
			n++
		}
	}
	return n
}

// LoadRegistry reads every configured document from fsys and builds a registry.
// Missing documents are skipped. A document that is not valid UTF-8 is logged
// and contributes no rules.
func LoadRegistry(fsys fs.FS, opts LoadOptions) (*Registry, error) {
	if len(opts.Documents) == 0 {
		opts.Documents = DefaultDocuments
	}
	if len(opts.Suffixes) == 0 {
		opts.Suffixes = DefaultLoadOptions().Suffixes
	}
	if len(opts.Subdirs) == 0 {
		opts.Subdirs = []string{""}
	}

	reg := &Registry{rules: make(map[Key]Rule)}
	for _, name := range opts.Documents {
		p, ok := locate(fsys, name, opts)
		if !ok {
			slog.Debug("spec document not found", "document", name)
			continue
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}

		doc, err := ParseDocument(name, data)
		if errors.Is(err, ErrUndecodable) {
			slog.Warn("skipping undecodable spec document", "document", name, "path", p)
			reg.add(&Document{Name: name, Path: p}, err.Error())
			continue
		}
		if err != nil {
			return nil, err
		}
		doc.Path = p

		slog.Debug("loaded spec document", "document", name, "path", p, "rules", len(doc.Rules))
		reg.add(doc, "")
	}

	return reg, nil
}

func locate(fsys fs.FS, name string, opts LoadOptions) (string, bool) {
	for _, dir := range opts.Subdirs {
		for _, suffix := range opts.Suffixes {
			p := path.Join(strings.Trim(dir, "/"), name+suffix)
			info, err := fs.Stat(fsys, p)
			if err == nil && !info.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}
