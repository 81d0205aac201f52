package checks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
	"github.com/stretchr/testify/require"
)

var builtinRuleIDs = map[string][]string{
	rules.DocNaming:        {"1", "2", "4", "9"},
	rules.DocSecurity:      {"1", "8"},
	rules.DocErrorHandling: {"3", "5"},
	rules.DocRequirements:  {"1", "10", "13"},
}

// testRegistry enables every built-in rule except the "document#id" keys given.
func testRegistry(t *testing.T, disabled ...string) *rules.Registry {
	t.Helper()

	off := make(map[string]bool)
	for _, d := range disabled {
		off[d] = true
	}

	var docs []*rules.Document
	for _, name := range rules.DefaultDocuments {
		ids, ok := builtinRuleIDs[name]
		if !ok {
			continue
		}
		var b strings.Builder
		for _, id := range ids {
			marker := "[ENABLED]"
			if off[name+"#"+id] {
				marker = "[DISABLED]"
			}
			fmt.Fprintf(&b, "## [规则 %s] Rule %s %s\n", id, id, marker)
		}
		doc, err := rules.ParseDocument(name, []byte(b.String()))
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return rules.NewRegistry(docs...)
}

func lines(issues []types.Issue) []int {
	out := make([]int, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Line)
	}
	return out
}
