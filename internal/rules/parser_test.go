package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentMarkers(t *testing.T) {
	tests := []struct {
		name        string
		heading     string
		wantID      string
		wantTitle   string
		wantEnabled bool
	}{
		{"trailing disabled", "## [规则 5] Empty catch blocks [DISABLED]", "5", "Empty catch blocks", false},
		{"trailing enabled", "## [规则 5] Empty catch blocks [ENABLED]", "5", "Empty catch blocks", true},
		{"no marker", "## [规则 5] Empty catch blocks", "5", "Empty catch blocks", true},
		{"leading disabled", "## [规则 5] [DISABLED] Empty catch blocks", "5", "Empty catch blocks", false},
		{"leading without space", "## [规则 5][DISABLED] Empty catch blocks", "5", "Empty catch blocks", false},
		{"convention label", "### [约定 12] Branch names [ENABLED]", "12", "Branch names", true},
		{"english label", "## [Rule 3] Generic errors [disabled]", "3", "Generic errors", false},
		{"leading zero", "## [规则 08] Secrets", "8", "Secrets", true},
		{"label without space", "## [规则8] Secrets", "8", "Secrets", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument("error-handling-spec", []byte(tt.heading+"\n\nbody text\n"))
			require.NoError(t, err)
			require.Len(t, doc.Rules, 1)

			rule := doc.Rules[0]
			assert.Equal(t, tt.wantID, rule.ID)
			assert.Equal(t, tt.wantTitle, rule.Title)
			assert.Equal(t, tt.wantEnabled, rule.Enabled)
			assert.Equal(t, 1, rule.Line)
			assert.Equal(t, tt.wantEnabled, doc.Enabled()[tt.wantID])
		})
	}
}

func TestParseDocumentIgnoresNonHeadings(t *testing.T) {
	content := "# Error handling\n" +
		"\n" +
		"Mentions [规则 1] inline but is not a heading.\n" +
		"## Overview\n" +
		"```markdown\n" +
		"## [规则 99] Example heading [DISABLED]\n" +
		"```\n" +
		"## [规则 1] Real rule\r\n"

	doc, err := ParseDocument("error-handling-spec", []byte(content))
	require.NoError(t, err)
	require.Len(t, doc.Rules, 1)
	assert.Equal(t, "1", doc.Rules[0].ID)
	assert.Equal(t, "Real rule", doc.Rules[0].Title)
	_, ok := doc.Lookup("99")
	assert.False(t, ok)
}

func TestParseDocumentDuplicateIDs(t *testing.T) {
	content := "## [规则 4] Constants\n## [规则 4] Constants again [DISABLED]\n## [规则 2] Functions\n"

	doc, err := ParseDocument("naming-conventions", []byte(content))
	require.NoError(t, err)
	require.Len(t, doc.Rules, 2)
	assert.Equal(t, "Constants", doc.Rules[0].Title)
	assert.False(t, doc.Rules[0].Enabled)
	assert.Equal(t, map[string]bool{"2": true}, doc.Enabled())
}

func TestParseDocumentBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("## [规则 1] First\n")...)

	doc, err := ParseDocument("requirements-spec", content)
	require.NoError(t, err)
	require.Len(t, doc.Rules, 1)
	assert.True(t, doc.Rules[0].Enabled)
}

func TestParseDocumentUndecodable(t *testing.T) {
	_, err := ParseDocument("security-spec", []byte{'#', '#', ' ', 0xff, 0xfe, '\n'})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndecodable)
}
