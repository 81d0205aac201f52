package rules

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, name, content string) *Document {
	t.Helper()
	doc, err := ParseDocument(name, []byte(content))
	require.NoError(t, err)
	return doc
}

func TestRegistryFailClosed(t *testing.T) {
	reg := NewRegistry(
		mustParse(t, DocSecurity, "## [规则 8] Secrets [ENABLED]\n## [规则 1] XSS [DISABLED]\n"),
	)

	assert.True(t, reg.IsEnabled(DocSecurity, "8"))
	assert.False(t, reg.IsEnabled(DocSecurity, "1"))
	assert.False(t, reg.IsEnabled(DocSecurity, "2"))
	assert.False(t, reg.IsEnabled(DocNaming, "8"))
	assert.False(t, reg.IsEnabled("", ""))

	var nilReg *Registry
	assert.False(t, nilReg.IsEnabled(DocSecurity, "8"))
	assert.Empty(t, nilReg.Documents())

	rule, ok := reg.Rule(DocSecurity, "1")
	require.True(t, ok)
	assert.Equal(t, "XSS", rule.Title)
	assert.Equal(t, "Secrets", reg.Title(DocSecurity, "8"))
	assert.Equal(t, "", reg.Title(DocSecurity, "42"))
	assert.Equal(t, 1, reg.EnabledCount())
}

func TestLoadRegistry(t *testing.T) {
	fsys := fstest.MapFS{
		"security-spec.zh-CN.md":         {Data: []byte("## [规则 8] Secrets\n")},
		"security-spec.md":               {Data: []byte("## [规则 8] Shadowed [DISABLED]\n")},
		"core/naming-conventions.md":     {Data: []byte("## [约定 2] Functions [ENABLED]\n## [约定 4] Constants [DISABLED]\n")},
		"quality/error-handling-spec.md": {Data: []byte("## [规则 5] Empty catch\n")},
		"requirements-spec.zh-CN.md":     {Data: []byte{0xff, 0xfe, 0x00}},
		"unrelated.md":                   {Data: []byte("## [规则 1] Not loaded\n")},
	}

	reg, err := LoadRegistry(fsys, DefaultLoadOptions())
	require.NoError(t, err)

	assert.True(t, reg.IsEnabled(DocSecurity, "8"), "root .zh-CN.md wins over .md")
	assert.True(t, reg.IsEnabled(DocNaming, "2"))
	assert.False(t, reg.IsEnabled(DocNaming, "4"))
	assert.True(t, reg.IsEnabled(DocErrorHandling, "5"))
	assert.False(t, reg.IsEnabled(DocRequirements, "1"))

	docs := reg.Documents()
	var names []string
	for _, d := range docs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{DocRequirements, DocNaming, DocErrorHandling, DocSecurity}, names)
	assert.NotEmpty(t, docs[0].Warning)
	assert.Empty(t, docs[0].Enabled)
	assert.Equal(t, "core/naming-conventions.md", docs[1].Path)
	assert.Len(t, docs[1].Disabled, 1)
}

func TestLoadRegistryEmptyDir(t *testing.T) {
	reg, err := LoadRegistry(fstest.MapFS{}, DefaultLoadOptions())
	require.NoError(t, err)
	assert.Empty(t, reg.Documents())
	assert.False(t, reg.IsEnabled(DocSecurity, "8"))
}

func TestLoadRegistryCustomDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"api-design-spec.md": {Data: []byte("## [规则 1] REST\n")},
		"security-spec.md":   {Data: []byte("## [规则 8] Secrets\n")},
	}

	reg, err := LoadRegistry(fsys, LoadOptions{Documents: []string{DocAPIDesign}, Suffixes: []string{".md"}})
	require.NoError(t, err)
	assert.True(t, reg.IsEnabled(DocAPIDesign, "1"))
	assert.False(t, reg.IsEnabled(DocSecurity, "8"))
}
