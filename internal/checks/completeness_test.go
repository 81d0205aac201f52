package checks

import (
	"testing"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletenessMarkers(t *testing.T) {
	reg := testRegistry(t)
	checker := NewCompletenessChecker()

	issues := checker.Check(NewFile("a.ts", "// TODO: fix this"), reg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, "TODO marker left in code", issues[0].Message)

	content := "// TODO: fix this\nconst a = 1\n// fixme later\n# HACK: around it\n// XXX remove\n"
	issues = checker.Check(NewFile("b.js", content), reg)
	assert.Equal(t, []int{1, 3, 4, 5}, lines(issues))

	three := "// TODO: fix this\n// TODO: fix this\n// TODO: fix this\n"
	issues = checker.Check(NewFile("c.ts", three), reg)
	assert.Equal(t, []int{1, 2, 3}, lines(issues))
}

func TestCompletenessIgnoresWordsContainingMarkers(t *testing.T) {
	content := "const todoList = []\nconst hackathon = true\n"
	assert.Empty(t, NewCompletenessChecker().Check(NewFile("a.ts", content), testRegistry(t)))
}

func TestCompletenessPlaceholders(t *testing.T) {
	reg := testRegistry(t)
	checker := NewCompletenessChecker()

	issues := checker.Check(NewFile("a.ts", `const url = "https://your-domain.com/api"`), reg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityError, issues[0].Severity)
	assert.Equal(t, `unresolved placeholder "your-domain"`, issues[0].Message)

	// marker and placeholder on one line are separate issues
	issues = checker.Check(NewFile("b.ts", `// TODO: replace your-token`), reg)
	require.Len(t, issues, 2)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Equal(t, types.SeverityError, issues[1].Severity)

	assert.Empty(t, checker.Check(NewFile("c.tsx", `<input placeholder="Search city" />`), reg))
	assert.Empty(t, checker.Check(NewFile("d.ts", `input.placeholder = t("search")`), reg))
}

func TestCompletenessImports(t *testing.T) {
	reg := testRegistry(t)
	checker := NewCompletenessChecker()

	issues := checker.Check(NewFile("src/a/b/c.ts", `import { x } from "../../../shared/x"`), reg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityInfo, issues[0].Severity)
	assert.Equal(t, "10", issues[0].Rule.ID)
	assert.Contains(t, issues[0].Message, "3 directories")

	assert.Empty(t, checker.Check(NewFile("src/a/b.ts", `import { x } from "../../shared/x"`), reg))
	assert.Empty(t, checker.Check(NewFile("src/a/b.ts", `import { x } from "@/shared/x"`), reg))

	issues = checker.Check(NewFile("a.js", `const magic = require("super-magic-lib")`), reg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityError, issues[0].Severity)
	assert.Equal(t, "13", issues[0].Rule.ID)
}

func TestCompletenessRespectsRegistry(t *testing.T) {
	reg := testRegistry(t, rules.DocRequirements+"#1")
	assert.Empty(t, NewCompletenessChecker().Check(NewFile("a.ts", "// TODO: fix this"), reg))
}
