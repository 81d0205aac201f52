package checks

import (
	"testing"

	"github.com/steveyegge/speclint/internal/rules"
	"github.com/steveyegge/speclint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyCatchIsFileLevel(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    int
	}{
		{
			name:    "two empty blocks report once",
			path:    "a.ts",
			content: "try { a() } catch (e) {}\n\ntry { b() } catch (err) {\n}\n",
			want:    1,
		},
		{
			name:    "comment-only block",
			path:    "a.js",
			content: "try {\n  load()\n} catch (e) {\n  // ignore\n}\n",
			want:    1,
		},
		{
			name:    "block comment only",
			path:    "a.js",
			content: "try { load() } catch { /* nothing */ }\n",
			want:    1,
		},
		{
			name:    "handled error",
			path:    "a.ts",
			content: "try { a() } catch (e) {\n  logger.error(e)\n}\n",
			want:    0,
		},
		{
			name:    "python except pass",
			path:    "a.py",
			content: "try:\n    load()\nexcept ValueError:\n    pass\n",
			want:    1,
		},
		{
			name:    "python one-line except",
			path:    "a.py",
			content: "try:\n    load()\nexcept: pass\n",
			want:    1,
		},
		{
			name:    "python handled",
			path:    "a.py",
			content: "try:\n    load()\nexcept ValueError as e:\n    log(e)\n",
			want:    0,
		},
	}

	reg := testRegistry(t)
	checker := NewErrorHandlingChecker()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checker.Check(NewFile(tt.path, tt.content), reg)
			require.Len(t, issues, tt.want)
			for _, issue := range issues {
				assert.Equal(t, 0, issue.Line)
				assert.Equal(t, types.SeverityError, issue.Severity)
				assert.Equal(t, "5", issue.Rule.ID)
			}
		})
	}
}

func TestGenericErrorsPerLine(t *testing.T) {
	content := "function a() {\n  throw new Error('a')\n}\n// throw new Error('comment')\nthrow new ValidationError('b')\nthrow new Error(\"c\")\n"

	issues := NewErrorHandlingChecker().Check(NewFile("a.ts", content), testRegistry(t))
	assert.Equal(t, []int{2, 6}, lines(issues))
	for _, issue := range issues {
		assert.Equal(t, types.SeverityInfo, issue.Severity)
		assert.Equal(t, "3", issue.Rule.ID)
	}

	issues = NewErrorHandlingChecker().Check(NewFile("a.py", "raise Exception(\"boom\")\nraise ValueError(\"x\")\n"), testRegistry(t))
	assert.Equal(t, []int{1}, lines(issues))
}

func TestEmptyCatchDisabled(t *testing.T) {
	reg := testRegistry(t, rules.DocErrorHandling+"#5")
	issues := NewErrorHandlingChecker().Check(NewFile("a.ts", "try { a() } catch (e) {}\n"), reg)
	assert.Empty(t, issues)
}
