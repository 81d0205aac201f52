package checks

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language selects which rules apply to a file.
type Language int

const (
	LangUnknown Language = iota
	LangTypeScript
	LangJavaScript
	LangPython
	LangEnv
)

var languageNames = map[Language]string{
	LangUnknown:    "unknown",
	LangTypeScript: "typescript",
	LangJavaScript: "javascript",
	LangPython:     "python",
	LangEnv:        "env",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// IsScript reports whether l is TypeScript or JavaScript.
func (l Language) IsScript() bool {
	return l == LangTypeScript || l == LangJavaScript
}

// ParseLanguage maps a language name (as used in rule packs) to a Language.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts":
		return LangTypeScript, nil
	case "javascript", "js":
		return LangJavaScript, nil
	case "python", "py":
		return LangPython, nil
	case "env", "dotenv":
		return LangEnv, nil
	}
	return LangUnknown, fmt.Errorf("unknown language %q", name)
}

// DetectLanguage derives the language from a file name.
func DetectLanguage(path string) Language {
	base := filepath.Base(path)
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		return LangEnv
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return LangTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".py":
		return LangPython
	case ".env":
		return LangEnv
	}
	return LangUnknown
}
