package checks

import "strings"

// File is one decoded target handed to every checker.
type File struct {
	Path    string
	Lang    Language
	Content string
	Lines   []string
}

// NewFile splits content into lines and detects the language from path.
// Content must already be valid UTF-8.
func NewFile(path, content string) *File {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &File{
		Path:    path,
		Lang:    DetectLanguage(path),
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

// isCommentLine reports whether the line is a comment in the file's language.
func isCommentLine(lang Language, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch lang {
	case LangPython, LangEnv:
		return strings.HasPrefix(trimmed, "#")
	default:
		return strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*")
	}
}
