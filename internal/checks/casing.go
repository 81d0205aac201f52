package checks

import (
	"regexp"
	"strings"
	"unicode"
)

var upperSnake = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

func isUpperSnake(name string) bool {
	return upperSnake.MatchString(name)
}

// splitWords breaks camelCase, PascalCase, snake_case and kebab-case names
// into lower-case words.
func splitWords(name string) []string {
	var words []string
	var cur []rune
	runes := []rune(name)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func toSnakeCase(name string) string {
	return strings.Join(splitWords(name), "_")
}

func toUpperSnakeCase(name string) string {
	return strings.ToUpper(toSnakeCase(name))
}

func toCamelCase(name string) string {
	words := splitWords(name)
	for i := 1; i < len(words); i++ {
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}
	return strings.Join(words, "")
}
