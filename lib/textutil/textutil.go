package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Fold applies full Unicode case folding, this is what makes "LYKILORÐ" and
// "Lykilorð" compare equal where strings.ToLower alone is not enough for
// every script.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// FoldContains reports whether substr is within s, ignoring case.
func FoldContains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// FoldAll folds every string in list.
func FoldAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = Fold(s)
	}
	return out
}

// NormalizeKey prepares a user supplied lookup key, ex. " 12/2024 " -> "12/2024".
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = whitespaceRegex.ReplaceAllString(key, "")
	return key
}
