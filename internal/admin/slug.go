// ABOUTME: Slug generation for content URLs
// ABOUTME: Lowercases, replaces non-alphanumeric runs with hyphens and trims

package admin

import (
	"strings"
	"unicode"
)

// slugify derives a URL slug from a title: lowercase, every run of
// non-alphanumeric characters becomes a single hyphen, leading and
// trailing hyphens removed.
func slugify(title string) string {
	var sb strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(sb.String(), "-")
}
