package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// asciiFold decomposes accented letters and strips the combining marks, so
// "É" contributes "e" instead of disappearing. Transformer chains carry
// state, so each caller gets a fresh one.
func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify derives a URL-safe token from a product name: accents folded to
// their base letters, lowercase, every run of characters outside [a-z0-9]
// collapsed to a single hyphen, edge hyphens trimmed. A name with no usable
// characters falls back to "product".
func Slugify(name string) string {
	if folded, _, err := transform.String(asciiFold(), name); err == nil {
		name = folded
	}
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugEdgeHyphens.ReplaceAllString(slug, "")
	if slug == "" {
		return "product"
	}
	return slug
}
