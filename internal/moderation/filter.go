// Package moderation applies a deny-list redaction to user-submitted text and
// runs the report queue for content that slipped through.
package moderation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// denyList holds the blocked terms (common Vietnamese and English slurs).
// Kept small and static; a richer list would come from configuration.
var denyList = []string{
	"dm", "đm", "dcm", "đcm", "vcl", "vãi", "đéo", "deo",
	"fuck", "shit", "bitch", "asshole",
	"cặc", "lồn", "buồi", "ngu", "óc chó",
	"chết tiệt", "chó chết",
}

var denyPatterns = compileDenyList(denyList)

func compileDenyList(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// Filter masks every deny-list term in text with a run of '*' of the same
// rune length, case-insensitively. Pure and synchronous: no external calls,
// and idempotent, so filtering already-filtered text changes nothing.
func Filter(text string) string {
	clean, _ := Clean(text)
	return clean
}

// Clean is Filter plus a flag reporting whether anything was masked.
func Clean(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	masked := false
	clean := text
	for _, pattern := range denyPatterns {
		clean = pattern.ReplaceAllStringFunc(clean, func(match string) string {
			masked = true
			return strings.Repeat("*", utf8.RuneCountInString(match))
		})
	}
	return clean, masked
}
