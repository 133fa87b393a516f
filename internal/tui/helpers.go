package tui

import (
	"strings"
	"unicode/utf8"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// localPart returns the part of an email before the "@", used as a
// display name. Non-email subjects pass through unchanged.
func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// slug lowercases a keyword and collapses whitespace runs to hyphens
// so it can be embedded in a file name.
func slug(s string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(parts) == 0 {
		return "chart"
	}
	return strings.Join(parts, "-")
}
