package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 drops invalid UTF-8 bytes so free-text fields always store as
// valid text on both Postgres and SQLite.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// cleanText sanitizes and trims a user-supplied string.
func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

// cleanOptional applies cleanText to an optional profile field, keeping nil as nil.
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := cleanText(*s)
	return &cleaned
}

// blankToNil turns an empty optional value into an absent one.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(cleanText(email))
}
