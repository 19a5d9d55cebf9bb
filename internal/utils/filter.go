package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// IsRepetitive checks if a string consists of repetitive characters
// Simple version that checks for repeated characters (e.g., "aaa", "bbb")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}

	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

// hasWordChars reports whether the string contains at least one letter or digit.
func hasWordChars(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsValidQuery checks if input should be processed for title matching.
// Returns false for empty strings, strings with no letters or digits
// (punctuation-only input), and repetitive strings like "aaaa".
func IsValidQuery(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return false
	}
	if !hasWordChars(s) {
		return false
	}
	if IsRepetitive(s) {
		return false
	}
	return true
}

// FormatWithCommas renders an integer with thousands separators for display.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
