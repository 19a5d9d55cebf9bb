package utils

import "testing"

func TestIsValidQuery(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"avatar", true},
		{"Avatar 2", true},
		{"the matrix: reloaded", true},
		{"", false},
		{"   ", false},
		{"!!!", false},
		{"aaaa", false},
		{"ab", true},
	}

	for _, tc := range testCases {
		if got := IsValidQuery(tc.input); got != tc.expected {
			t.Errorf("IsValidQuery(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4821, "-4,821"},
	}

	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}
