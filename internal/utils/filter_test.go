package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"hello", true},
		{"new york", true},
		{"rock-n-roll", true},
		{"o'clock", true},
		{"12345", false},
		{"b52", true},
		{"what?", false},
		{"a+b", false},
		{"zzz", false},
		{"zz", true},
		{"ééé", false},
		{"héllo", true},
	}

	for _, tc := range testCases {
		if got := IsValidInput(tc.input); got != tc.expected {
			t.Errorf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
