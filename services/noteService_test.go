package services

import (
	"testing"
)

func TestNoteMatchesSearch(t *testing.T) {
	tests := []struct {
		name        string
		noteContent string
		searchTerms []string
		expected    bool
	}{
		{
			name:        "exact word match",
			noteContent: "Goroutines are lightweight threads managed by the Go runtime",
			searchTerms: []string{"goroutines"},
			expected:    true,
		},
		{
			name:        "case insensitive match",
			noteContent: "CHANNELS synchronize goroutines",
			searchTerms: []string{"channels"},
			expected:    true,
		},
		{
			name:        "match with punctuation around word",
			noteContent: "Remember: defer runs last-in, first-out (LIFO).",
			searchTerms: []string{"defer"},
			expected:    true,
		},
		{
			name:        "typo still matches fuzzily",
			noteContent: "Interfaces describe behavior, not data",
			searchTerms: []string{"interfces"},
			expected:    true,
		},
		{
			name:        "one of several terms matches",
			noteContent: "Slices share a backing array",
			searchTerms: []string{"blockchain", "slices"},
			expected:    true,
		},
		{
			name:        "partial term matches",
			noteContent: "The select statement waits on multiple channels",
			searchTerms: []string{"chan"},
			expected:    true,
		},
		{
			name:        "unrelated term does not match",
			noteContent: "Maps are unordered key-value stores",
			searchTerms: []string{"kubernetes"},
			expected:    false,
		},
		{
			name:        "empty content does not match",
			noteContent: "",
			searchTerms: []string{"anything"},
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := noteMatchesSearch(tt.noteContent, tt.searchTerms)
			if result != tt.expected {
				t.Errorf("noteMatchesSearch() = %v, expected %v for content %q and terms %v",
					result, tt.expected, tt.noteContent, tt.searchTerms)
			}
		})
	}
}
