// SPDX-License-Identifier: MIT
package dedup

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarityExactAndEmpty(t *testing.T) {
	if got := Similarity("cnn", "cnn"); got != 1.0 {
		t.Errorf("identical strings: got %v, want 1.0", got)
	}
	if got := Similarity("", "cnn"); got != 0 {
		t.Errorf("empty left: got %v, want 0", got)
	}
	if got := Similarity("cnn", ""); got != 0 {
		t.Errorf("empty right: got %v, want 0", got)
	}
	if got := Similarity("", ""); got != 0 {
		t.Errorf("both empty: got %v, want 0", got)
	}
}

func TestSimilarityNumberedChannelsNeverMerge(t *testing.T) {
	// Sibling feeds only ever match on exact equality.
	if got := Similarity("fox sports 2", "fox sports 3"); got != 0 {
		t.Errorf("fox sports 2 vs 3: got %v, want 0", got)
	}
	if got := Similarity("fox sports 2", "fox sports 2"); got != 1.0 {
		t.Errorf("fox sports 2 vs itself: got %v, want 1.0", got)
	}
	// One edit apart, but both numbered: still 0.
	if got := Similarity("canal 11", "canal 12"); got != 0 {
		t.Errorf("canal 11 vs 12: got %v, want 0", got)
	}
}

func TestSimilaritySubstring(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "containment earns length-ratio bonus",
			a:        "caracol tv",
			b:        "caracol tv in",
			expected: 0.7 + 0.25*10.0/13.0,
		},
		{
			name:     "short containment scores low",
			a:        "cnn",
			b:        "cnn international",
			expected: 0.7 + 0.25*3.0/17.0,
		},
		{
			name:     "digit-suffixed longer side rejected",
			a:        "cnn",
			b:        "cnn 2",
			expected: 0,
		},
		{
			name:     "too-short substring falls back to edit distance",
			a:        "tv",
			b:        "tv azteca",
			expected: 1.0 - 7.0/9.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); !almostEqual(got, tt.expected) {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSimilaritySubstringStaysBelowExact(t *testing.T) {
	got := Similarity("fox sports news", "fox sports news live")
	if got >= 1.0 {
		t.Errorf("containment must stay below exact match, got %v", got)
	}
	if got > substringCap {
		t.Errorf("containment exceeds cap: %v", got)
	}
}

func TestSimilarityLevenshtein(t *testing.T) {
	// 1 substitution over max length 4.
	if got := Similarity("cine", "cina"); !almostEqual(got, 0.75) {
		t.Errorf("cine vs cina: got %v, want 0.75", got)
	}
	// Completely different strings approach 0.
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("abc vs xyz: got %v, want 0", got)
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"caracol tv", "caracol tv in"},
		{"cine", "cina"},
		{"cnn", "cnn 2"},
		{"fox sports 2", "fox sports 3"},
	}
	for _, p := range pairs {
		if a, b := Similarity(p[0], p[1]), Similarity(p[1], p[0]); !almostEqual(a, b) {
			t.Errorf("Similarity(%q, %q)=%v but reversed=%v", p[0], p[1], a, b)
		}
	}
}
