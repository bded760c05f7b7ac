// SPDX-License-Identifier: MIT
package dedup

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// substringCap keeps a pure containment match strictly below an exact match
// so "Fox Sports" inside "Fox Sports News" never outranks equality.
const substringCap = 0.95

// Similarity scores two normalization keys in [0,1].
//
// Channels that both end in a digit are sibling feeds ("Fox Sports 2" vs
// "Fox Sports 3") and only ever match on exact equality, regardless of edit
// distance. Containment of one key in the other earns a length-ratio bonus,
// except that a digit-suffixed key only passes when the longer side is the
// shorter one plus a bare leading lineup number. Everything else falls back
// to normalized Levenshtein distance.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	aDigit, bDigit := endsInDigit(a), endsInDigit(b)
	if aDigit && bDigit {
		return 0
	}

	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	shortLen := utf8.RuneCountInString(shorter)
	longLen := utf8.RuneCountInString(longer)

	if shortLen >= 3 && strings.Contains(longer, shorter) {
		if aDigit || bDigit {
			if StripLeadingNumber(longer) == shorter {
				return substringCap
			}
			return 0
		}
		score := 0.7 + 0.25*float64(shortLen)/float64(longLen)
		if score > substringCap {
			score = substringCap
		}
		return score
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := longLen
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(maxLen)
}
