// SPDX-License-Identifier: MIT
package dedup

import (
	"net/url"
	"regexp"
	"strings"
)

// accentReplacer folds the accented characters that show up in European
// channel listings to plain ASCII before the character whitelist is applied.
// "España" must compare equal to "Espana", not "Espaa".
var accentReplacer = strings.NewReplacer(
	"ä", "a",
	"à", "a",
	"á", "a",
	"â", "a",
	"è", "e",
	"é", "e",
	"ê", "e",
	"ì", "i",
	"í", "i",
	"î", "i",
	"ö", "o",
	"ò", "o",
	"ó", "o",
	"ô", "o",
	"ü", "u",
	"ù", "u",
	"ú", "u",
	"û", "u",
	"ç", "c",
	"ñ", "n",
	"ß", "ss",
)

var (
	// A numeric prefix counts only when a literal separator follows it:
	// "105-CNN" carries a lineup number, "Fox Sports 2" does not.
	leadingNumberRe = regexp.MustCompile(`^[0-9]+[-_.:|]+\s*`)

	trailingQualityRe = regexp.MustCompile(`^(?:hd|sd|fhd|uhd|4k|[0-9]+hd)$`)
	qualityTokenRe    = regexp.MustCompile(`^(?:hd|sd|fhd|uhd|4k|[0-9]+hd|[0-9]+sd)$`)
)

var romanNumerals = map[string]string{
	"i": "1", "ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9", "x": "10",
}

var spanishNumbers = map[string]string{
	"uno": "1", "dos": "2", "tres": "3", "cuatro": "4", "cinco": "5",
	"seis": "6", "siete": "7", "ocho": "8", "nueve": "9", "diez": "10",
	"once": "11", "doce": "12", "trece": "13", "catorce": "14", "quince": "15",
}

// NormalizeName derives the comparison key for a channel display name:
// lower-cased, accents folded, special characters dropped, whitespace
// collapsed, a separator-backed leading lineup number removed, one trailing
// quality token removed, trailing Roman numerals and Spanish number words
// converted to digits.
func NormalizeName(name string) string {
	fields := normalizedFields(name)

	if n := len(fields); n > 1 && trailingQualityRe.MatchString(fields[n-1]) {
		fields = fields[:n-1]
	}
	if n := len(fields); n > 1 {
		if digit, ok := romanNumerals[fields[n-1]]; ok {
			fields[n-1] = digit
		}
	}
	for i, f := range fields {
		if digit, ok := spanishNumbers[f]; ok {
			fields[i] = digit
		}
	}
	return strings.Join(fields, " ")
}

// NormalizeForQuality is the comparison key used when both names carry a
// quality marker: the same cleanup as NormalizeName, but every quality token
// is removed, not just a trailing one. "CARACOL 105HD" and "CARACOL TV HD"
// must both collapse toward the bare channel name.
func NormalizeForQuality(name string) string {
	fields := normalizedFields(name)

	kept := fields[:0]
	for _, f := range fields {
		if qualityTokenRe.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		// Name consisted only of quality tokens; keep the cleaned form so
		// the key stays non-empty.
		return strings.Join(normalizedFields(name), " ")
	}
	for i, f := range kept {
		if digit, ok := spanishNumbers[f]; ok {
			kept[i] = digit
		}
	}
	return strings.Join(kept, " ")
}

// NormalizeURL reduces a stream URL to lower-cased host+path for comparison.
// Scheme, credentials, port, and query string are dropped so that token
// rotation or http/https variants of the same stream still compare equal.
// Unparseable input degrades to the lower-cased raw string, never an error.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.ToLower(s)
	}
	return strings.ToLower(u.Hostname() + u.Path)
}

// StripLeadingNumber removes a leading all-digit field from a normalized
// key. Cleanup has already turned separators into spaces, so "105-cnn"
// arrives here as "105 cnn" and becomes "cnn". A key made of digits only
// is left alone.
func StripLeadingNumber(s string) string {
	fields := strings.Fields(s)
	if len(fields) > 1 && isDigits(fields[0]) {
		return strings.Join(fields[1:], " ")
	}
	return s
}

func normalizedFields(name string) []string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = accentReplacer.Replace(s)
	s = leadingNumberRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func endsInDigit(s string) bool {
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return c >= '0' && c <= '9'
}
