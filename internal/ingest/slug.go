// SPDX-License-Identifier: MIT
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"
)

// slugify converts a channel name into a compact, URL-safe identifier slug.
// Example: "Das Erste HD" → "das-erste-hd"
func slugify(name string) string {
	if name == "" {
		return "channel"
	}

	s := strings.ToLower(name)

	replacer := strings.NewReplacer(
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"ß", "ss",
		"á", "a",
		"é", "e",
		"í", "i",
		"ó", "o",
		"ú", "u",
		"ñ", "n",
		"ç", "c",
	)
	s = replacer.Replace(s)

	var b strings.Builder
	lastWasDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasDash = false
		} else if !lastWasDash {
			b.WriteRune('-')
			lastWasDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "-")
	}
	if slug == "" {
		return "channel"
	}
	return slug
}

// StableID builds a deterministic record ID from the source tag, the channel
// name and the stream URL. The short hash suffix keeps IDs unique when two
// sources carry the same name.
//
// Example: StableID("m3u", "Das Erste HD", url) → "m3u_das-erste-hd-3fa92b"
func StableID(sourceTag, name, streamURL string) string {
	sum := sha1.Sum([]byte(streamURL))
	suffix := hex.EncodeToString(sum[:])[:6]
	return sourceTag + "_" + slugify(name) + "-" + suffix
}
