// SPDX-License-Identifier: MIT
package dedup

import (
	"regexp"
	"strconv"
	"strings"
)

// QualityTag identifies which quality pattern a channel name carries.
// Classification is first-match in the order of classifyOrder below, so a
// name like "discovery sd_hd" lands on the underscore-HD pattern, matching
// how the listings that use these suffixes behave in practice.
type QualityTag string

const (
	Tag4K           QualityTag = "4k"
	TagUHD          QualityTag = "uhd"
	TagFHD          QualityTag = "fhd"
	TagNumberedHD   QualityTag = "numbered_hd"
	TagUnderscoreHD QualityTag = "_hd"
	TagHDWord       QualityTag = "hd_word"
	TagSDVariant    QualityTag = "sd_variant"
	TagUnderscoreSD QualityTag = "_sd"
	TagNumberedSD   QualityTag = "numbered_sd"
	TagSDWord       QualityTag = "sd_word"
	TagNone         QualityTag = "none"
)

// tagPriority ranks patterns for conflict resolution. Anything at or above
// hd_word (75) is HD-tier; anything in (0, 25] is SD-tier.
var tagPriority = map[QualityTag]int{
	Tag4K:           100,
	TagUHD:          95,
	TagFHD:          90,
	TagNumberedHD:   85,
	TagUnderscoreHD: 80,
	TagHDWord:       75,
	TagSDVariant:    25,
	TagUnderscoreSD: 20,
	TagNumberedSD:   15,
	TagSDWord:       10,
	TagNone:         0,
}

const hdTierFloor = 75

var (
	// Word boundaries are hand-rolled: regexp's \b counts "_" as a word
	// character, and the underscore variants below depend on seeing it.
	re4K         = regexp.MustCompile(`(?:^|[^a-z0-9])4k(?:[^a-z0-9]|$)`)
	reUHD        = regexp.MustCompile(`(?:^|[^a-z0-9])uhd(?:[^a-z0-9]|$)`)
	reFHD        = regexp.MustCompile(`(?:^|[^a-z0-9])fhd(?:[^a-z0-9]|$)`)
	reNumberedHD = regexp.MustCompile(`(?:^|[^a-z0-9])([0-9]+)hd(?:[^a-z0-9]|$)`)
	reUnderHD    = regexp.MustCompile(`_hd(?:[^a-z0-9]|$)`)
	reHDWord     = regexp.MustCompile(`(?:^|[^a-z0-9_])hd(?:[^a-z0-9_]|$)`)
	reSDVariant  = regexp.MustCompile(`(?:^|[^a-z0-9])sd_(in|out|hd|default)(?:[^a-z0-9]|$)`)
	reUnderSD    = regexp.MustCompile(`_sd(?:[^a-z0-9]|$)`)
	reNumberedSD = regexp.MustCompile(`(?:^|[^a-z0-9])([0-9]+)sd(?:[^a-z0-9]|$)`)
	reSDWord     = regexp.MustCompile(`(?:^|[^a-z0-9_])sd(?:[^a-z0-9_]|$)`)
)

var classifyOrder = []struct {
	tag QualityTag
	re  *regexp.Regexp
}{
	{Tag4K, re4K},
	{TagUHD, reUHD},
	{TagFHD, reFHD},
	{TagNumberedHD, reNumberedHD},
	{TagUnderscoreHD, reUnderHD},
	{TagHDWord, reHDWord},
	{TagSDVariant, reSDVariant},
	{TagUnderscoreSD, reUnderSD},
	{TagNumberedSD, reNumberedSD},
	{TagSDWord, reSDWord},
}

// Classify returns the single quality pattern embedded in name, or TagNone.
func Classify(name string) QualityTag {
	s := strings.ToLower(name)
	for _, c := range classifyOrder {
		if c.re.MatchString(s) {
			return c.tag
		}
	}
	return TagNone
}

// Priority returns the numeric rank of the tag in the pattern table.
func (t QualityTag) Priority() int {
	return tagPriority[t]
}

// IsHDTier reports whether the tag sits in the HD band of the table.
func (t QualityTag) IsHDTier() bool {
	return tagPriority[t] >= hdTierFloor
}

// IsSDTier reports whether the tag sits in the SD band of the table.
func (t QualityTag) IsSDTier() bool {
	p := tagPriority[t]
	return p > 0 && p < hdTierFloor
}

// HasQualityMarker reports whether the name carries any quality pattern.
func HasQualityMarker(name string) bool {
	return Classify(name) != TagNone
}

// IsHighQuality reports whether the name carries an HD-band marker.
func IsHighQuality(name string) bool {
	return Classify(name).IsHDTier()
}

// IsLowQuality reports whether the name carries an SD-band marker.
func IsLowQuality(name string) bool {
	return Classify(name).IsSDTier()
}

// EmbeddedNumber extracts the integer adjacent to a numbered quality token
// ("CARACOL 105HD" → 105). It returns 0 when the tag is not a numbered
// pattern or no number is present.
func EmbeddedNumber(name string, tag QualityTag) int {
	var re *regexp.Regexp
	switch tag {
	case TagNumberedHD:
		re = reNumberedHD
	case TagNumberedSD:
		re = reNumberedSD
	default:
		return 0
	}
	m := re.FindStringSubmatch(strings.ToLower(name))
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

var sdVariantPriority = map[string]int{
	"in":      30,
	"out":     25,
	"hd":      20,
	"default": 10,
}

// SDVariant returns the sd_<word> variant embedded in the name ("in", "out",
// "hd" or "default") and its tie-break priority. Names without a variant
// yield ("", 0).
func SDVariant(name string) (string, int) {
	m := reSDVariant.FindStringSubmatch(strings.ToLower(name))
	if len(m) < 2 {
		return "", 0
	}
	return m[1], sdVariantPriority[m[1]]
}
