// SPDX-License-Identifier: MIT
package dedup

import (
	"github.com/jcastrom/dedupetv/internal/channel"
)

// IsDuplicate decides whether two records denote the same logical channel
// under the configured criteria. Checks are staged and short-circuit:
// identical IDs and identical stream URLs always win, URL similarity runs
// before name similarity.
//
// Note the deliberate asymmetry under CriteriaIDExact: the similarity stages
// are skipped entirely, but exact URL equality still fires. Two feeds
// pointing at the same stream are the same channel no matter how the caller
// keys them.
func IsDuplicate(a, b channel.Record, cfg Config) bool {
	if a.ID != "" && a.ID == b.ID {
		return true
	}
	if a.StreamURL != "" && a.StreamURL == b.StreamURL {
		return true
	}

	if cfg.Criteria.includesURL() {
		if Similarity(NormalizeURL(a.StreamURL), NormalizeURL(b.StreamURL)) >= cfg.URLSimilarityThreshold {
			return true
		}
	}

	if cfg.Criteria.includesName() {
		keyA, keyB := nameKeys(a.Name, b.Name)
		if Similarity(keyA, keyB) >= cfg.NameSimilarityThreshold {
			return true
		}
	}

	return false
}

// nameKeys picks the normalization for a name comparison. When both names
// carry a quality marker the markers are stripped everywhere so "CARACOL TV
// SD_IN" and "CARACOL TV HD" compare on the bare channel name; otherwise
// only a trailing quality token is removed.
func nameKeys(a, b string) (string, string) {
	if HasQualityMarker(a) && HasQualityMarker(b) {
		return NormalizeForQuality(a), NormalizeForQuality(b)
	}
	return NormalizeName(a), NormalizeName(b)
}
