// SPDX-License-Identifier: MIT
package dedup

import (
	"github.com/jcastrom/dedupetv/internal/channel"
)

// Strategy tags attached to each resolution outcome. The metrics breakdown
// is keyed by these, so they stay stable.
const (
	tagKeepFirst          = "keep_first"
	tagKeepLast           = "keep_last"
	tagSourcePriority     = "source_priority"
	tagProtectHDFromSD    = "protect_hd_from_sd"
	tagUpgradeSDToHD      = "upgrade_sd_to_hd"
	tagUpgradeGenericToHD = "upgrade_generic_to_hd"
	tagProtectHDFromGen   = "protect_hd_from_generic"
	tagHDUpgradeDisabled  = "hd_upgrade_disabled"
	tagPatternPriority    = "pattern_priority"
	tagEmbeddedNumber     = "embedded_number"
	tagSDVariantPriority  = "sd_variant_priority"
	tagNameLength         = "name_length"
	tagDeclaredQuality    = "declared_quality"
	tagKeepExisting       = "keep_existing"
)

// Outcome is the resolver's verdict for one duplicate pair. It is consumed
// immediately by the orchestrator and never stored.
type Outcome struct {
	ShouldReplace bool
	Selected      channel.Record
	StrategyTag   string
}

func keepExisting(rec channel.Record, tag string) Outcome {
	return Outcome{ShouldReplace: false, Selected: rec, StrategyTag: tag}
}

func replaceWith(rec channel.Record, tag string) Outcome {
	return Outcome{ShouldReplace: true, Selected: rec, StrategyTag: tag}
}

// Resolve picks the survivor of a confirmed duplicate pair under the active
// strategy. It selects one of the two records as-is; fields are never merged
// or edited.
func Resolve(existing, incoming channel.Record, cfg Config) Outcome {
	switch cfg.Strategy {
	case StrategyKeepFirst:
		return keepExisting(existing, tagKeepFirst)
	case StrategyKeepLast:
		return replaceWith(incoming, tagKeepLast)
	case StrategyPrioritizeSource:
		if out, decisive := resolveBySource(existing, incoming, cfg.SourcePriority); decisive {
			return out
		}
		return resolveByQuality(existing, incoming, cfg)
	case StrategyCustom:
		if cfg.PreserveSourcePriority {
			if out, decisive := resolveBySource(existing, incoming, cfg.SourcePriority); decisive {
				return out
			}
		}
		return resolveByQuality(existing, incoming, cfg)
	default: // StrategyPrioritizeHD
		return resolveByQuality(existing, incoming, cfg)
	}
}

// resolveBySource compares the records' source tags against the ordered
// priority list; earlier means higher priority. An unlisted tag loses to any
// listed one. Ties are not decisive and fall through to quality resolution.
func resolveBySource(existing, incoming channel.Record, priority []string) (Outcome, bool) {
	ei := sourceIndex(priority, existing.SourceTag)
	ii := sourceIndex(priority, incoming.SourceTag)

	switch {
	case ei == ii:
		return Outcome{}, false
	case ei == -1:
		return replaceWith(incoming, tagSourcePriority), true
	case ii == -1:
		return keepExisting(existing, tagSourcePriority), true
	case ii < ei:
		return replaceWith(incoming, tagSourcePriority), true
	default:
		return keepExisting(existing, tagSourcePriority), true
	}
}

func sourceIndex(priority []string, tag string) int {
	for i, p := range priority {
		if p == tag {
			return i
		}
	}
	return -1
}

// resolveByQuality is the PRIORITIZE_HD heuristic: protect HD survivors from
// SD and generic newcomers, upgrade SD and generic survivors to HD, break
// same-tier conflicts via the pattern priority table, and fall back to the
// declared quality enum when neither name carries a marker.
func resolveByQuality(existing, incoming channel.Record, cfg Config) Outcome {
	et := Classify(existing.Name)
	it := Classify(incoming.Name)

	switch {
	case et.IsHDTier() && it.IsSDTier():
		return keepExisting(existing, tagProtectHDFromSD)

	case et.IsSDTier() && it.IsHDTier():
		if !cfg.EnableHDUpgrade {
			return keepExisting(existing, tagHDUpgradeDisabled)
		}
		return replaceWith(incoming, tagUpgradeSDToHD)

	case et == TagNone && it.IsHDTier():
		if !cfg.EnableHDUpgrade {
			return keepExisting(existing, tagHDUpgradeDisabled)
		}
		return replaceWith(incoming, tagUpgradeGenericToHD)

	case et.IsHDTier() && it == TagNone:
		return keepExisting(existing, tagProtectHDFromGen)

	case et != TagNone && it != TagNone:
		// Both carry markers of the same tier class.
		return resolveByPattern(existing, incoming, et, it)

	case et == TagNone && it == TagNone:
		return resolveByDeclaredQuality(existing, incoming, cfg)

	default:
		// SD-tier survivor vs unmarked newcomer (or the reverse): neither
		// protection nor upgrade applies, the survivor stays.
		return keepExisting(existing, tagKeepExisting)
	}
}

// resolveByPattern breaks a same-tier conflict: higher table priority wins;
// on an exact tie, numbered patterns compare their embedded number, SD
// variants compare variant priority, then the longer (more specific) name
// wins, then the survivor stays.
func resolveByPattern(existing, incoming channel.Record, et, it QualityTag) Outcome {
	ep, ip := et.Priority(), it.Priority()
	if ip > ep {
		return replaceWith(incoming, tagPatternPriority)
	}
	if ep > ip {
		return keepExisting(existing, tagPatternPriority)
	}

	if et == TagNumberedHD || et == TagNumberedSD {
		en := EmbeddedNumber(existing.Name, et)
		in := EmbeddedNumber(incoming.Name, it)
		if in > en {
			return replaceWith(incoming, tagEmbeddedNumber)
		}
		if en > in {
			return keepExisting(existing, tagEmbeddedNumber)
		}
	}

	if et == TagSDVariant {
		_, ev := SDVariant(existing.Name)
		_, iv := SDVariant(incoming.Name)
		if iv > ev {
			return replaceWith(incoming, tagSDVariantPriority)
		}
		if ev > iv {
			return keepExisting(existing, tagSDVariantPriority)
		}
	}

	if len(incoming.Name) > len(existing.Name) {
		return replaceWith(incoming, tagNameLength)
	}
	return keepExisting(existing, tagKeepExisting)
}

// resolveByDeclaredQuality compares the quality enum declared by the source
// when neither name embeds a marker.
func resolveByDeclaredQuality(existing, incoming channel.Record, cfg Config) Outcome {
	if incoming.Quality.Rank() > existing.Quality.Rank() {
		if !cfg.EnableHDUpgrade {
			return keepExisting(existing, tagHDUpgradeDisabled)
		}
		return replaceWith(incoming, tagDeclaredQuality)
	}
	return keepExisting(existing, tagKeepExisting)
}
