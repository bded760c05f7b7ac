// SPDX-License-Identifier: MIT
package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcastrom/dedupetv/internal/channel"
)

func TestResolveKeepFirstKeepLast(t *testing.T) {
	existing := rec("a", "CNN", "http://a.tv/1")
	incoming := rec("b", "CNN HD", "http://b.tv/2")

	cfg := DefaultConfig()
	cfg.Strategy = StrategyKeepFirst
	out := Resolve(existing, incoming, cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, existing, out.Selected)
	assert.Equal(t, "keep_first", out.StrategyTag)

	cfg.Strategy = StrategyKeepLast
	out = Resolve(existing, incoming, cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, incoming, out.Selected)
	assert.Equal(t, "keep_last", out.StrategyTag)
}

func TestResolvePrioritizeHDMatrix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyPrioritizeHD

	tests := []struct {
		name        string
		existing    string
		incoming    string
		replace     bool
		strategyTag string
	}{
		{"hd protected from sd", "Caracol HD", "Caracol SD", false, "protect_hd_from_sd"},
		{"sd upgraded to hd", "Caracol SD", "Caracol HD", true, "upgrade_sd_to_hd"},
		{"generic upgraded to hd", "Caracol", "Caracol HD", true, "upgrade_generic_to_hd"},
		{"hd protected from generic", "Caracol HD", "Caracol", false, "protect_hd_from_generic"},
		{"sd survivor keeps against generic", "Caracol SD", "Caracol", false, "keep_existing"},
		{"generic survivor keeps against sd", "Caracol", "Caracol SD", false, "keep_existing"},
		{"4k beats plain hd", "Caracol HD", "Caracol 4K", true, "pattern_priority"},
		{"plain hd loses to uhd", "Caracol UHD", "Caracol HD", false, "pattern_priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := rec("a", tt.existing, "http://a.tv/1")
			incoming := rec("b", tt.incoming, "http://b.tv/2")
			out := Resolve(existing, incoming, cfg)
			assert.Equal(t, tt.replace, out.ShouldReplace)
			assert.Equal(t, tt.strategyTag, out.StrategyTag)
			if tt.replace {
				assert.Equal(t, incoming, out.Selected)
			} else {
				assert.Equal(t, existing, out.Selected)
			}
		})
	}
}

func TestResolveTieBreakers(t *testing.T) {
	cfg := DefaultConfig()

	// Numbered patterns: larger embedded number wins.
	out := Resolve(rec("a", "CARACOL 105HD", "u1"), rec("b", "CARACOL 200HD", "u2"), cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "embedded_number", out.StrategyTag)

	out = Resolve(rec("a", "CARACOL 200HD", "u1"), rec("b", "CARACOL 105HD", "u2"), cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "embedded_number", out.StrategyTag)

	// SD variants: sd_in outranks sd_out.
	out = Resolve(rec("a", "RCN SD_OUT", "u1"), rec("b", "RCN SD_IN", "u2"), cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "sd_variant_priority", out.StrategyTag)

	// Same pattern, same rank: the longer name is the more specific one.
	out = Resolve(rec("a", "Caracol HD", "u1"), rec("b", "Caracol Internacional HD", "u2"), cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "name_length", out.StrategyTag)

	// Fully tied: the survivor stays.
	out = Resolve(rec("a", "Caracol HD", "u1"), rec("b", "Karacol HD", "u2"), cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "keep_existing", out.StrategyTag)
}

func TestResolveDeclaredQualityFallback(t *testing.T) {
	cfg := DefaultConfig()

	existing := channel.Record{ID: "a", Name: "Caracol", StreamURL: "u1", Quality: channel.QualitySD}
	incoming := channel.Record{ID: "b", Name: "Caracol Intl", StreamURL: "u2", Quality: channel.QualityFHD}

	out := Resolve(existing, incoming, cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "declared_quality", out.StrategyTag)

	// AUTO never beats anything.
	incoming.Quality = channel.QualityAuto
	out = Resolve(existing, incoming, cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "keep_existing", out.StrategyTag)
}

func TestResolveHDUpgradeDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableHDUpgrade = false

	out := Resolve(rec("a", "Caracol SD", "u1"), rec("b", "Caracol HD", "u2"), cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "hd_upgrade_disabled", out.StrategyTag)

	// Protection still applies with upgrades off.
	out = Resolve(rec("a", "Caracol HD", "u1"), rec("b", "Caracol SD", "u2"), cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "protect_hd_from_sd", out.StrategyTag)
}

func TestResolvePrioritizeSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyPrioritizeSource
	cfg.SourcePriority = []string{"csv", "m3u"}

	csvRec := channel.Record{ID: "a", Name: "Caracol", StreamURL: "u1", SourceTag: "csv"}
	m3uRec := channel.Record{ID: "b", Name: "Caracol", StreamURL: "u2", SourceTag: "m3u"}
	otherRec := channel.Record{ID: "c", Name: "Caracol", StreamURL: "u3", SourceTag: "scraper"}

	// Earlier in the list wins, in both directions.
	out := Resolve(m3uRec, csvRec, cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "source_priority", out.StrategyTag)

	out = Resolve(csvRec, m3uRec, cfg)
	assert.False(t, out.ShouldReplace)

	// Unlisted sources lose to any listed source.
	out = Resolve(otherRec, m3uRec, cfg)
	assert.True(t, out.ShouldReplace)
	out = Resolve(m3uRec, otherRec, cfg)
	assert.False(t, out.ShouldReplace)

	// A source tie falls through to quality resolution.
	hdTwin := channel.Record{ID: "d", Name: "Caracol HD", StreamURL: "u4", SourceTag: "csv"}
	out = Resolve(csvRec, hdTwin, cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "upgrade_generic_to_hd", out.StrategyTag)
}

func TestResolveCustom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyCustom
	cfg.PreserveSourcePriority = true
	cfg.SourcePriority = []string{"csv", "m3u"}

	csvRec := channel.Record{ID: "a", Name: "Caracol SD", StreamURL: "u1", SourceTag: "csv"}
	m3uHD := channel.Record{ID: "b", Name: "Caracol HD", StreamURL: "u2", SourceTag: "m3u"}

	// Source priority decides first, even against better quality.
	out := Resolve(csvRec, m3uHD, cfg)
	assert.False(t, out.ShouldReplace)
	assert.Equal(t, "source_priority", out.StrategyTag)

	// With the source stage disabled, quality decides.
	cfg.PreserveSourcePriority = false
	out = Resolve(csvRec, m3uHD, cfg)
	assert.True(t, out.ShouldReplace)
	assert.Equal(t, "upgrade_sd_to_hd", out.StrategyTag)
}
