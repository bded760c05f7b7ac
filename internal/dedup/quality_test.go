// SPDX-License-Identifier: MIT
package dedup

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected QualityTag
	}{
		{"4k word", "Discovery 4K", Tag4K},
		{"uhd word", "Nat Geo UHD", TagUHD},
		{"fhd word", "Cine FHD", TagFHD},
		{"numbered hd", "CARACOL 105HD", TagNumberedHD},
		{"underscore hd", "discovery_hd", TagUnderscoreHD},
		{"plain hd word", "Das Erste HD", TagHDWord},
		{"hd inside uhd not matched as word", "UHD", TagUHD},
		{"sd variant in", "CARACOL TV SD_IN", TagSDVariant},
		{"sd variant out", "RCN sd_out", TagSDVariant},
		{"sd_hd lands on underscore hd", "canal sd_hd", TagUnderscoreHD},
		{"underscore sd", "canal_sd", TagUnderscoreSD},
		{"numbered sd", "CANAL 22SD", TagNumberedSD},
		{"plain sd word", "Canal Uno SD", TagSDWord},
		{"4k beats hd", "Cine HD 4K", Tag4K},
		{"no marker", "CNN International", TagNone},
		{"hd as substring of a word", "hdmi setup channel", TagNone},
		{"empty", "", TagNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTierSplit(t *testing.T) {
	hd := []QualityTag{Tag4K, TagUHD, TagFHD, TagNumberedHD, TagUnderscoreHD, TagHDWord}
	sd := []QualityTag{TagSDVariant, TagUnderscoreSD, TagNumberedSD, TagSDWord}

	for _, tag := range hd {
		if !tag.IsHDTier() || tag.IsSDTier() {
			t.Errorf("tag %q: want HD-tier only", tag)
		}
	}
	for _, tag := range sd {
		if !tag.IsSDTier() || tag.IsHDTier() {
			t.Errorf("tag %q: want SD-tier only", tag)
		}
	}
	if TagNone.IsHDTier() || TagNone.IsSDTier() {
		t.Error("TagNone must be in neither tier")
	}
}

func TestTagPriorityOrdering(t *testing.T) {
	order := []QualityTag{
		Tag4K, TagUHD, TagFHD, TagNumberedHD, TagUnderscoreHD, TagHDWord,
		TagSDVariant, TagUnderscoreSD, TagNumberedSD, TagSDWord, TagNone,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].Priority() <= order[i].Priority() {
			t.Errorf("priority of %q (%d) must exceed %q (%d)",
				order[i-1], order[i-1].Priority(), order[i], order[i].Priority())
		}
	}
	if Tag4K.Priority() != 100 || TagHDWord.Priority() != 75 ||
		TagSDVariant.Priority() != 25 || TagSDWord.Priority() != 10 || TagNone.Priority() != 0 {
		t.Error("anchor priorities changed")
	}
}

func TestHighLowQuality(t *testing.T) {
	high := []string{"canal_hd", "Das Erste HD", "CARACOL 105HD", "Nat Geo UHD", "Cine FHD", "Discovery 4K"}
	for _, name := range high {
		if !IsHighQuality(name) {
			t.Errorf("IsHighQuality(%q) = false, want true", name)
		}
		if IsLowQuality(name) {
			t.Errorf("IsLowQuality(%q) = true, want false", name)
		}
	}

	low := []string{"Canal Uno SD", "canal_sd", "CARACOL TV SD_IN", "CANAL 22SD"}
	for _, name := range low {
		if !IsLowQuality(name) {
			t.Errorf("IsLowQuality(%q) = false, want true", name)
		}
		if IsHighQuality(name) {
			t.Errorf("IsHighQuality(%q) = true, want false", name)
		}
	}

	if HasQualityMarker("CNN International") {
		t.Error("CNN International must carry no marker")
	}
}

func TestEmbeddedNumber(t *testing.T) {
	tests := []struct {
		input    string
		tag      QualityTag
		expected int
	}{
		{"CARACOL 105HD", TagNumberedHD, 105},
		{"CANAL 22SD", TagNumberedSD, 22},
		{"Das Erste HD", TagHDWord, 0},
		{"No marker", TagNone, 0},
	}
	for _, tt := range tests {
		if got := EmbeddedNumber(tt.input, tt.tag); got != tt.expected {
			t.Errorf("EmbeddedNumber(%q, %q) = %d, want %d", tt.input, tt.tag, got, tt.expected)
		}
	}
}

func TestSDVariant(t *testing.T) {
	tests := []struct {
		input    string
		variant  string
		priority int
	}{
		{"CARACOL TV SD_IN", "in", 30},
		{"RCN sd_out", "out", 25},
		{"canal sd_default", "default", 10},
		{"plain SD", "", 0},
	}
	for _, tt := range tests {
		variant, priority := SDVariant(tt.input)
		if variant != tt.variant || priority != tt.priority {
			t.Errorf("SDVariant(%q) = (%q, %d), want (%q, %d)",
				tt.input, variant, priority, tt.variant, tt.priority)
		}
	}
}
