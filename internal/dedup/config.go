// SPDX-License-Identifier: MIT

// Package dedup collapses near-duplicate channel records down to one
// surviving record per logical channel. It is a pure batch transform: it
// never mutates input records and holds no state across runs.
package dedup

import (
	"fmt"
	"strings"
)

// Criteria selects which signals the detector consults when deciding
// whether two records describe the same channel.
type Criteria int

const (
	CriteriaIDExact Criteria = iota
	CriteriaNameSimilarity
	CriteriaURLSimilarity
	CriteriaCombined
)

var criteriaNames = map[Criteria]string{
	CriteriaIDExact:        "id_exact",
	CriteriaNameSimilarity: "name_similarity",
	CriteriaURLSimilarity:  "url_similarity",
	CriteriaCombined:       "combined",
}

func (c Criteria) String() string {
	if s, ok := criteriaNames[c]; ok {
		return s
	}
	return "combined"
}

// ParseCriteria maps a config string to a Criteria.
func ParseCriteria(s string) (Criteria, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id_exact", "id":
		return CriteriaIDExact, nil
	case "name_similarity", "name":
		return CriteriaNameSimilarity, nil
	case "url_similarity", "url":
		return CriteriaURLSimilarity, nil
	case "combined", "":
		return CriteriaCombined, nil
	default:
		return CriteriaCombined, fmt.Errorf("unknown dedup criteria %q", s)
	}
}

func (c Criteria) includesName() bool {
	return c == CriteriaNameSimilarity || c == CriteriaCombined
}

func (c Criteria) includesURL() bool {
	return c == CriteriaURLSimilarity || c == CriteriaCombined
}

// Strategy selects which record survives a confirmed duplicate pair.
type Strategy int

const (
	StrategyKeepFirst Strategy = iota
	StrategyKeepLast
	StrategyPrioritizeHD
	StrategyPrioritizeSource
	StrategyCustom
)

var strategyNames = map[Strategy]string{
	StrategyKeepFirst:        "keep_first",
	StrategyKeepLast:         "keep_last",
	StrategyPrioritizeHD:     "prioritize_hd",
	StrategyPrioritizeSource: "prioritize_source",
	StrategyCustom:           "custom",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return "prioritize_hd"
}

// ParseStrategy maps a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep_first":
		return StrategyKeepFirst, nil
	case "keep_last":
		return StrategyKeepLast, nil
	case "prioritize_hd", "":
		return StrategyPrioritizeHD, nil
	case "prioritize_source":
		return StrategyPrioritizeSource, nil
	case "custom":
		return StrategyCustom, nil
	default:
		return StrategyPrioritizeHD, fmt.Errorf("unknown dedup strategy %q", s)
	}
}

// Config is supplied by the caller and never modified by the engine.
type Config struct {
	Criteria Criteria
	Strategy Strategy

	NameSimilarityThreshold float64
	URLSimilarityThreshold  float64

	// EnableHDUpgrade permits an incoming higher-quality record to replace
	// an already-accepted one. With it disabled the engine still detects
	// and drops duplicates, but never swaps the survivor for quality.
	EnableHDUpgrade bool

	// PreserveSourcePriority makes the CUSTOM strategy consult SourcePriority
	// before quality. SourcePriority lists source tags best-first; tags not
	// listed lose to every listed tag.
	PreserveSourcePriority bool
	SourcePriority         []string

	// EnableMetrics controls the per-source and per-strategy breakdown maps.
	// The scalar counters are always populated.
	EnableMetrics bool
}

// DefaultConfig returns the thresholds and strategy used by the refresh
// pipeline unless configured otherwise.
func DefaultConfig() Config {
	return Config{
		Criteria:                CriteriaCombined,
		Strategy:                StrategyPrioritizeHD,
		NameSimilarityThreshold: 0.85,
		URLSimilarityThreshold:  0.95,
		EnableHDUpgrade:         true,
		EnableMetrics:           true,
	}
}

// Validate rejects thresholds outside [0,1].
func (c Config) Validate() error {
	if c.NameSimilarityThreshold < 0 || c.NameSimilarityThreshold > 1 {
		return fmt.Errorf("name similarity threshold %v out of range [0,1]", c.NameSimilarityThreshold)
	}
	if c.URLSimilarityThreshold < 0 || c.URLSimilarityThreshold > 1 {
		return fmt.Errorf("url similarity threshold %v out of range [0,1]", c.URLSimilarityThreshold)
	}
	return nil
}
