// SPDX-License-Identifier: MIT
package dedup

import (
	"time"

	"github.com/google/uuid"
)

// Metrics accumulates counters for a single deduplication run. Each run owns
// its accumulator exclusively; the engine returns it by value and never
// shares it across runs. Counters are best effort and never abort a pass.
type Metrics struct {
	RunID             string         `json:"run_id"`
	TotalInput        int            `json:"total_input"`
	DuplicatesFound   int            `json:"duplicates_found"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	HDUpgrades        int            `json:"hd_upgrades"`
	SourceConflicts   int            `json:"source_conflicts"`
	Duration          time.Duration  `json:"duration"`
	Criteria          string         `json:"criteria"`
	Strategy          string         `json:"strategy"`
	BySource          map[string]int `json:"by_source,omitempty"`
	ByStrategyTag     map[string]int `json:"by_strategy_tag,omitempty"`
}

func newMetrics(cfg Config, inputs int) *Metrics {
	m := &Metrics{
		RunID:      uuid.NewString(),
		TotalInput: inputs,
		Criteria:   cfg.Criteria.String(),
		Strategy:   cfg.Strategy.String(),
	}
	if cfg.EnableMetrics {
		m.BySource = make(map[string]int)
		m.ByStrategyTag = make(map[string]int)
	}
	return m
}

func (m *Metrics) countSource(tag string) {
	if m.BySource == nil {
		return
	}
	if tag == "" {
		tag = "unknown"
	}
	m.BySource[tag]++
}

// countResolution records one resolver verdict. HD upgrades and source
// conflicts are derived from the strategy tag.
func (m *Metrics) countResolution(out Outcome) {
	m.DuplicatesFound++
	switch out.StrategyTag {
	case tagUpgradeSDToHD, tagUpgradeGenericToHD:
		m.HDUpgrades++
	case tagSourcePriority:
		m.SourceConflicts++
	}
	if m.ByStrategyTag != nil {
		m.ByStrategyTag[out.StrategyTag]++
	}
}
