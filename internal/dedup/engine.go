// SPDX-License-Identifier: MIT
package dedup

import (
	"time"

	"github.com/jcastrom/dedupetv/internal/channel"
)

// Result is the output of one deduplication run.
type Result struct {
	Records []channel.Record
	Metrics Metrics
}

// Deduplicate collapses records describing the same logical channel down to
// one survivor each, in a single forward pass. The survivor set depends on
// input order: a later record can replace an earlier one in place, so
// callers wanting reproducible output must feed records in a deterministic
// order.
func Deduplicate(records []channel.Record, cfg Config) Result {
	start := time.Now()
	m := newMetrics(cfg, len(records))

	var accepted []channel.Record
	if cfg.Criteria == CriteriaIDExact {
		accepted = dedupeExact(records, cfg, m)
	} else {
		accepted = dedupeScan(records, cfg, m)
	}

	m.DuplicatesRemoved = len(records) - len(accepted)
	m.Duration = time.Since(start)
	return Result{Records: accepted, Metrics: *m}
}

// dedupeExact is the O(n) mode for CriteriaIDExact: records are keyed by ID,
// plus by exact stream URL, which stays the strongest duplicate signal even
// when similarity scoring is off.
func dedupeExact(records []channel.Record, cfg Config, m *Metrics) []channel.Record {
	accepted := make([]channel.Record, 0, len(records))
	byID := make(map[string]int, len(records))
	byURL := make(map[string]int, len(records))

	claim := func(rec channel.Record, idx int) {
		if rec.ID != "" {
			byID[rec.ID] = idx
		}
		if rec.StreamURL != "" {
			byURL[rec.StreamURL] = idx
		}
	}

	for _, rec := range records {
		m.countSource(rec.SourceTag)

		idx, found := byID[rec.ID]
		if !found || rec.ID == "" {
			idx, found = byURL[rec.StreamURL]
			if rec.StreamURL == "" {
				found = false
			}
		}
		if !found {
			accepted = append(accepted, rec)
			claim(rec, len(accepted)-1)
			continue
		}

		out := Resolve(accepted[idx], rec, cfg)
		m.countResolution(out)
		if out.ShouldReplace {
			accepted[idx] = out.Selected
		}
		// Either way the loser's keys now identify the survivor, so a third
		// copy keyed like the loser still collapses into the same slot.
		claim(rec, idx)
	}
	return accepted
}

// dedupeScan is the similarity mode: each new record is compared against
// every accepted record until the first match, then resolved in place.
// O(n²) worst case.
func dedupeScan(records []channel.Record, cfg Config, m *Metrics) []channel.Record {
	accepted := make([]channel.Record, 0, len(records))

	for _, rec := range records {
		m.countSource(rec.SourceTag)

		matched := false
		for i := range accepted {
			if !IsDuplicate(accepted[i], rec, cfg) {
				continue
			}
			out := Resolve(accepted[i], rec, cfg)
			m.countResolution(out)
			if out.ShouldReplace {
				accepted[i] = out.Selected
			}
			matched = true
			break
		}
		if !matched {
			accepted = append(accepted, rec)
		}
	}
	return accepted
}
