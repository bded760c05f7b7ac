// SPDX-License-Identifier: MIT
package channel

import (
	"fmt"
	"strings"
)

// MaxNameLength bounds the display name of a record. Longer names are a
// parser bug upstream, not something the engine should silently truncate.
const MaxNameLength = 100

// Quality is the tier declared by the source listing itself, for example a
// tvg attribute or a CSV column. It is independent of quality hints embedded
// in the display name, which internal/dedup classifies separately.
type Quality int

const (
	QualityAuto Quality = iota
	QualitySD
	QualityHD
	QualityFHD
	QualityUHD
	Quality4K
)

var qualityNames = map[Quality]string{
	QualityAuto: "auto",
	QualitySD:   "sd",
	QualityHD:   "hd",
	QualityFHD:  "fhd",
	QualityUHD:  "uhd",
	Quality4K:   "4k",
}

func (q Quality) String() string {
	if s, ok := qualityNames[q]; ok {
		return s
	}
	return "auto"
}

// Rank orders tiers for conflict resolution: anything at HD or above beats
// SD and AUTO.
func (q Quality) Rank() int {
	switch q {
	case Quality4K:
		return 5
	case QualityUHD:
		return 4
	case QualityFHD:
		return 3
	case QualityHD:
		return 2
	case QualitySD:
		return 1
	default:
		return 0
	}
}

// ParseQuality maps a free-form tier string ("HD", "fhd", "4K", ...) to a
// Quality. Unknown values fall back to QualityAuto.
func ParseQuality(s string) Quality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sd":
		return QualitySD
	case "hd":
		return QualityHD
	case "fhd", "1080p":
		return QualityFHD
	case "uhd", "2160p":
		return QualityUHD
	case "4k":
		return Quality4K
	default:
		return QualityAuto
	}
}

// Record is one channel entry as supplied by an upstream parser. Records are
// immutable values: the dedup engine only ever selects between records, it
// never edits fields.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	StreamURL string            `json:"stream_url"`
	Quality   Quality           `json:"quality"`
	SourceTag string            `json:"source_tag"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Validate reports whether the record satisfies the structural invariants
// required by the engine.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("channel record: empty id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("channel record %q: empty name", r.ID)
	}
	if len(r.Name) > MaxNameLength {
		return fmt.Errorf("channel record %q: name exceeds %d characters", r.ID, MaxNameLength)
	}
	if strings.TrimSpace(r.StreamURL) == "" {
		return fmt.Errorf("channel record %q: empty stream url", r.ID)
	}
	return nil
}

// Meta returns the metadata value for key, or "" when absent.
func (r Record) Meta(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}
