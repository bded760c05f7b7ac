// SPDX-License-Identifier: MIT

// Package ingest turns CSV listings and M3U playlists into channel records.
// Malformed rows are dropped with a log entry; the dedup engine only ever
// sees records that pass channel.Record.Validate.
package ingest

import (
	"strings"

	"github.com/jcastrom/dedupetv/internal/channel"
	"github.com/jcastrom/dedupetv/internal/log"
)

// extinfAttr extracts a quoted attribute value from an EXTINF line.
func extinfAttr(line, key string) string {
	marker := key + `="`
	idx := strings.Index(line, marker)
	if idx == -1 {
		return ""
	}
	rest := line[idx+len(marker):]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// ParseM3U parses M3U playlist content into channel records. The sourceTag
// names the origin and becomes both the record's SourceTag and the ID prefix.
func ParseM3U(content, sourceTag string) []channel.Record {
	logger := log.WithComponent("ingest")

	var records []channel.Record
	var pending *channel.Record
	dropped := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			// #EXTINF:-1 tvg-id="..." tvg-logo="..." group-title="...",Display Name
			rec := channel.Record{SourceTag: sourceTag, Metadata: map[string]string{}}

			if v := extinfAttr(line, "tvg-id"); v != "" {
				rec.Metadata["tvg_id"] = v
			}
			if v := extinfAttr(line, "tvg-logo"); v != "" {
				rec.Metadata["logo"] = v
			}
			if v := extinfAttr(line, "group-title"); v != "" {
				rec.Metadata["group"] = v
			}
			if v := extinfAttr(line, "tvg-chno"); v != "" {
				rec.Metadata["number"] = v
			}

			if idx := strings.LastIndex(line, ","); idx != -1 {
				rec.Name = strings.TrimSpace(line[idx+1:])
			}
			rec.Quality = qualityHint(rec.Name, extinfAttr(line, "tvg-quality"))
			pending = &rec

		case line != "" && !strings.HasPrefix(line, "#"):
			if pending == nil {
				continue
			}
			rec := *pending
			pending = nil
			rec.StreamURL = line
			rec.ID = StableID(sourceTag, rec.Name, rec.StreamURL)

			if err := rec.Validate(); err != nil {
				dropped++
				logger.Debug().
					Err(err).
					Str("event", "m3u.record_dropped").
					Str("source", sourceTag).
					Msg("skipping invalid playlist entry")
				continue
			}
			records = append(records, rec)
		}
	}

	if dropped > 0 {
		logger.Warn().
			Str("event", "m3u.dropped").
			Str("source", sourceTag).
			Int("dropped", dropped).
			Msg("playlist entries skipped")
	}
	return records
}

// qualityHint derives the declared quality tier from an explicit attribute
// when present, otherwise from the display name.
func qualityHint(name, attr string) channel.Quality {
	if attr != "" {
		return channel.ParseQuality(attr)
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "4k"):
		return channel.Quality4K
	case strings.Contains(lower, "uhd"):
		return channel.QualityUHD
	case strings.Contains(lower, "fhd"), strings.Contains(lower, "1080"):
		return channel.QualityFHD
	case strings.Contains(lower, "hd"):
		return channel.QualityHD
	case strings.Contains(lower, "sd"):
		return channel.QualitySD
	default:
		return channel.QualityAuto
	}
}
