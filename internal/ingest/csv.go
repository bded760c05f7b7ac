// SPDX-License-Identifier: MIT
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jcastrom/dedupetv/internal/channel"
	"github.com/jcastrom/dedupetv/internal/log"
)

// Column aliases accepted in the CSV header, lower-cased.
var csvColumns = map[string]string{
	"id":         "id",
	"channel_id": "id",
	"name":       "name",
	"channel":    "name",
	"title":      "name",
	"url":        "url",
	"stream":     "url",
	"stream_url": "url",
	"link":       "url",
	"quality":    "quality",
	"group":      "group",
	"category":   "group",
	"logo":       "logo",
}

// ParseCSV reads a header-driven channel listing. The name and url columns
// are required; id, quality, group and logo are optional. Rows that fail
// validation are skipped, not fatal: one broken row must not sink a 10k-row
// listing.
func ParseCSV(r io.Reader, sourceTag string) ([]channel.Record, error) {
	logger := log.WithComponent("ingest")

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if canonical, ok := csvColumns[key]; ok {
			if _, taken := cols[canonical]; !taken {
				cols[canonical] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("csv header has no name column: %v", header)
	}
	if _, ok := cols["url"]; !ok {
		return nil, fmt.Errorf("csv header has no url column: %v", header)
	}

	field := func(row []string, key string) string {
		idx, ok := cols[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []channel.Record
	dropped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it and keep reading.
			dropped++
			logger.Debug().
				Err(err).
				Str("event", "csv.row_malformed").
				Str("source", sourceTag).
				Int("line", line).
				Msg("skipping malformed csv row")
			continue
		}

		rec := channel.Record{
			Name:      field(row, "name"),
			StreamURL: field(row, "url"),
			Quality:   channel.ParseQuality(field(row, "quality")),
			SourceTag: sourceTag,
		}
		rec.ID = field(row, "id")
		if rec.ID == "" {
			rec.ID = StableID(sourceTag, rec.Name, rec.StreamURL)
		} else if !strings.HasPrefix(rec.ID, sourceTag+"_") {
			rec.ID = sourceTag + "_" + rec.ID
		}
		if g := field(row, "group"); g != "" {
			rec.Metadata = map[string]string{"group": g}
		}
		if l := field(row, "logo"); l != "" {
			if rec.Metadata == nil {
				rec.Metadata = map[string]string{}
			}
			rec.Metadata["logo"] = l
		}

		if err := rec.Validate(); err != nil {
			dropped++
			logger.Debug().
				Err(err).
				Str("event", "csv.record_dropped").
				Str("source", sourceTag).
				Int("line", line).
				Msg("skipping invalid csv row")
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		logger.Warn().
			Str("event", "csv.dropped").
			Str("source", sourceTag).
			Int("dropped", dropped).
			Msg("csv rows skipped")
	}
	return records, nil
}

// DecodeReader wraps r with a charset decoder when the source declares a
// non-UTF-8 encoding. Older listing exports are typically Latin-1.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported source encoding %q", encoding)
	}
}
