// SPDX-License-Identifier: MIT

// Package filter removes unwanted channels from a listing before it is
// published: whole-word banned terms matched against the channel name and
// banned domain fragments matched against the stream URL host.
package filter

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jcastrom/dedupetv/internal/channel"
	"github.com/jcastrom/dedupetv/internal/log"
)

// Rules configures the content filter. Terms match whole words in the
// channel name, case-insensitive. Domains match as suffix or substring of
// the stream URL host ("aljazeera" removes "live.aljazeera.net", ".ru"
// removes any Russian TLD).
type Rules struct {
	BannedTerms   []string `yaml:"bannedTerms"`
	BannedDomains []string `yaml:"bannedDomains"`
}

// Empty reports whether the rules filter nothing.
func (r Rules) Empty() bool {
	return len(r.BannedTerms) == 0 && len(r.BannedDomains) == 0
}

var wordSplitRe = regexp.MustCompile(`[^a-z0-9ñáéíóúü]+`)

// Filter applies a fixed rule set to channel lists.
type Filter struct {
	terms   map[string]struct{}
	domains []string
}

// New compiles the rules. Terms are lower-cased; multi-word terms are kept
// as phrases and matched by substring on the lower-cased name.
func New(rules Rules) *Filter {
	f := &Filter{terms: make(map[string]struct{}, len(rules.BannedTerms))}
	for _, t := range rules.BannedTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			f.terms[t] = struct{}{}
		}
	}
	for _, d := range rules.BannedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			f.domains = append(f.domains, d)
		}
	}
	return f
}

// Apply partitions records into kept and removed. Records are never
// modified, only routed.
func (f *Filter) Apply(records []channel.Record) (kept, removed []channel.Record) {
	if len(f.terms) == 0 && len(f.domains) == 0 {
		return records, nil
	}

	logger := log.WithComponent("filter")
	kept = make([]channel.Record, 0, len(records))
	for _, rec := range records {
		if reason := f.match(rec); reason != "" {
			removed = append(removed, rec)
			logger.Debug().
				Str("event", "filter.removed").
				Str("channel", rec.Name).
				Str("reason", reason).
				Msg("channel filtered")
			continue
		}
		kept = append(kept, rec)
	}
	return kept, removed
}

// Banned reports whether a single record falls under the rules.
func (f *Filter) Banned(rec channel.Record) bool {
	return f.match(rec) != ""
}

func (f *Filter) match(rec channel.Record) string {
	name := strings.ToLower(rec.Name)

	for _, word := range wordSplitRe.Split(name, -1) {
		if word == "" {
			continue
		}
		if _, ok := f.terms[word]; ok {
			return "term:" + word
		}
	}
	// Multi-word phrases fall back to substring matching.
	for t := range f.terms {
		if strings.Contains(t, " ") && strings.Contains(name, t) {
			return "term:" + t
		}
	}

	if host := hostOf(rec.StreamURL); host != "" {
		for _, d := range f.domains {
			if strings.HasSuffix(host, d) || strings.Contains(host, d) {
				return "domain:" + d
			}
		}
	}
	return ""
}

// hostOf extracts the lower-cased host from a stream URL, tolerating missing
// schemes and unparseable input the same way the dedup normalizer does.
func hostOf(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(u.Hostname())
}
