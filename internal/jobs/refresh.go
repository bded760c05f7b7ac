// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/jcastrom/dedupetv/internal/channel"
	"github.com/jcastrom/dedupetv/internal/config"
	"github.com/jcastrom/dedupetv/internal/dedup"
	"github.com/jcastrom/dedupetv/internal/filter"
	"github.com/jcastrom/dedupetv/internal/ingest"
	"github.com/jcastrom/dedupetv/internal/log"
	"github.com/jcastrom/dedupetv/internal/metrics"
	"github.com/jcastrom/dedupetv/internal/playlist"
)

// Status is the outcome of the most recent refresh run.
type Status struct {
	RunID             string         `json:"run_id"`
	LastRun           time.Time      `json:"last_run"`
	Ingested          int            `json:"ingested"`
	Filtered          int            `json:"filtered"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	Published         int            `json:"published"`
	BySource          map[string]int `json:"by_source,omitempty"`
	Dedup             dedup.Metrics  `json:"dedup"`
	Error             string         `json:"error,omitempty"`
}

// Refresh performs the complete refresh cycle: load sources, drop banned
// entries, deduplicate, and write the merged playlist atomically.
func Refresh(ctx context.Context, cfg config.Config) (*Status, error) {
	start := time.Now()
	status, err := run(ctx, cfg)
	if err != nil {
		metrics.IncRefresh("failure")
	} else {
		metrics.IncRefresh("success")
	}
	metrics.ObserveRefreshDuration(time.Since(start).Seconds())
	return status, err
}

func run(ctx context.Context, cfg config.Config) (*Status, error) {
	logger := log.WithComponent("jobs")
	logger.Info().Str("event", "refresh.start").Msg("starting refresh")

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	sources, err := cfg.IngestSources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}

	records, counts, err := ingest.LoadAll(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	for tag, n := range counts {
		metrics.RecordIngested(tag, n)
	}

	kept, removed := filter.New(cfg.Filter).Apply(records)
	metrics.RecordFiltered(len(removed))

	result := dedup.Deduplicate(kept, engineCfg)
	recordDedupMetrics(result.Metrics)

	path := filepath.Join(cfg.DataDir, cfg.PlaylistFilename)
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := writePlaylist(path, result.Records); err != nil {
		return nil, err
	}
	metrics.RecordPublished(len(result.Records))

	logger.Info().
		Str("event", "refresh.success").
		Str("run_id", result.Metrics.RunID).
		Str("path", path).
		Int("ingested", len(records)).
		Int("filtered", len(removed)).
		Int("duplicates_removed", result.Metrics.DuplicatesRemoved).
		Int("published", len(result.Records)).
		Dur("dedup_duration", result.Metrics.Duration).
		Msg("refresh completed")

	return &Status{
		RunID:             result.Metrics.RunID,
		LastRun:           time.Now(),
		Ingested:          len(records),
		Filtered:          len(removed),
		DuplicatesRemoved: result.Metrics.DuplicatesRemoved,
		Published:         len(result.Records),
		BySource:          counts,
		Dedup:             result.Metrics,
	}, nil
}

// writePlaylist writes the playlist atomically: renameio fsyncs the pending
// file before the rename, so a crash never leaves a truncated playlist.
func writePlaylist(path string, records []channel.Record) error {
	logger := log.WithComponent("jobs")

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending playlist: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending playlist")
		}
	}()

	if err := playlist.WriteM3U(pending, records); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace playlist: %w", err)
	}
	return nil
}

func recordDedupMetrics(m dedup.Metrics) {
	metrics.AddDuplicatesFound(m.DuplicatesFound)
	metrics.AddDuplicatesRemoved(m.DuplicatesRemoved)
	metrics.AddHDUpgrades(m.HDUpgrades)
	metrics.AddSourceConflicts(m.SourceConflicts)
	metrics.ObserveDedupDuration(m.Duration.Seconds())
	for tag, n := range m.ByStrategyTag {
		metrics.IncResolution(tag, n)
	}
}
