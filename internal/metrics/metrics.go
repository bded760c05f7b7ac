// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Refresh pipeline metrics
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dedupetv_refresh_total",
		Help: "Total number of refresh runs by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	refreshDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dedupetv_refresh_duration_seconds",
		Help:    "Time spent on a full refresh run",
		Buckets: prometheus.DefBuckets,
	})

	channelsIngested = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dedupetv_channels_ingested",
		Help: "Channels ingested per source in the last refresh",
	}, []string{"source"})

	channelsPublished = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dedupetv_channels_published",
		Help: "Channels written to the merged playlist in the last refresh",
	})

	channelsFiltered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dedupetv_channels_filtered",
		Help: "Channels removed by the content filter in the last refresh",
	})

	// Deduplication metrics
	duplicatesFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedupetv_duplicates_found_total",
		Help: "Total number of duplicate pairs detected",
	})

	duplicatesRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedupetv_duplicates_removed_total",
		Help: "Total number of duplicate records dropped",
	})

	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dedupetv_resolutions_total",
		Help: "Conflict resolutions by strategy tag",
	}, []string{"strategy"})

	hdUpgradesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedupetv_hd_upgrades_total",
		Help: "Total number of records replaced by a higher-quality duplicate",
	})

	sourceConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedupetv_source_conflicts_total",
		Help: "Total number of duplicate pairs resolved by source priority",
	})

	dedupDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dedupetv_dedup_duration_seconds",
		Help:    "Time spent in the deduplication pass",
		Buckets: prometheus.DefBuckets,
	})
)

func IncRefresh(outcome string)           { refreshTotal.WithLabelValues(outcome).Inc() }
func ObserveRefreshDuration(secs float64) { refreshDurationSeconds.Observe(secs) }
func RecordIngested(source string, n int) { channelsIngested.WithLabelValues(source).Set(float64(n)) }
func RecordPublished(n int)               { channelsPublished.Set(float64(n)) }
func RecordFiltered(n int)                { channelsFiltered.Set(float64(n)) }
func AddDuplicatesFound(n int)            { duplicatesFoundTotal.Add(float64(n)) }
func AddDuplicatesRemoved(n int)          { duplicatesRemovedTotal.Add(float64(n)) }
func IncResolution(tag string, n int)     { resolutionsTotal.WithLabelValues(tag).Add(float64(n)) }
func AddHDUpgrades(n int)                 { hdUpgradesTotal.Add(float64(n)) }
func AddSourceConflicts(n int)            { sourceConflictsTotal.Add(float64(n)) }
func ObserveDedupDuration(secs float64)   { dedupDurationSeconds.Observe(secs) }
