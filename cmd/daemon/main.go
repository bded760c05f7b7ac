// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcastrom/dedupetv/internal/api"
	"github.com/jcastrom/dedupetv/internal/config"
	"github.com/jcastrom/dedupetv/internal/jobs"
	"github.com/jcastrom/dedupetv/internal/log"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	oneshot := flag.Bool("oneshot", false, "run a single refresh and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Safe defaults until the config is loaded.
	log.Configure(log.Config{
		Level:   "info",
		Service: "dedupetv",
		Version: version,
	})
	logger := log.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: "dedupetv",
		Version: version,
	})

	logger.Info().
		Str("event", "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", cfg.ListenAddr).
		Int("sources", len(cfg.Sources)).
		Str("data_dir", cfg.DataDir).
		Msg("starting dedupetv")

	if *oneshot {
		if _, err := jobs.Refresh(ctx, cfg); err != nil {
			logger.Fatal().Err(err).Str("event", "refresh.failed").Msg("refresh failed")
		}
		return
	}

	srv := api.New(cfg, func(ctx context.Context) (*jobs.Status, error) {
		return jobs.Refresh(ctx, cfg)
	})

	// Initial refresh before serving; a broken setup should fail at startup,
	// not on the first request.
	status, err := jobs.Refresh(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("event", "refresh.failed").Msg("initial refresh failed")
	}
	srv.SetStatus(status)

	runRefresh := func(ctx context.Context) {
		st, err := jobs.Refresh(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Str("event", "refresh.failed").Msg("refresh failed")
			return
		}
		srv.SetStatus(st)
	}

	if cfg.WatchSources {
		paths := make([]string, 0, len(cfg.Sources))
		for _, src := range cfg.Sources {
			paths = append(paths, src.Path)
		}
		watcher, err := jobs.NewWatcher(paths, runRefresh)
		if err != nil {
			logger.Fatal().Err(err).Str("event", "watcher.failed").Msg("failed to watch sources")
		}
		go watcher.Run(ctx)
	}

	if interval := cfg.RefreshInterval.Std(); interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					runRefresh(ctx)
				}
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("event", "http.listen").Str("addr", cfg.ListenAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Str("event", "shutdown.start").Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Str("event", "http.failed").Msg("API server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Str("event", "shutdown.failed").Msg("graceful shutdown failed")
	}
	logger.Info().Str("event", "shutdown.complete").Msg("stopped")
}
