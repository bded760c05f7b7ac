// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jcastrom/dedupetv/internal/dedup"
	"github.com/jcastrom/dedupetv/internal/filter"
	"github.com/jcastrom/dedupetv/internal/ingest"
)

// Duration wraps time.Duration so YAML files can use Go duration syntax
// such as "15m" or "1h30m".
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// SourceConfig describes one channel source to ingest.
type SourceConfig struct {
	Tag      string `yaml:"tag"`
	Path     string `yaml:"path"`
	Kind     string `yaml:"kind"`     // "m3u" or "csv"; guessed from extension when empty
	Encoding string `yaml:"encoding"` // "utf-8" (default), "latin1", "windows-1252"
}

// DedupConfig mirrors the engine options in a YAML/env friendly shape.
type DedupConfig struct {
	Criteria               string   `yaml:"criteria"`
	Strategy               string   `yaml:"strategy"`
	NameThreshold          float64  `yaml:"nameThreshold"`
	URLThreshold           float64  `yaml:"urlThreshold"`
	EnableHDUpgrade        bool     `yaml:"enableHdUpgrade"`
	PreserveSourcePriority bool     `yaml:"preserveSourcePriority"`
	SourcePriority         []string `yaml:"sourcePriority"`
	EnableMetrics          bool     `yaml:"enableMetrics"`
}

// Config is the full daemon configuration.
type Config struct {
	DataDir          string         `yaml:"dataDir"`
	ListenAddr       string         `yaml:"listen"`
	LogLevel         string         `yaml:"logLevel"`
	PlaylistFilename string         `yaml:"playlistFilename"`
	WatchSources     bool           `yaml:"watchSources"`
	RefreshInterval  Duration       `yaml:"refreshInterval"`
	Sources          []SourceConfig `yaml:"sources"`
	Dedup            DedupConfig    `yaml:"dedup"`
	Filter           filter.Rules   `yaml:"filter"`
}

// Default returns the built-in configuration before file and environment
// overrides are applied.
func Default() Config {
	engine := dedup.DefaultConfig()
	return Config{
		DataDir:          "/data",
		ListenAddr:       ":8080",
		LogLevel:         "info",
		PlaylistFilename: "playlist.m3u",
		WatchSources:     false,
		RefreshInterval:  0,
		Dedup: DedupConfig{
			Criteria:               engine.Criteria.String(),
			Strategy:               engine.Strategy.String(),
			NameThreshold:          engine.NameSimilarityThreshold,
			URLThreshold:           engine.URLSimilarityThreshold,
			EnableHDUpgrade:        engine.EnableHDUpgrade,
			PreserveSourcePriority: engine.PreserveSourcePriority,
			SourcePriority:         engine.SourcePriority,
			EnableMetrics:          engine.EnableMetrics,
		},
	}
}

// Load builds the configuration with precedence: environment variables
// override the YAML file, which overrides the defaults. An empty path skips
// the file stage; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = ParseString("DTV_DATA", c.DataDir)
	c.ListenAddr = ParseString("DTV_LISTEN", c.ListenAddr)
	c.LogLevel = ParseString("DTV_LOG_LEVEL", c.LogLevel)
	c.PlaylistFilename = ParseString("DTV_PLAYLIST_FILENAME", c.PlaylistFilename)
	c.WatchSources = ParseBool("DTV_WATCH", c.WatchSources)
	c.RefreshInterval = Duration(ParseDuration("DTV_REFRESH_INTERVAL", c.RefreshInterval.Std()))

	c.Dedup.Criteria = ParseString("DTV_DEDUP_CRITERIA", c.Dedup.Criteria)
	c.Dedup.Strategy = ParseString("DTV_DEDUP_STRATEGY", c.Dedup.Strategy)
	c.Dedup.NameThreshold = ParseFloat("DTV_NAME_THRESHOLD", c.Dedup.NameThreshold)
	c.Dedup.URLThreshold = ParseFloat("DTV_URL_THRESHOLD", c.Dedup.URLThreshold)
	c.Dedup.EnableHDUpgrade = ParseBool("DTV_HD_UPGRADE", c.Dedup.EnableHDUpgrade)
	c.Dedup.PreserveSourcePriority = ParseBool("DTV_PRESERVE_SOURCE_PRIORITY", c.Dedup.PreserveSourcePriority)
	c.Dedup.SourcePriority = ParseStringList("DTV_SOURCE_PRIORITY", c.Dedup.SourcePriority)
	c.Dedup.EnableMetrics = ParseBool("DTV_DEDUP_METRICS", c.Dedup.EnableMetrics)
}

// EngineConfig converts the YAML-facing dedup settings into the engine's
// native configuration.
func (c *Config) EngineConfig() (dedup.Config, error) {
	criteria, err := dedup.ParseCriteria(c.Dedup.Criteria)
	if err != nil {
		return dedup.Config{}, err
	}
	strategy, err := dedup.ParseStrategy(c.Dedup.Strategy)
	if err != nil {
		return dedup.Config{}, err
	}
	ec := dedup.Config{
		Criteria:                criteria,
		Strategy:                strategy,
		NameSimilarityThreshold: c.Dedup.NameThreshold,
		URLSimilarityThreshold:  c.Dedup.URLThreshold,
		EnableHDUpgrade:         c.Dedup.EnableHDUpgrade,
		PreserveSourcePriority:  c.Dedup.PreserveSourcePriority,
		SourcePriority:          c.Dedup.SourcePriority,
		EnableMetrics:           c.Dedup.EnableMetrics,
	}
	if err := ec.Validate(); err != nil {
		return dedup.Config{}, err
	}
	return ec, nil
}

// IngestSources converts the configured sources into ingest descriptors.
func (c *Config) IngestSources() ([]ingest.Source, error) {
	out := make([]ingest.Source, 0, len(c.Sources))
	for i, sc := range c.Sources {
		if sc.Path == "" {
			return nil, fmt.Errorf("source %d: path is required", i)
		}
		tag := sc.Tag
		if tag == "" {
			tag = fmt.Sprintf("source%d", i+1)
		}
		kind, err := ingest.ParseKind(sc.Kind, sc.Path)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", tag, err)
		}
		out = append(out, ingest.Source{
			Tag:      tag,
			Path:     sc.Path,
			Kind:     kind,
			Encoding: sc.Encoding,
		})
	}
	return out, nil
}

// Validate checks the configuration for structural errors. Engine settings
// are validated separately through EngineConfig.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.PlaylistFilename == "" {
		return fmt.Errorf("playlistFilename is required")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refreshInterval must not be negative")
	}
	if _, err := c.EngineConfig(); err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if _, err := c.IngestSources(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Sources))
	for _, sc := range c.Sources {
		if sc.Tag != "" && seen[sc.Tag] {
			return fmt.Errorf("duplicate source tag %q", sc.Tag)
		}
		seen[sc.Tag] = true
	}
	return nil
}
