package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/score"
)

const (
	PlayerBuiltin = "builtin"
	PlayerCmus    = "cmus"
)

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // folders scanned for music
	Player         string   `koanf:"player"`          // "builtin" or "cmus"
	Database       string   `koanf:"database"`        // empty means the XDG data dir
	Notifications  *bool    `koanf:"notifications"`   // desktop notification on score change (default: true)

	Score ScoreConfig `koanf:"score"`
	Queue QueueConfig `koanf:"queue"`
	Skip  SkipConfig  `koanf:"skip"`
	Cmus  CmusConfig  `koanf:"cmus"`
	Log   LogConfig   `koanf:"log"`
}

// ScoreConfig bounds per-track scores. Pointers tell "unset" from 0.
type ScoreConfig struct {
	Min     *int `koanf:"min"`     // default: -1
	Max     *int `koanf:"max"`     // default: 15
	Default *int `koanf:"default"` // default: 2
}

// QueueConfig controls lookahead maintenance.
type QueueConfig struct {
	Lookahead       int     `koanf:"lookahead"`        // entries kept ahead of the cursor (default: 20)
	RetryBudget     *int    `koanf:"retry_budget"`     // duplicate rejections per fill (default: 10)
	AvoidDuplicates *bool   `koanf:"avoid_duplicates"` // default: true
	RefillOnRemove  bool    `koanf:"refill_on_remove"`
	UniformRatio    float64 `koanf:"uniform_ratio"` // share of picks ignoring scores (0-1, default: 0)
}

// SkipConfig controls the quick-skip penalty.
type SkipConfig struct {
	Enabled     *bool `koanf:"enabled"`      // default: true
	ThresholdMs int   `koanf:"threshold_ms"` // default: 5000
	Penalty     int   `koanf:"penalty"`      // default: -1
}

// CmusConfig holds the cmus hook settings.
type CmusConfig struct {
	MaxQueue int    `koanf:"max_queue"` // cmus queue size that stops enqueueing (default: 20)
	Remote   string `koanf:"remote"`    // cmus-remote binary (default: "cmus-remote")
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // empty means the XDG state dir
}

// Load reads the default config files. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files in order; later files win.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	cfg.Database = expandPath(cfg.Database)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Player = strings.ToLower(strings.TrimSpace(cfg.Player))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tilt/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tilt", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// UsesCmus reports whether tracks are played by an attached cmus.
func (c *Config) UsesCmus() bool {
	return c.Player == PlayerCmus
}

// NotificationsEnabled reports whether score notifications are shown.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// GetLibrarySources returns the scan roots, defaulting to ~/Music.
func (c *Config) GetLibrarySources() []string {
	if len(c.LibrarySources) > 0 {
		return c.LibrarySources
	}
	return []string{expandPath("~/Music")}
}

// GetScoreLimits returns the score range with defaults applied.
// An inconsistent range falls back to the defaults entirely.
func (c *Config) GetScoreLimits() score.Limits {
	l := score.DefaultLimits()
	if c.Score.Min != nil {
		l.Min = *c.Score.Min
	}
	if c.Score.Max != nil {
		l.Max = *c.Score.Max
	}
	if c.Score.Default != nil {
		l.Default = *c.Score.Default
	}
	if !l.Valid() {
		return score.DefaultLimits()
	}
	return l
}

// GetFillPolicy returns the queue fill policy with defaults applied.
func (c *Config) GetFillPolicy() playlist.FillPolicy {
	p := playlist.DefaultFillPolicy()
	if c.Queue.Lookahead > 0 && c.Queue.Lookahead <= 1000 {
		p.Lookahead = c.Queue.Lookahead
	}
	if c.Queue.RetryBudget != nil && *c.Queue.RetryBudget >= 0 {
		p.RetryBudget = *c.Queue.RetryBudget
	}
	if c.Queue.AvoidDuplicates != nil {
		p.AvoidDuplicates = *c.Queue.AvoidDuplicates
	}
	p.RefillOnRemove = c.Queue.RefillOnRemove
	return p
}

// GetUniformRatio returns the uniform pick share clamped to [0, 1].
func (c *Config) GetUniformRatio() float64 {
	return min(max(c.Queue.UniformRatio, 0), 1)
}

// GetSkipPolicy returns the quick-skip policy with defaults applied.
func (c *Config) GetSkipPolicy() score.SkipPolicy {
	p := score.DefaultSkipPolicy()
	if c.Skip.Enabled != nil {
		p.Enabled = *c.Skip.Enabled
	}
	if c.Skip.ThresholdMs > 0 {
		p.Threshold = time.Duration(c.Skip.ThresholdMs) * time.Millisecond
	}
	if c.Skip.Penalty < 0 {
		p.Penalty = c.Skip.Penalty
	}
	return p
}

// GetCmusConfig returns the cmus settings with defaults applied.
func (c *Config) GetCmusConfig() CmusConfig {
	cfg := c.Cmus
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = 20
	}
	if cfg.Remote == "" {
		cfg.Remote = "cmus-remote"
	}
	return cfg
}

// GetLogConfig returns the log settings with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	return cfg
}
