package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/animation"
	"bet-dashboard/internal/cache"
	"bet-dashboard/internal/daily"
	"bet-dashboard/internal/data"
	"bet-dashboard/internal/export"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Export    ExportConfig    `yaml:"export"`
	Animation AnimationConfig `yaml:"animation"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

type DataConfig struct {
	// Source is a JSON file path or a postgres:// DSN.
	Source        string `yaml:"source"`
	Timezone      string `yaml:"timezone"`
	PostgresQuery string `yaml:"postgres_query"`
}

type AnalyticsConfig struct {
	FixedStake   float64  `yaml:"fixed_stake"`
	DefaultMinEV float64  `yaml:"default_min_ev"`
	MaxMinEV     float64  `yaml:"max_min_ev"`
	WonLabel     string   `yaml:"won_label"`
	LossLabels   []string `yaml:"loss_labels"`
	ProfitModel  string   `yaml:"profit_model"`
	// RangeMode is "literal" (timestamps against midnight bounds) or "day".
	RangeMode string `yaml:"range_mode"`
}

type SimulatorConfig struct {
	DefaultStake float64 `yaml:"default_stake"`
	MinStake     float64 `yaml:"min_stake"`
	Step         float64 `yaml:"step"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type AnimationConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	// RedisAddr is host:port or a redis:// URL.
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	Env       string `yaml:"env"`
	StaticDir string `yaml:"static_dir"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	opts := analysis.DefaultOptions()
	return &Config{
		Data: DataConfig{
			Source:   data.DefaultRecordsPath,
			Timezone: "America/Sao_Paulo",
		},
		Analytics: AnalyticsConfig{
			FixedStake:   opts.FixedStake,
			DefaultMinEV: analysis.DefaultMinEV,
			MaxMinEV:     50,
			WonLabel:     opts.WonLabel,
			LossLabels:   opts.LossLabels,
			ProfitModel:  string(opts.ProfitModel),
			RangeMode:    string(analysis.RangeLiteral),
		},
		Simulator: SimulatorConfig{
			DefaultStake: daily.DefaultStake,
			MinStake:     daily.MinStake,
			Step:         daily.StakeStep,
		},
		Export: ExportConfig{Path: export.DefaultPath},
		Animation: AnimationConfig{
			Enabled: true,
			URL:     animation.DefaultURL,
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: cache.BackendMemory,
			TTL:     time.Hour,
		},
		Server: ServerConfig{
			Port:      "8080",
			Env:       "development",
			StaticDir: "./web/dist",
			LogLevel:  "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads path over the defaults without env overrides or validation.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := getenv("DATA_SOURCE"); v != "" {
		c.Data.Source = v
	}
	if v := getenv("EXPORT_PATH"); v != "" {
		c.Export.Path = v
	}
	if v := getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("REDIS_URL"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("data.timezone invalid: %w", err)
	}
	if err := c.AnalysisOptions().Validate(); err != nil {
		return fmt.Errorf("analytics config invalid: %w", err)
	}
	if _, err := analysis.ParseRangeMode(c.Analytics.RangeMode); err != nil {
		return fmt.Errorf("analytics.range_mode invalid: %w", err)
	}
	if c.Analytics.DefaultMinEV < 0 || c.Analytics.DefaultMinEV > c.Analytics.MaxMinEV {
		return fmt.Errorf("analytics.default_min_ev must be within [0, %v]", c.Analytics.MaxMinEV)
	}
	s := c.Simulator
	if !(s.MinStake > 0) {
		return errors.New("simulator.min_stake must be > 0")
	}
	if s.DefaultStake < s.MinStake {
		return errors.New("simulator.default_stake must be >= simulator.min_stake")
	}
	if !(s.Step > 0) {
		return errors.New("simulator.step must be > 0")
	}
	if strings.TrimSpace(c.Export.Path) == "" {
		return errors.New("export.path is required")
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendNone, cache.BackendMemory:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend %q is not one of none, memory, redis", c.Cache.Backend)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	return nil
}

// Location resolves data.timezone. Empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Data.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Data.Timezone)
}

// AnalysisOptions maps the analytics section onto aggregation options.
func (c *Config) AnalysisOptions() analysis.Options {
	pm, err := analysis.ParseProfitModel(c.Analytics.ProfitModel)
	if err != nil {
		// Keep the raw value so Validate reports it.
		pm = analysis.ProfitModel(c.Analytics.ProfitModel)
	}
	return analysis.Options{
		FixedStake:  c.Analytics.FixedStake,
		WonLabel:    c.Analytics.WonLabel,
		LossLabels:  c.Analytics.LossLabels,
		ProfitModel: pm,
	}
}

// RangeMode returns the configured date-range comparison, RangeLiteral when unset or invalid.
func (c *Config) RangeMode() analysis.RangeMode {
	m, err := analysis.ParseRangeMode(c.Analytics.RangeMode)
	if err != nil {
		return analysis.RangeLiteral
	}
	return m
}

// SourceOptions maps the data section onto record source options.
func (c *Config) SourceOptions() data.SourceOptions {
	loc, err := c.Location()
	if err != nil {
		loc = time.UTC
	}
	return data.SourceOptions{Location: loc, PostgresQuery: c.Data.PostgresQuery}
}

// CacheOptions maps the cache section onto backend options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:       c.Cache.Backend,
		TTL:           c.Cache.TTL,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
	}
}
