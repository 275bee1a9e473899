package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bet-dashboard/internal/analysis"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadUnchecked_Overlay(t *testing.T) {
	path := writeConfig(t, `
data:
  source: postgres://tia@localhost/apostas
  timezone: UTC
analytics:
  profit_model: net
  loss_labels: [Perda, Red]
  range_mode: day
simulator:
  default_stake: 50
cache:
  backend: redis
  redis_addr: localhost:6379
  ttl: 15m
animation:
  timeout: 3s
`)
	c, err := LoadUnchecked(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Data.Source != "postgres://tia@localhost/apostas" || c.Data.Timezone != "UTC" {
		t.Errorf("data = %+v", c.Data)
	}
	if c.Simulator.DefaultStake != 50 || c.Simulator.MinStake != 1 {
		t.Errorf("simulator = %+v", c.Simulator)
	}
	if c.Cache.TTL != 15*time.Minute || c.Animation.Timeout != 3*time.Second {
		t.Errorf("durations = %v / %v", c.Cache.TTL, c.Animation.Timeout)
	}
	// Untouched sections keep their defaults.
	if c.Analytics.FixedStake != 100 || c.Export.Path != "apostas_filtradas.csv" {
		t.Errorf("defaults lost: %+v %+v", c.Analytics, c.Export)
	}

	opts := c.AnalysisOptions()
	if opts.ProfitModel != analysis.ProfitNet || len(opts.LossLabels) != 2 {
		t.Errorf("AnalysisOptions = %+v", opts)
	}
	if c.RangeMode() != analysis.RangeDay {
		t.Errorf("RangeMode = %q", c.RangeMode())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Analytics.DefaultMinEV != 10 {
		t.Errorf("DefaultMinEV = %v", c.Analytics.DefaultMinEV)
	}
	if c.RangeMode() != analysis.RangeLiteral {
		t.Errorf("RangeMode = %q, want literal", c.RangeMode())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "data: [")); err == nil {
		t.Error("expected error for bad yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"API_PORT":      "9090",
		"API_ENV":       "production",
		"DATA_SOURCE":   "/srv/apostas_reais.json",
		"EXPORT_PATH":   "/tmp/out.csv",
		"CACHE_BACKEND": "redis",
		"REDIS_URL":     "redis:6379",
	}
	c := Default()
	c.ApplyEnv(func(k string) string { return env[k] })

	if c.Server.Port != "9090" || c.Server.Env != "production" {
		t.Errorf("server = %+v", c.Server)
	}
	if c.Data.Source != "/srv/apostas_reais.json" || c.Export.Path != "/tmp/out.csv" {
		t.Errorf("paths = %s / %s", c.Data.Source, c.Export.Path)
	}
	if c.Cache.Backend != "redis" || c.Cache.RedisAddr != "redis:6379" {
		t.Errorf("cache = %+v", c.Cache)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestApplyEnv_RedisURL(t *testing.T) {
	c := Default()
	c.ApplyEnv(func(k string) string {
		return map[string]string{"CACHE_BACKEND": "redis", "REDIS_URL": "redis://:secret@cache:6380/2"}[k]
	})
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := c.CacheOptions().RedisAddr; got != "redis://:secret@cache:6380/2" {
		t.Errorf("RedisAddr = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad timezone", func(c *Config) { c.Data.Timezone = "Mars/Olympus" }, "data.timezone"},
		{"zero fixed stake", func(c *Config) { c.Analytics.FixedStake = 0 }, "fixed stake"},
		{"unknown profit model", func(c *Config) { c.Analytics.ProfitModel = "gross" }, "profit model"},
		{"unknown range mode", func(c *Config) { c.Analytics.RangeMode = "week" }, "range_mode"},
		{"min ev above max", func(c *Config) { c.Analytics.DefaultMinEV = 60 }, "default_min_ev"},
		{"zero min stake", func(c *Config) { c.Simulator.MinStake = 0 }, "min_stake"},
		{"default below min", func(c *Config) { c.Simulator.DefaultStake = 0.5 }, "default_stake"},
		{"zero step", func(c *Config) { c.Simulator.Step = 0 }, "step"},
		{"empty export path", func(c *Config) { c.Export.Path = " " }, "export.path"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, "redis_addr"},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSourceOptions(t *testing.T) {
	c := Default()
	c.Data.PostgresQuery = "SELECT 1"
	opts := c.SourceOptions()
	if opts.Location == nil || opts.Location.String() != "America/Sao_Paulo" {
		t.Errorf("Location = %v", opts.Location)
	}
	if opts.PostgresQuery != "SELECT 1" {
		t.Errorf("PostgresQuery = %q", opts.PostgresQuery)
	}
}
