// Package app wires configuration into the loaded dataset and engine shared
// by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/animation"
	"bet-dashboard/internal/cache"
	"bet-dashboard/internal/config"
	"bet-dashboard/internal/data"
	"bet-dashboard/internal/logging"
)

// LoadDataset opens the configured source and reads one snapshot from it.
func LoadDataset(ctx context.Context, cfg *config.Config) (*data.Dataset, error) {
	src, err := data.OpenSource(cfg.Data.Source, cfg.SourceOptions())
	if err != nil {
		return nil, fmt.Errorf("open record source: %w", err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	log := logging.For("data").WithField("source", src.String())
	ds, err := src.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("record load failed")
		return nil, err
	}
	log.WithField("records", ds.Len()).WithField("fingerprint", ds.Fingerprint).Info("records loaded")
	return ds, nil
}

// OpenCache builds the configured report cache. The returned close function
// is never nil.
func OpenCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	c, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {}
	if closer, ok := c.(io.Closer); ok {
		closeFn = func() { closer.Close() }
	}
	return c, closeFn, nil
}

// NewEngine binds ds to the configured aggregation options and cache.
func NewEngine(cfg *config.Config, ds *data.Dataset, c cache.Cache) *analysis.Engine {
	return analysis.NewEngine(ds, cfg.AnalysisOptions(), c)
}

// NewAnimationFetcher returns the configured fetcher, or Noop when disabled.
func NewAnimationFetcher(cfg *config.Config, c cache.Cache) animation.Fetcher {
	if !cfg.Animation.Enabled {
		return animation.Noop{}
	}
	f := animation.NewHTTPFetcher(cfg.Animation.URL, cfg.Animation.Timeout)
	if c == nil {
		return f
	}
	return &animation.Cached{Fetcher: f, Cache: c, Key: f.URL}
}
