package data

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Source produces a snapshot of the picks history.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	String() string
}

// SourceOptions carries settings shared by every source kind.
type SourceOptions struct {
	Location      *time.Location
	PostgresQuery string
}

// OpenSource picks a Source implementation for ref:
//   - "postgres://..." or "postgresql://..." reads a PostgreSQL table
//   - anything else is a path to a JSON file
func OpenSource(ref string, opts SourceOptions) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultRecordsPath
	}
	if IsPostgresDSN(ref) {
		return NewPostgresSource(ref, opts.PostgresQuery, opts.Location)
	}
	return &FileSource{Path: ref, Location: opts.Location}, nil
}

// IsPostgresDSN reports whether ref is a PostgreSQL connection URL.
func IsPostgresDSN(ref string) bool {
	return strings.HasPrefix(ref, "postgres://") || strings.HasPrefix(ref, "postgresql://")
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
