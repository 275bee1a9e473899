package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores computed reports by key. Implementations must be safe for
// concurrent use. A nil Cache disables memoization.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the configured cache. BackendNone returns a nil Cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	switch strings.ToLower(opts.Backend) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(ttl), nil
	case BackendRedis:
		ro, err := redisOptions(opts)
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(ro)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", ro.Addr, err)
		}
		return NewRedis(client, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", opts.Backend)
	}
}

// redisOptions accepts RedisAddr as host:port or as a redis:// or rediss:// URL.
// An explicit RedisPassword overrides the one in the URL.
func redisOptions(opts Options) (*redis.Options, error) {
	if !strings.Contains(opts.RedisAddr, "://") {
		return &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}, nil
	}
	ro, err := redis.ParseURL(opts.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.RedisPassword != "" {
		ro.Password = opts.RedisPassword
	}
	return ro, nil
}

// Key builds a deterministic, fixed-size key from its parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
