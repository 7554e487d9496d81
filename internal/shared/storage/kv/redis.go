package kv

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options holds Redis connection configuration.
type Options struct {
	URL      string // redis://... or rediss://... for TLS
	Password string // overrides the password embedded in URL
}

// Connect builds a Redis client from a URL and verifies it with PING.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("redis: REDIS_URL not configured")
	}

	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if opts.Password != "" {
		parsed.Password = opts.Password
	}
	if parsed.TLSConfig != nil {
		parsed.TLSConfig.MinVersion = tls.VersionTLS12
	}
	parsed.DialTimeout = 5 * time.Second
	parsed.ReadTimeout = 3 * time.Second
	parsed.WriteTimeout = 3 * time.Second
	parsed.PoolSize = 10
	parsed.MinIdleConns = 2

	client := redis.NewClient(parsed)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}
	return client, nil
}
