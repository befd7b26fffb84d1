// Package redis owns the Redis client the notification dedup guard runs on.
// The client is process-lifetime state: constructed once in main, handed to
// the guard, closed on shutdown.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Config carries the connection settings for the dedup store.
type Config struct {
	Addr string
	DB   int
	// DialTimeout bounds both connection establishment and the startup ping.
	// Defaults to 5s.
	DialTimeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A dedup store that is down at startup is a hard failure: the notifier would
// silently lose its replay protection otherwise.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
