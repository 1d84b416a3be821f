package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a PageCache shared between processes. Errors are logged and
// treated as misses so a broken Redis only costs a re-render.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedisClient builds a client from a plain host:port or a redis:// URL.
func NewRedisClient(raw string) (*redis.Client, error) {
	opts, err := redisOptions(raw)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func redisOptions(raw string) (*redis.Options, error) {
	if strings.Contains(raw, "://") {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: raw}, nil
}

// NewRedis wraps client; every key is stored under prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (c *Redis) Get(ctx context.Context, key string) (*Entry, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "page cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.WarnContext(ctx, "page cache entry corrupted", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return &entry, true
}

func (c *Redis) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) {
	raw, err := json.Marshal(entry)
	if err != nil {
		slog.WarnContext(ctx, "page cache encode failed", slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "page cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *Redis) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.WarnContext(ctx, "page cache clear failed", slog.Any("error", err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		slog.WarnContext(ctx, "page cache scan failed", slog.Any("error", err))
	}
}

var _ PageCache = (*Redis)(nil)
