package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// item 包装缓存数据和过期时间
type item struct {
	entry     *Entry
	expiresAt time.Time
}

// LRU is an in-process PageCache with per-entry expiry.
type LRU struct {
	lruCache *lru.Cache[string, item]
	now      func() time.Time
}

// NewLRU creates an LRU page cache holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LRU{lruCache: l, now: time.Now}, nil
}

func (c *LRU) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) {
	c.lruCache.Add(key, item{
		entry:     entry,
		expiresAt: c.now().Add(ttl),
	})
}

func (c *LRU) Get(_ context.Context, key string) (*Entry, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	// 检查过期
	if c.now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		return nil, false
	}
	return val.entry, true
}

func (c *LRU) Clear(_ context.Context) {
	c.lruCache.Purge()
}

var _ PageCache = (*LRU)(nil)
