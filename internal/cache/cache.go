// Package cache stores rendered page responses for a fixed time window.
package cache

import (
	"context"
	"time"
)

// Entry is a cached HTTP response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache is the storage behind the page cache middleware.
type PageCache interface {
	// Get returns the entry for key, or false when absent or expired.
	Get(ctx context.Context, key string) (*Entry, bool)
	// Set stores entry under key for ttl.
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration)
	// Clear drops every entry.
	Clear(ctx context.Context)
}
