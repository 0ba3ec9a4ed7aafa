// Package cache holds short-lived JSON values such as dashboard counts.
// Redis is used when REDIS_ADDR is set; otherwise every lookup misses.
package cache

import (
	"context"
	"time"
)

// KeyPrefix namespaces every key the service writes.
const KeyPrefix = "naat:"

// Cache stores JSON-encodable values.
type Cache interface {
	// Get decodes the value under key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Key joins parts under KeyPrefix.
func Key(parts ...string) string {
	key := KeyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Close() error { return nil }
