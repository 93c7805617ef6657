package cache

import (
	"context"
	"strings"
	"time"

	"github.com/bensonglobal/meridian/pkg/observability"
)

// instrumented reports hits, misses and writes to the cache hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so every operation emits observability events. The key
// type reported is the part of the key before the first colon.
func Instrument(c Cache) Cache {
	if c == nil {
		return nil
	}
	return instrumented{Cache: c}
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func keyType(key string) string {
	// Skip a scope prefix like "meridian:staging:" by taking the last
	// colon-separated segment that precedes the hash.
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}

// GetOrCompute returns the cached value for key, or calls fn, stores its
// result for ttl, and returns it. Cache failures degrade to a miss; only fn's
// error is returned.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, fn func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok, gerr := c.Get(ctx, key); gerr == nil && ok {
		return data, true, nil
	}
	data, err = fn()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
