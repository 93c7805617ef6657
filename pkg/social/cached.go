package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/cache"
)

// Cached serves updates from a cache, refreshing from the source after ttl.
// Cache failures are logged and fall through to the source.
type Cached struct {
	src    Source
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps src. A nil keyer uses the default.
func NewCached(src Source, c cache.Cache, keyer cache.Keyer, ttl time.Duration, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{src: src, cache: c, keyer: keyer, ttl: ttl, logger: logger}
}

// Latest returns the cached update for platform, or fetches and stores one.
func (c *Cached) Latest(ctx context.Context, platform string) (Update, error) {
	key := c.keyer.SocialKey(platform)
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("social cache read failed", "platform", platform, "err", err)
	}
	if ok {
		var u Update
		if err := json.Unmarshal(data, &u); err == nil {
			return u, nil
		}
	}

	u, err := c.src.Latest(ctx, platform)
	if err != nil {
		return Update{}, err
	}
	if data, err := json.Marshal(u); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("social cache write failed", "platform", platform, "err", err)
		}
	}
	return u, nil
}
