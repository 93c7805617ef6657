// Package social simulates the latest post from each of the firm's social
// accounts. Posts come from a fixed set; engagement numbers and relative
// times are randomized on every call.
package social

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bensonglobal/meridian/pkg/errors"
)

// DefaultDelay simulates network latency.
const DefaultDelay = 600 * time.Millisecond

// Update is the latest post of a platform.
type Update struct {
	Platform Platform `json:"platform"`
	Handle   string   `json:"handle"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Stats    string   `json:"stats"`
	Image    string   `json:"image,omitempty"`
}

// Source returns the latest update of a platform.
type Source interface {
	Latest(ctx context.Context, platform string) (Update, error)
}

// Feed is the simulated Source.
type Feed struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// Option configures a Feed.
type Option func(*Feed)

// WithSeed makes the feed deterministic.
func WithSeed(seed uint64) Option {
	return func(f *Feed) { f.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithDelay overrides the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(f *Feed) { f.delay = d }
}

// NewFeed creates a simulated feed.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{delay: DefaultDelay}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return f
}

// ParsePlatform validates a platform name.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := posts[p]; !ok {
		return "", errors.New(errors.ErrCodeUnknownPlatform, "unknown platform %q", s)
	}
	return p, nil
}

// Latest waits for the simulated latency and returns a random post.
// Unknown platforms get a LinkedIn post. It fails only if ctx ends first.
func (f *Feed) Latest(ctx context.Context, platform string) (Update, error) {
	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Update{}, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "social feed %s", platform)
		case <-t.C:
		}
	}

	variations, ok := posts[Platform(platform)]
	if !ok {
		variations = posts[LinkedIn]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	base := variations[f.rng.IntN(len(variations))]
	p := Platform(platform)
	if !ok {
		p = LinkedIn
	}
	return Update{
		Platform: p,
		Handle:   base.handle,
		Content:  base.content,
		Image:    base.image,
		Date:     times[f.rng.IntN(len(times))],
		Stats:    f.stats(platform),
	}, nil
}

// stats formats engagement numbers. Callers hold mu.
func (f *Feed) stats(platform string) string {
	r := func(lo, hi int) int { return lo + f.rng.IntN(hi-lo+1) }
	switch Platform(platform) {
	case LinkedIn:
		return fmt.Sprintf("%d likes • %d comments", r(500, 2500), r(20, 150))
	case Instagram:
		return fmt.Sprintf("%d likes", r(800, 6000))
	case Facebook:
		return fmt.Sprintf("%d likes • %d shares", r(200, 1500), r(5, 50))
	case X:
		return fmt.Sprintf("%d Retweets • %d Likes", r(20, 150), r(100, 800))
	case YouTube:
		return fmt.Sprintf("%dk views", r(2, 80))
	default:
		return fmt.Sprintf("%d likes", r(100, 1200))
	}
}
