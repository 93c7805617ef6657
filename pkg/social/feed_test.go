package social

import (
	"context"
	"io"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/errors"
)

func TestLatestPerPlatform(t *testing.T) {
	patterns := map[Platform]*regexp.Regexp{
		LinkedIn:  regexp.MustCompile(`^\d+ likes • \d+ comments$`),
		Instagram: regexp.MustCompile(`^\d+ likes$`),
		Facebook:  regexp.MustCompile(`^\d+ likes • \d+ shares$`),
		X:         regexp.MustCompile(`^\d+ Retweets • \d+ Likes$`),
		YouTube:   regexp.MustCompile(`^\d+k views$`),
	}
	f := NewFeed(WithSeed(1), WithDelay(0))
	for _, p := range Platforms() {
		t.Run(string(p), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				u, err := f.Latest(context.Background(), string(p))
				if err != nil {
					t.Fatal(err)
				}
				if u.Platform != p {
					t.Errorf("Platform = %q, want %q", u.Platform, p)
				}
				if !patterns[p].MatchString(u.Stats) {
					t.Errorf("Stats = %q does not match %s", u.Stats, patterns[p])
				}
				if !slices.Contains(times, u.Date) {
					t.Errorf("Date = %q not a known relative time", u.Date)
				}
				if u.Content == "" || u.Handle == "" {
					t.Errorf("empty post: %+v", u)
				}
			}
		})
	}
}

func TestLatestUnknownFallsBackToLinkedIn(t *testing.T) {
	f := NewFeed(WithSeed(2), WithDelay(0))
	u, err := f.Latest(context.Background(), "myspace")
	if err != nil {
		t.Fatal(err)
	}
	if u.Platform != LinkedIn || u.Handle != "Benson Global Inc." {
		t.Errorf("fallback = %+v", u)
	}
	if !regexp.MustCompile(`^\d+ likes$`).MatchString(u.Stats) {
		t.Errorf("Stats = %q, want generic likes", u.Stats)
	}
}

func TestLatestSeedDeterminism(t *testing.T) {
	a := NewFeed(WithSeed(9), WithDelay(0))
	b := NewFeed(WithSeed(9), WithDelay(0))
	for i := 0; i < 5; i++ {
		ua, _ := a.Latest(context.Background(), "x")
		ub, _ := b.Latest(context.Background(), "x")
		if diff := cmp.Diff(ua, ub); diff != "" {
			t.Fatalf("seeded feeds diverged:\n%s", diff)
		}
	}
}

func TestLatestHonorsContext(t *testing.T) {
	f := NewFeed(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Latest(ctx, "linkedin"); !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("err = %v, want TIMEOUT", err)
	}
}

func TestLatestDelay(t *testing.T) {
	f := NewFeed(WithDelay(30 * time.Millisecond))
	start := time.Now()
	_, _ = f.Latest(context.Background(), "x")
	if time.Since(start) < 30*time.Millisecond {
		t.Error("Latest returned before the simulated delay")
	}
}

func TestParsePlatform(t *testing.T) {
	if p, err := ParsePlatform("youtube"); err != nil || p != YouTube {
		t.Errorf("ParsePlatform(youtube) = %q, %v", p, err)
	}
	if _, err := ParsePlatform("myspace"); !errors.Is(err, errors.ErrCodeUnknownPlatform) {
		t.Errorf("ParsePlatform(myspace) err = %v", err)
	}
}

type countingSource struct {
	calls int
	feed  *Feed
}

func (c *countingSource) Latest(ctx context.Context, p string) (Update, error) {
	c.calls++
	return c.feed.Latest(ctx, p)
}

func TestCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := &countingSource{feed: NewFeed(WithSeed(4), WithDelay(0))}
	c := NewCached(src, fc, nil, time.Hour, log.New(io.Discard))
	ctx := context.Background()

	first, err := c.Latest(ctx, "instagram")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := c.Latest(ctx, "instagram")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached update differs:\n%s", diff)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}

	_, _ = c.Latest(ctx, "x")
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestCachedNullCacheAlwaysFetches(t *testing.T) {
	src := &countingSource{feed: NewFeed(WithDelay(0))}
	c := NewCached(src, cache.NewNullCache(), nil, time.Hour, log.New(io.Discard))
	for i := 0; i < 3; i++ {
		_, _ = c.Latest(context.Background(), "facebook")
	}
	if src.calls != 3 {
		t.Errorf("source calls = %d, want 3", src.calls)
	}
}
