package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Cache fetches each partition at most once per successful load and shares
// the result with every caller. Concurrent callers for the same partition
// join a single in-flight fetch. Failed fetches are not cached, so the next
// call retries.
//
// A caller whose context ends stops waiting, but the shared fetch keeps
// running and its result is still cached.
type Cache struct {
	src    Source
	group  singleflight.Group
	logger zerolog.Logger

	mu       sync.Mutex
	resolved map[Partition][]lecture.Lecture
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the cache logger.
func WithLogger(l zerolog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l
	}
}

// NewCache creates an empty cache in front of src.
func NewCache(src Source, opts ...CacheOption) *Cache {
	c := &Cache{
		src:      src,
		logger:   zerolog.Nop(),
		resolved: make(map[Partition][]lecture.Lecture),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) lookup(p Partition) ([]lecture.Lecture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lectures, ok := c.resolved[p]
	return lectures, ok
}

// Fetch returns the lectures of one partition. The returned slice is shared
// between callers and must not be modified.
func (c *Cache) Fetch(ctx context.Context, p Partition) ([]lecture.Lecture, error) {
	if lectures, ok := c.lookup(p); ok {
		return lectures, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(p), func() (any, error) {
		// A fetch may have completed between lookup and joining the group.
		if lectures, ok := c.lookup(p); ok {
			return lectures, nil
		}

		c.logger.Debug().Str("partition", string(p)).Msg("fetching catalog partition")
		lectures, err := c.src.Fetch(fetchCtx, p)
		if err != nil {
			c.logger.Warn().Err(err).Str("partition", string(p)).Msg("catalog fetch failed")
			return nil, err
		}
		if lectures == nil {
			lectures = []lecture.Lecture{}
		}

		c.mu.Lock()
		c.resolved[p] = lectures
		c.mu.Unlock()
		c.logger.Info().Str("partition", string(p)).Int("lectures", len(lectures)).Msg("catalog partition loaded")
		return lectures, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("fetching %s: %w", p, res.Err)
		}
		if res.Shared {
			c.logger.Debug().Str("partition", string(p)).Msg("joined in-flight catalog fetch")
		}
		return res.Val.([]lecture.Lecture), nil
	}
}

// FetchAll loads both partitions concurrently and returns them
// concatenated, majors first.
func (c *Cache) FetchAll(ctx context.Context) ([]lecture.Lecture, error) {
	results := make([][]lecture.Lecture, len(Partitions))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range Partitions {
		g.Go(func() error {
			lectures, err := c.Fetch(gctx, p)
			if err != nil {
				return err
			}
			results[i] = lectures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// Cached reports whether a partition has been loaded.
func (c *Cache) Cached(p Partition) bool {
	_, ok := c.lookup(p)
	return ok
}

// Reset drops every loaded partition. In-flight fetches still complete and
// repopulate the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.resolved)
}
