package details

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mamadbah2/Nexus/internal/logger"
)

const (
	DefaultSize = 512
	DefaultTTL  = 5 * time.Minute
)

// Fetcher resolves one id against a detail endpoint.
type Fetcher[T any] func(ctx context.Context, id string) (T, error)

// Cache is the bounded, expiring detail cache views use to join id-only
// references (productId, userId) against their display records. Entries
// evict by LRU once the cache is full and expire after the TTL, so a record
// edited server-side is re-fetched on the next view open after expiry.
type Cache[T any] struct {
	fetch Fetcher[T]
	lru   *expirable.LRU[string, T]
	group singleflight.Group
}

func NewCache[T any](fetch Fetcher[T], size int, ttl time.Duration) *Cache[T] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache[T]{
		fetch: fetch,
		lru:   expirable.NewLRU[string, T](size, nil, ttl),
	}
}

// Get returns the cached record for id, if resolved.
func (c *Cache[T]) Get(id string) (T, bool) {
	return c.lru.Get(id)
}

// LoadAll resolves every id not already cached: one fetch per distinct id,
// fanned out concurrently, joined before returning. A failed lookup is
// dropped and its id simply stays unresolved; the view shows a placeholder.
// Concurrent LoadAll calls for overlapping ids collapse to a single fetch
// per id.
func (c *Cache[T]) LoadAll(ctx context.Context, ids []string) {
	seen := make(map[string]struct{}, len(ids))
	var wg sync.WaitGroup

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := c.lru.Get(id); ok {
			continue
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			v, err, _ := c.group.Do(id, func() (interface{}, error) {
				return c.fetch(ctx, id)
			})
			if err != nil {
				logger.FromCtx(ctx).Debug("detail lookup failed",
					zap.String("id", id),
					zap.Error(err),
				)
				return
			}
			c.lru.Add(id, v.(T))
		}(id)
	}

	wg.Wait()
}

// Len reports how many records are currently cached.
func (c *Cache[T]) Len() int {
	return c.lru.Len()
}
