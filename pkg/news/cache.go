package news

import (
	"sync/atomic"
	"time"

	"github.com/umputun/finfeed/pkg/domain"
)

// DefaultTTL is how long a successfully fetched feed stays valid
const DefaultTTL = 5 * time.Minute

// CacheEntry is a snapshot stored in the cache slot, never modified after Put
type CacheEntry struct {
	Feed              []domain.Article
	CapturedAt        time.Time
	RateLimited       bool
	RateLimitClearsAt time.Time
}

// Cache keeps a single feed for all queries. The slot is replaced with one atomic store,
// so concurrent readers see either the old or the new entry.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	entry atomic.Pointer[CacheEntry]
}

// NewCache makes an empty cache, non-positive ttl means DefaultTTL
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// IsValid reports whether the stored entry can be served
func (c *Cache) IsValid() bool {
	_, ok := c.Get()
	return ok
}

// Get returns the stored entry if it is still valid
func (c *Cache) Get() (CacheEntry, bool) {
	e := c.entry.Load()
	if e == nil {
		return CacheEntry{}, false
	}
	now := c.now()
	if now.Sub(e.CapturedAt) < c.ttl {
		return *e, true
	}
	if e.RateLimited && now.Before(e.RateLimitClearsAt) {
		return *e, true
	}
	return CacheEntry{}, false
}

// Put stores a fresh feed and clears any rate-limit cooldown
func (c *Cache) Put(feed []domain.Article) {
	c.entry.Store(&CacheEntry{Feed: feed, CapturedAt: c.now()})
}

// PutRateLimited stores a fallback feed served while the provider cools down
func (c *Cache) PutRateLimited(feed []domain.Article, cooldown time.Duration) {
	now := c.now()
	c.entry.Store(&CacheEntry{Feed: feed, CapturedAt: now, RateLimited: true, RateLimitClearsAt: now.Add(cooldown)})
}

// Reset drops the stored entry
func (c *Cache) Reset() {
	c.entry.Store(nil)
}
