package googlebooks

import (
	"context"
	"strings"
	"time"

	"github.com/lepinkainen/bookfinder/internal/cache"
)

// CachedClient serves repeated queries from the SQLite search cache.
type CachedClient struct {
	client *Client
	db     *cache.DB
	ttl    time.Duration
}

// NewCachedClient wraps client with db. A nil db disables caching.
func NewCachedClient(client *Client, db *cache.DB, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = cache.DefaultCacheTTL
	}
	return &CachedClient{client: client, db: db, ttl: ttl}
}

// HasAPIKey reports whether the wrapped client has a key.
func (c *CachedClient) HasAPIKey() bool {
	return c.client.HasAPIKey()
}

// Search returns cached volumes for query when fresh, otherwise asks the API.
// Empty results are cached for a shorter time than hits.
func (c *CachedClient) Search(ctx context.Context, query string) ([]Volume, error) {
	volumes, _, err := cache.GetOrFetch(c.db, cache.SearchCacheTable, cacheKey(query),
		func() ([]Volume, error) {
			return c.client.Search(ctx, query)
		},
		cache.SelectNegativeCacheTTL(c.ttl, func(v []Volume) bool {
			return len(v) == 0
		}))
	return volumes, err
}

// cacheKey folds case and whitespace so "Dune " and "dune" share an entry.
func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
