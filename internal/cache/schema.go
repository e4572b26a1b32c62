package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency.
// Timestamps are unix seconds so expiry checks are plain integer comparisons.

// SearchCacheTable holds Google Books volume lists keyed by normalized query.
const SearchCacheTable = "search_cache"

// SearchCacheSchema defines the schema for the Google Books search cache
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_expires_at ON search_cache(expires_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	SearchCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	SearchCacheTable: true,
}
