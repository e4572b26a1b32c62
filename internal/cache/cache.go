// Package cache stores API responses in SQLite so repeated searches skip the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

const (
	// DefaultCacheTTL is the default time-to-live for cached search results (7 days)
	DefaultCacheTTL = 168 * time.Hour
	// NegativeCacheTTL is the TTL for searches that matched nothing (1 day)
	NegativeCacheTTL = 24 * time.Hour
)

// FetchFunc represents a function that fetches data from an external source
type FetchFunc[T any] func() (T, error)

// DB manages the SQLite database connection for caching
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
	now  func() time.Time
}

var (
	globalCache     *DB
	globalCacheOnce sync.Once
	globalCacheErr  error
)

// ResetGlobalCache closes the current global cache and resets the singleton
// so the next call to GetGlobalCache will create a new instance.
func ResetGlobalCache() error {
	var err error
	if globalCache != nil {
		err = globalCache.Close()
	}
	globalCache = nil
	globalCacheErr = nil
	globalCacheOnce = sync.Once{}
	return err
}

// GetGlobalCache returns the singleton cache database configured by cache.dbfile.
func GetGlobalCache() (*DB, error) {
	globalCacheOnce.Do(func() {
		dbPath := viper.GetString("cache.dbfile")
		if dbPath == "" {
			dbPath = "./cache.db"
		}
		globalCache, globalCacheErr = Open(dbPath)
	})
	return globalCache, globalCacheErr
}

// Open opens (or creates) the cache database at dbPath and creates all cache tables.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	c := &DB{db: db, path: dbPath, now: time.Now}
	for _, schema := range AllCacheSchemas {
		if err := c.CreateTable(schema); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create cache table: %w", err)
		}
	}
	return c, nil
}

// Path returns the database file path.
func (c *DB) Path() string {
	return c.path
}

// CreateTable creates a table using the provided schema
func (c *DB) CreateTable(schema string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// validateTableName checks if the table name is in the whitelist
// to prevent SQL injection attacks
func validateTableName(tableName string) error {
	if !ValidCacheTableNames[tableName] {
		return fmt.Errorf("invalid cache table name: %s", tableName)
	}
	return nil
}

// Get retrieves an unexpired cached value from the specified table.
// Returns the cached data and whether it was found.
func (c *DB) Get(tableName, key string) (string, bool, error) {
	if err := validateTableName(tableName); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`SELECT data, expires_at FROM %s WHERE cache_key = ?`, tableName)

	var data string
	var expiresAt int64
	err := c.db.QueryRow(query, key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	if c.now().Unix() >= expiresAt {
		slog.Debug("Cache expired", "table", tableName, "key", key)
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a value in the cache for ttl.
func (c *DB) Set(tableName, key, data string, ttl time.Duration) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (cache_key, data, cached_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, tableName)

	if _, err := c.db.Exec(query, key, data, now.Unix(), now.Add(ttl).Unix()); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// ClearExpired removes expired entries from the specified table and returns how many were removed.
func (c *DB) ClearExpired(tableName string) (int64, error) {
	if err := validateTableName(tableName); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= ?`, tableName)
	result, err := c.db.Exec(query, c.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired cache: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		slog.Info("Cleared expired cache entries", "table", tableName, "count", rows)
	}
	return rows, nil
}

// InvalidateSource deletes all entries from the specified cache table
// and returns the number of rows deleted.
func (c *DB) InvalidateSource(tableName string) (int64, error) {
	if err := validateTableName(tableName); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Debug("Cache table cleared", "table", tableName, "rows_deleted", rowsAffected)
	return rowsAffected, nil
}

// GetOrFetch retrieves data from cache or fetches it using the provided function.
// ttlSelector picks the TTL for a freshly fetched value; nil means DefaultCacheTTL.
// A nil DB disables caching and always fetches. Fetch errors are never cached.
func GetOrFetch[T any](c *DB, tableName, cacheKey string, fetchFunc FetchFunc[T], ttlSelector func(T) time.Duration) (T, bool, error) {
	var zero T

	if c == nil {
		data, err := fetchFunc()
		return data, false, err
	}

	cached, found, err := c.Get(tableName, cacheKey)
	if err != nil {
		slog.Warn("Cache lookup failed, fetching directly", "table", tableName, "key", cacheKey, "error", err)
	}
	if found {
		var result T
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			slog.Debug("Cache hit", "table", tableName, "key", cacheKey)
			return result, true, nil
		}
		slog.Warn("Failed to unmarshal cached data, will refetch", "table", tableName, "key", cacheKey, "error", err)
	}

	slog.Debug("Cache miss, fetching data", "table", tableName, "key", cacheKey)
	data, err := fetchFunc()
	if err != nil {
		return zero, false, err
	}

	ttl := DefaultCacheTTL
	if ttlSelector != nil {
		ttl = ttlSelector(data)
	}
	if ttl <= 0 {
		return data, false, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to marshal data for caching", "table", tableName, "key", cacheKey, "error", err)
		return data, false, nil
	}
	// caching failure shouldn't fail the search
	if err := c.Set(tableName, cacheKey, string(jsonData), ttl); err != nil {
		slog.Warn("Failed to cache data", "table", tableName, "key", cacheKey, "error", err)
	} else {
		slog.Debug("Data cached successfully", "table", tableName, "key", cacheKey, "ttl", ttl)
	}

	return data, false, nil
}

// SelectNegativeCacheTTL returns a TTL selector that caches "not found"
// results for NegativeCacheTTL and everything else for ttl.
func SelectNegativeCacheTTL[T any](ttl time.Duration, isNotFound func(T) bool) func(T) time.Duration {
	return func(result T) time.Duration {
		if isNotFound(result) {
			return min(ttl, NegativeCacheTTL)
		}
		return ttl
	}
}
