package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct{}

func (i *InvalidateCacheCmd) Run() error {
	slog.Info("Invalidating search cache", "database", viper.GetString("cache.dbfile"))

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	rowsDeleted, err := cacheInstance.InvalidateSource(SearchCacheTable)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "rows_deleted", rowsDeleted)
	return nil
}

// PruneCacheCmd represents the cache prune subcommand
type PruneCacheCmd struct{}

func (p *PruneCacheCmd) Run() error {
	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	rows, err := cacheInstance.ClearExpired(SearchCacheTable)
	if err != nil {
		return err
	}

	slog.Info("Cache pruned", "rows_deleted", rows)
	return nil
}
