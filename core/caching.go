package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// revisionedSource is a DataSource whose content can change under the same name.
type revisionedSource interface {
	Revision() string
}

// cachedFetch loads records through the dataset cache when one is configured.
func cachedFetch(ctx context.Context, cfg *contract.Config, source contract.DataSource, mgr contract.CacheManager) ([]schema.RaceRecord, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetDatasetStore()
	}
	if store == nil {
		// Fallback to a direct fetch
		return source.Fetch(ctx)
	}

	key := generateCacheKey(source)

	// Check for cache hit
	if records := checkCacheHit(store, key, cfg.CacheTTL); records != nil {
		return records, nil
	}

	// Cache miss: fetch and store
	return fetchAndStore(ctx, source, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached dataset
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration) []schema.RaceRecord {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion {
		return nil
	}
	if ttl > 0 && time.Since(time.Unix(ts, 0)) > ttl {
		return nil
	}

	var records []schema.RaceRecord
	if err := json.Unmarshal(data, &records); err != nil || len(records) == 0 {
		return nil
	}
	return records // Cache hit
}

// fetchAndStore fetches the dataset and stores it in cache
func fetchAndStore(ctx context.Context, source contract.DataSource, store contract.CacheStore, key string) ([]schema.RaceRecord, error) {
	records, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache dataset", err)
		}
	}

	return records, nil
}

// generateCacheKey creates a unique key for a data source
func generateCacheKey(source contract.DataSource) string {
	key := fmt.Sprintf("dataset:%s", source.Name())
	if rs, ok := source.(revisionedSource); ok {
		key += "@" + rs.Revision()
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
