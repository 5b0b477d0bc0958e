package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/iocache"
	"github.com/huangsam/racechart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadCacheConfig reads and validates the cache backend settings only.
func loadCacheConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := backendFromViper("cache-backend")
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadCacheConfig(); err != nil {
		return err
	}

	// No history tracking for cache commands
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// sqliteFilePath resolves the SQLite file a backend setting points at.
func sqliteFilePath(backend schema.DatabaseBackend, connStr, defaultPath string) string {
	if backend == schema.SQLiteBackend && connStr != "" {
		return connStr
	}
	return defaultPath
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization instead of the full sharedSetup
// used by chart commands. This avoids dataset and layout validation for simple
// cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the dataset cache (avoids refetching the dataset)",
	Long: `Manage the cache that stores the fetched dataset between runs.

Racechart caches the decoded dataset per source so repeated renders skip the network.
Entries older than --cache-ttl are refetched.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics
  clear  - Remove all cached datasets`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached datasets",
	Long: `Delete every cached dataset. The next render fetches the source again.

For SQLite the database file is removed. For MySQL and PostgreSQL the cache table is dropped.

Examples:
  racechart cache clear
  racechart cache clear --cache-backend mysql --cache-db-connect "user:pass@tcp(localhost:3306)/racechart"`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := sqliteFilePath(cfg.CacheBackend, cfg.CacheDBConnect, contract.GetCacheDBFilePath())
		if err := iocache.ClearCache(cfg.CacheBackend, dbPath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the cache backend, whether it is connected, how many datasets are cached,
the newest and oldest entry times and the table size.

Examples:
  racechart cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetDatasetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
