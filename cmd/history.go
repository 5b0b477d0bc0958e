package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryConfig reads and validates the history backend settings only.
func loadHistoryConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := backendFromViper("history-backend")
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	if err := loadHistoryConfig(); err != nil {
		return err
	}

	// No dataset caching for history commands
	if err := iocache.InitCaching("", "", cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyCmd focused on render history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by chart commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage render history tracking and exports",
	Long: `Manage the history of chart renders.

When --history-backend is set, racechart records every render, storing:
- Run metadata (timestamp, source, configuration, duration)
- Every placed point (rider, year, time, pixel position, color)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  racechart history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  racechart history export --history-backend sqlite --output-file renders`,
}

// historyClearCmd clears the render history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all render history",
	Long: `Delete all stored render runs and placed points.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  racechart history export --history-backend sqlite --output-file backup
  racechart history clear --history-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadHistoryConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := sqliteFilePath(cfg.HistoryBackend, cfg.HistoryDBConnect, contract.GetHistoryDBFilePath())
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbPath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear render history", err)
		}
		fmt.Println("Render history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display render history statistics and connection details",
	Long: `Show the history backend, the number of recorded runs, the last and oldest run,
the total number of points recorded and the row count of each table.

Examples:
  racechart history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export render history to Parquet for analytics",
	Long: `Export all stored render history to two Parquet files:
- <output-file>.render_runs.parquet   one row per render
- <output-file>.render_points.parquet one row per placed point

Requires: --output-file parameter

Examples:
  racechart history export --history-backend sqlite --output-file renders
  duckdb -c "SELECT * FROM read_parquet('renders.render_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportHistory(iocache.Manager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export render history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the render history store.

By default, migrates to the latest version. Use --target-version for specific versions.
Migrations run on a fresh database without creating the tables first.

Examples:
  # Migrate to latest version (default)
  racechart history migrate --history-backend sqlite

  # Migrate to specific version
  racechart history migrate --history-backend sqlite --target-version 1

  # Rollback everything
  racechart history migrate --history-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadHistoryConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
