// Package cmd defines the command-line interface for racechart.
package cmd

import (
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", "", "Dataset URL or local JSON file (defaults to the freeCodeCamp cyclist dataset)")
	rootCmd.PersistentFlags().String("output", string(schema.SVGOut), "Output format: svg or png or text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for pixel columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("term-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for the dataset cache (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long a cached dataset stays fresh (e.g., 24h)")
	rootCmd.PersistentFlags().String("history-backend", "", "Render history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for render history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().Int("chart-width", schema.DefaultChartWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Int("chart-height", schema.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().Int("padding", schema.DefaultPadding, "Margin reserved around the plot area for axes")
	rootCmd.PersistentFlags().Int("tooltip-width", schema.DefaultTooltipWidth, "Tooltip width in pixels")
	rootCmd.PersistentFlags().Int("tooltip-height", schema.DefaultTooltipHeight, "Tooltip height in pixels")
	rootCmd.PersistentFlags().Int("tooltip-padding", schema.DefaultTooltipPadding, "Gap between the cursor and the tooltip")
	rootCmd.PersistentFlags().Int("viewport-width", contract.DefaultViewportWidth, "Assumed viewport width for tooltip placement")
	rootCmd.PersistentFlags().Int("viewport-height", contract.DefaultViewportHeight, "Assumed viewport height for tooltip placement")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Address to listen on")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins (default: any)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Hover cursor flags are read straight from the command, not from Viper
	hoverCmd.Flags().Float64("x", 0, "Cursor x in page pixels (default: the point center)")
	hoverCmd.Flags().Float64("y", 0, "Cursor y in page pixels (default: the point center)")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
