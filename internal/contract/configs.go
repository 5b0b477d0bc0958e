package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/racechart/schema"
)

// Default values for configuration.
const (
	DefaultPrecision      = 1
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
	DefaultServeAddr      = ":8080"
)

// DefaultCacheTTL is how long a cached dataset stays fresh.
const DefaultCacheTTL = 7 * 24 * time.Hour

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a render.
// This struct remains the "final, validated" config.
type Config struct {
	Source     string
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Layout   schema.Layout
	Viewport schema.Size

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	ServeAddr   string
	CORSOrigins []string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourceArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Source           string `mapstructure:"source"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	TermWidth        int    `mapstructure:"term-width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Chart geometry ---
	ChartWidth     int `mapstructure:"chart-width"`
	ChartHeight    int `mapstructure:"chart-height"`
	Padding        int `mapstructure:"padding"`
	TooltipWidth   int `mapstructure:"tooltip-width"`
	TooltipHeight  int `mapstructure:"tooltip-height"`
	TooltipPadding int `mapstructure:"tooltip-padding"`
	ViewportWidth  int `mapstructure:"viewport-width"`
	ViewportHeight int `mapstructure:"viewport-height"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	CORSOrigins string `mapstructure:"cors-origins"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CORSOrigins != nil {
		clone.CORSOrigins = make([]string, len(c.CORSOrigins))
		copy(clone.CORSOrigins, c.CORSOrigins)
	}
	return &clone
}

// Params returns the render parameters recorded with each history run.
func (c *Config) Params() map[string]any {
	return map[string]any{
		"output":          string(c.Output),
		"chart_width":     c.Layout.Width,
		"chart_height":    c.Layout.Height,
		"padding":         c.Layout.Padding,
		"tooltip_width":   c.Layout.TooltipWidth,
		"tooltip_height":  c.Layout.TooltipHeight,
		"tooltip_padding": c.Layout.TooltipPadding,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processLayout(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveSource(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl '%s': %w", input.CacheTTL, err)
		}
		if ttl < 0 {
			return fmt.Errorf("cache-ttl cannot be negative (received %s)", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Cache and history must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.TermWidth

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > 3 {
		return fmt.Errorf("precision must be between 0 and 3 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be svg, png, text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", cfg.Output)
	}

	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.CORSOrigins = nil
	for p := range strings.SplitSeq(input.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}
	return nil
}

// processLayout validates the chart geometry and the assumed viewport.
func processLayout(cfg *Config, input *ConfigRawInput) error {
	if input.ChartWidth <= 0 || input.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive (received %dx%d)", input.ChartWidth, input.ChartHeight)
	}
	if input.Padding < 0 || 2*input.Padding >= input.ChartWidth || 2*input.Padding >= input.ChartHeight {
		return fmt.Errorf("padding %d does not fit a %dx%d chart", input.Padding, input.ChartWidth, input.ChartHeight)
	}
	if input.TooltipWidth <= 0 || input.TooltipHeight <= 0 {
		return fmt.Errorf("tooltip size must be positive (received %dx%d)", input.TooltipWidth, input.TooltipHeight)
	}
	if input.TooltipPadding < 0 {
		return fmt.Errorf("tooltip padding cannot be negative (received %d)", input.TooltipPadding)
	}
	if input.ViewportWidth <= 0 || input.ViewportHeight <= 0 {
		return fmt.Errorf("viewport size must be positive (received %dx%d)", input.ViewportWidth, input.ViewportHeight)
	}

	cfg.Layout = schema.DefaultLayout()
	cfg.Layout.Width = float64(input.ChartWidth)
	cfg.Layout.Height = float64(input.ChartHeight)
	cfg.Layout.Padding = float64(input.Padding)
	cfg.Layout.TooltipWidth = float64(input.TooltipWidth)
	cfg.Layout.TooltipHeight = float64(input.TooltipHeight)
	cfg.Layout.TooltipPadding = float64(input.TooltipPadding)
	cfg.Viewport = schema.Size{Width: float64(input.ViewportWidth), Height: float64(input.ViewportHeight)}
	return nil
}

// resolveSource picks the dataset location. A positional argument wins over --source.
func resolveSource(cfg *Config, input *ConfigRawInput) error {
	source := strings.TrimSpace(input.SourceArg)
	if source == "" {
		source = strings.TrimSpace(input.Source)
	}
	if source == "" {
		source = schema.DefaultSourceURL
	}
	cfg.Source = source
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
