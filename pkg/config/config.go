package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config represents the complete configuration for the CertIndexor.
type Config struct {
	// Ledger contains the ledger node connection configuration
	Ledger LedgerConfig `yaml:"ledger" json:"ledger" toml:"ledger" split_words:"true"`

	// Database contains the relational store configuration
	Database DatabaseConfig `yaml:"database" json:"database" toml:"database" split_words:"true"`

	// Indexer contains the block indexer configuration
	Indexer IndexerConfig `yaml:"indexer" json:"indexer" toml:"indexer" split_words:"true"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty" split_words:"true"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty" split_words:"true"`
}

// LedgerConfig represents the configuration of the ledger node client.
type LedgerConfig struct {
	// RPCURL is the ledger node RPC endpoint URL (http(s) or ws(s))
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url" split_words:"true"`

	// PollInterval is how often the finalized head is polled when watching for new blocks
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval" split_words:"true"`

	// HeaderCacheSize is the number of finalized headers kept in memory
	HeaderCacheSize int `yaml:"header_cache_size" json:"header_cache_size" toml:"header_cache_size" split_words:"true"` //nolint:lll

	// RequestsPerSecond limits the rate of RPC calls (0 = unlimited)
	RequestsPerSecond int `yaml:"requests_per_second" json:"requests_per_second" toml:"requests_per_second" split_words:"true"` //nolint:lll

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty" split_words:"true"`
}

// ApplyDefaults sets default values for optional ledger configuration fields.
func (l *LedgerConfig) ApplyDefaults() {
	if l.PollInterval.Duration == 0 {
		l.PollInterval = common.NewDuration(6 * time.Second) //nolint:mnd
	}
	if l.HeaderCacheSize == 0 {
		l.HeaderCacheSize = 1024
	}
	if l.Retry != nil {
		l.Retry.ApplyDefaults()
	}
}

// Validate checks if the ledger configuration is valid.
func (l *LedgerConfig) Validate() error {
	if l.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if l.HeaderCacheSize < 0 {
		return fmt.Errorf("header_cache_size must not be negative")
	}
	if l.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if l.Retry != nil && l.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}

	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts" split_words:"true"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff" split_words:"true"` //nolint:lll

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff" split_words:"true"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier" split_words:"true"` //nolint:lll
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(200 * time.Millisecond) //nolint:mnd
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(5 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Driver selects the SQL backend: "sqlite3" or "postgres"
	Driver string `yaml:"driver" json:"driver" toml:"driver" split_words:"true"`

	// Path is the file path to the SQLite database
	Path string `yaml:"path,omitempty" json:"path,omitempty" toml:"path,omitempty" split_words:"true"`

	// URL is the PostgreSQL connection string
	URL string `yaml:"url,omitempty" json:"url,omitempty" toml:"url,omitempty" split_words:"true"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode" split_words:"true"`

	// Synchronous sets the SQLite synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous" split_words:"true"`

	// BusyTimeout is the time in milliseconds to wait when the SQLite database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout" split_words:"true"`

	// CacheSize is the size of the SQLite page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size" split_words:"true"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections" split_words:"true"` //nolint:lll

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections" split_words:"true"` //nolint:lll

	// EnableForeignKeys enables SQLite foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys" split_words:"true"` //nolint:lll
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
	// EnableForeignKeys defaults to false (zero value)
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("path is required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if d.URL == "" {
			return fmt.Errorf("url is required for driver %s", DriverPostgres)
		}
		return nil
	default:
		return fmt.Errorf("driver must be one of: %s, %s", DriverSQLite, DriverPostgres)
	}

	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// IndexerConfig configures the block indexer.
type IndexerConfig struct {
	// Enabled controls whether the indexer follows the ledger at all (default true)
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty" toml:"enabled,omitempty" split_words:"true"`

	// RetryDelay is the fixed delay between attempts to process a failing block
	RetryDelay common.Duration `yaml:"retry_delay" json:"retry_delay" toml:"retry_delay" split_words:"true"`

	// PoisonBlockThreshold is the number of consecutive failures on one block after which
	// the block is reported as poisoned. Processing keeps retrying. 0 disables the alert.
	PoisonBlockThreshold uint `yaml:"poison_block_threshold" json:"poison_block_threshold" toml:"poison_block_threshold" split_words:"true"` //nolint:lll
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	if i.Enabled == nil {
		enabled := true
		i.Enabled = &enabled
	}
	if i.RetryDelay.Duration == 0 {
		i.RetryDelay = common.NewDuration(time.Second)
	}
}

// IsEnabled reports whether block indexing should run.
func (i *IndexerConfig) IsEnabled() bool {
	return i.Enabled == nil || *i.Enabled
}

// Validate checks if the indexer configuration is valid.
func (i *IndexerConfig) Validate() error {
	if i.RetryDelay.Duration < 0 {
		return fmt.Errorf("retry_delay must not be negative")
	}

	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level" split_words:"true"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development" split_words:"true"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - indexer: Block traversal and commit
	//   - block-handler: Per-block event folding
	//   - event-handler: Event to record translation
	//   - ledger-client: Ledger node RPC
	//   - store: Relational store
	//   - follower: Finalized head subscription
	//   - metrics: Metrics server
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty" split_words:"true"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return "info"
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil || l.DefaultLevel == "" {
		return "info"
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled" split_words:"true"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address" split_words:"true"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path" split_words:"true"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
	// Enabled defaults to false (zero value)
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Ledger.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Indexer.ApplyDefaults()

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Indexer.Validate(); err != nil {
		return fmt.Errorf("indexer: %w", err)
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
