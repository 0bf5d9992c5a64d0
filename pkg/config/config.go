package config

import "time"

// Config is the root configuration structure for Callisto.
// It contains all configuration sections for the HTTP server, the
// placeholder engine, the template library, audit storage, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and connection limits.
	Server ServerConfig `yaml:"server"`

	// Engine contains configuration for the placeholder engine including
	// parser limits and the extraction cache.
	Engine EngineConfig `yaml:"engine"`

	// Library contains configuration for the template library including
	// storage backend, template directory, and watch mode.
	Library LibraryConfig `yaml:"library"`

	// Audit contains configuration for audit record storage and retention.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero or negative value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// If requests are still in-flight after this timeout, the server will
	// force shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values. It does not limit
	// the size of the request body.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// EngineConfig contains configuration for the placeholder engine.
type EngineConfig struct {
	// CacheSize is the number of extraction results kept in the LRU cache.
	// A value of zero or less disables caching.
	// Default: 256
	CacheSize int `yaml:"cache_size"`

	// MaxFileSize is the largest template file the parser will accept,
	// in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the deepest element nesting the parser will accept.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`
}

// LibraryConfig contains configuration for the template library.
type LibraryConfig struct {
	// Backend selects the library storage backend.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the path to the SQLite database file when Backend
	// is "sqlite".
	// Default: "data/library.db"
	SQLitePath string `yaml:"sqlite_path"`

	// TemplatesDir is the directory scanned for template JSON files at
	// startup. Empty disables directory loading.
	TemplatesDir string `yaml:"templates_dir"`

	// Watch enables automatic reloading when files in TemplatesDir change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is how long the watcher waits after the last file
	// event before reloading, coalescing editor save bursts.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// AuditConfig contains configuration for audit record storage.
type AuditConfig struct {
	// Enabled controls whether extraction and substitution operations are
	// recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the audit storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the path to the SQLite database file when Backend
	// is "sqlite".
	// Default: "data/audit.db"
	SQLitePath string `yaml:"sqlite_path"`

	// Retention contains record retention settings.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains audit retention settings.
type RetentionConfig struct {
	// Days is how long audit records are kept before pruning.
	// A value of zero disables age-based pruning.
	// Default: 90
	Days int `yaml:"days"`

	// Schedule is the cron expression for the pruning job.
	// Default: "0 3 * * *" (daily at 03:00)
	Schedule string `yaml:"schedule"`

	// MaxRecords caps the number of retained records; the oldest are
	// pruned first. Zero means no cap.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// RedactValues controls whether substitution values are redacted in
	// log output. Values routinely carry contact details.
	// Default: true
	RedactValues bool `yaml:"redact_values"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
