package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Engine defaults
	DefaultEngineCacheSize   = 256
	DefaultEngineMaxFileSize = int64(10 * 1024 * 1024)
	DefaultEngineMaxDepth    = 32

	// Library defaults
	DefaultLibraryBackend     = "memory"
	DefaultLibrarySQLitePath  = "data/library.db"
	DefaultLibraryWatch       = false
	DefaultLibraryDebounce    = 500 * time.Millisecond

	// Audit defaults
	DefaultAuditEnabled           = true
	DefaultAuditBackend           = "sqlite"
	DefaultAuditSQLitePath        = "data/audit.db"
	DefaultAuditRetentionDays     = 90
	DefaultAuditRetentionSchedule = "0 3 * * *"
	DefaultAuditRetentionMax      = int64(0)

	// Telemetry defaults
	DefaultLoggingLevel        = "info"
	DefaultLoggingFormat       = "json"
	DefaultLoggingRedactValues = true
	DefaultMetricsEnabled      = true
	DefaultMetricsPath         = "/metrics"
)

// Default returns a fully populated configuration. LoadConfig unmarshals
// YAML over this value so boolean fields keep their documented defaults
// when left unset.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress:   DefaultListenAddress,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxHeaderBytes:  DefaultMaxHeaderBytes,
		},
		Engine: EngineConfig{
			CacheSize:   DefaultEngineCacheSize,
			MaxFileSize: DefaultEngineMaxFileSize,
			MaxDepth:    DefaultEngineMaxDepth,
		},
		Library: LibraryConfig{
			Backend:          DefaultLibraryBackend,
			SQLitePath:       DefaultLibrarySQLitePath,
			Watch:            DefaultLibraryWatch,
			DebounceInterval: DefaultLibraryDebounce,
		},
		Audit: AuditConfig{
			Enabled:    DefaultAuditEnabled,
			Backend:    DefaultAuditBackend,
			SQLitePath: DefaultAuditSQLitePath,
			Retention: RetentionConfig{
				Days:       DefaultAuditRetentionDays,
				Schedule:   DefaultAuditRetentionSchedule,
				MaxRecords: DefaultAuditRetentionMax,
			},
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:        DefaultLoggingLevel,
				Format:       DefaultLoggingFormat,
				RedactValues: DefaultLoggingRedactValues,
			},
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
				Path:    DefaultMetricsPath,
			},
		},
	}
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
// Boolean fields are not touched; use Default as the starting value
// when a true default matters.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Engine defaults
	if cfg.Engine.CacheSize == 0 {
		cfg.Engine.CacheSize = DefaultEngineCacheSize
	}
	if cfg.Engine.MaxFileSize == 0 {
		cfg.Engine.MaxFileSize = DefaultEngineMaxFileSize
	}
	if cfg.Engine.MaxDepth == 0 {
		cfg.Engine.MaxDepth = DefaultEngineMaxDepth
	}

	// Library defaults
	if cfg.Library.Backend == "" {
		cfg.Library.Backend = DefaultLibraryBackend
	}
	if cfg.Library.SQLitePath == "" {
		cfg.Library.SQLitePath = DefaultLibrarySQLitePath
	}
	if cfg.Library.DebounceInterval == 0 {
		cfg.Library.DebounceInterval = DefaultLibraryDebounce
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultAuditRetentionDays
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = DefaultAuditRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
