package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"pagecraft-hq/callisto/pkg/audit"
	"pagecraft-hq/callisto/pkg/audit/retention"
	auditstorage "pagecraft-hq/callisto/pkg/audit/storage"
	"pagecraft-hq/callisto/pkg/cli"
	"pagecraft-hq/callisto/pkg/config"
	"pagecraft-hq/callisto/pkg/library"
	"pagecraft-hq/callisto/pkg/library/manager"
	"pagecraft-hq/callisto/pkg/library/storage"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/server"
	"pagecraft-hq/callisto/pkg/telemetry/health"
	"pagecraft-hq/callisto/pkg/telemetry/logging"
	"pagecraft-hq/callisto/pkg/telemetry/metrics"
	"pagecraft-hq/callisto/pkg/template/parser"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Callisto API server",
	Long: `Start the Callisto API server with the specified configuration.

The server loads the template library, then serves extraction and
substitution over HTTP with audit recording and metrics.

Examples:
  # Start with default config
  pagecraft run

  # Start with custom config
  pagecraft run --config /etc/pagecraft/config.yaml

  # Override listen address
  pagecraft run --listen 0.0.0.0:8080

  # Validate config without starting server
  pagecraft run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:        cfg.Telemetry.Logging.Level,
		Format:       cfg.Telemetry.Logging.Format,
		RedactValues: cfg.Telemetry.Logging.RedactValues,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Pagecraft Callisto v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	ctx := cli.SetupSignalHandler()

	// Metrics collector
	collector := metrics.NewDisabledCollector()
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(prometheus.NewRegistry())
	}

	// Placeholder engine
	eng := engine.New().
		WithCacheSize(cfg.Engine.CacheSize).
		WithObserver(collector)

	// Library store
	store, err := openLibraryStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()

	tmplParser := parser.NewParser().
		WithMaxFileSize(cfg.Engine.MaxFileSize).
		WithMaxDepth(cfg.Engine.MaxDepth)

	mgr := manager.New(store).
		WithParser(tmplParser).
		WithEngine(eng).
		WithLogger(logger).
		WithObserver(collector).
		WithTemplatesDir(cfg.Library.TemplatesDir)

	if cfg.Library.TemplatesDir != "" {
		loaded, err := mgr.LoadDirectory(ctx, cfg.Library.TemplatesDir)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		fmt.Printf("✓ Template library loaded (%d templates)\n", loaded)
	}

	// File watcher for template hot reload
	if cfg.Library.Watch && cfg.Library.TemplatesDir != "" {
		watcherConfig := manager.DefaultFileWatcherConfig()
		watcherConfig.Path = cfg.Library.TemplatesDir
		if cfg.Library.DebounceInterval > 0 {
			watcherConfig.DebounceInterval = cfg.Library.DebounceInterval
		}

		watcher, err := manager.NewFileWatcher(watcherConfig, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go func() {
			if err := watcher.Watch(ctx, func() error {
				_, err := mgr.Reload(context.Background())
				return err
			}); err != nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
		defer watcher.Stop()
		fmt.Println("✓ Template watcher started")
	}

	// Audit recording
	var recorder *audit.Recorder
	if cfg.Audit.Enabled {
		auditStore, err := openAuditStore(cfg)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer auditStore.Close()

		recorder = audit.NewRecorder(auditStore, audit.DefaultConfig(), logger)
		defer recorder.Close()

		// Retention pruner if a schedule is configured
		if cfg.Audit.Retention.Schedule != "" {
			retentionConfig := &retention.Config{
				RetentionDays: cfg.Audit.Retention.Days,
				PruneSchedule: cfg.Audit.Retention.Schedule,
				MaxRecords:    cfg.Audit.Retention.MaxRecords,
			}
			pruner := retention.NewPruner(auditStore, retentionConfig, logger)
			if err := pruner.Start(ctx); err != nil {
				logger.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
				if next := pruner.NextPruning(); next != nil {
					logger.Debug("audit retention scheduler started", "next_pruning", next)
				}
			}
		}

		fmt.Println("✓ Audit store initialized")
	}

	// Health checks
	checker := health.New(5 * time.Second)
	checker.RegisterCheck("library", store.Ping)

	srv := server.New(cfg, mgr, logger).
		WithCollector(collector).
		WithHealthChecker(checker).
		WithVersionInfo(Version, GitCommit, BuildDate)
	if recorder != nil {
		srv = srv.WithRecorder(recorder)
	}

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

func openLibraryStore(cfg *config.Config) (library.Store, error) {
	switch cfg.Library.Backend {
	case "sqlite":
		sqliteConfig := storage.DefaultSQLiteConfig()
		if cfg.Library.SQLitePath != "" {
			sqliteConfig.Path = cfg.Library.SQLitePath
		}
		return storage.NewSQLiteStore(sqliteConfig)
	case "memory", "":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported library backend: %s", cfg.Library.Backend)
	}
}

func openAuditStore(cfg *config.Config) (audit.Storage, error) {
	switch cfg.Audit.Backend {
	case "sqlite", "":
		sqliteConfig := auditstorage.DefaultSQLiteConfig()
		if cfg.Audit.SQLitePath != "" {
			sqliteConfig.Path = cfg.Audit.SQLitePath
		}
		return auditstorage.NewSQLiteStorage(sqliteConfig)
	case "memory":
		return auditstorage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
	}
}
