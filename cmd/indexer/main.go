package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/internal/config"
	"github.com/goran-ethernal/CertIndexor/internal/db"
	"github.com/goran-ethernal/CertIndexor/internal/indexer"
	"github.com/goran-ethernal/CertIndexor/internal/ledger"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/internal/metrics"
	"github.com/goran-ethernal/CertIndexor/internal/migrations"
	"github.com/goran-ethernal/CertIndexor/internal/processor"
	"github.com/goran-ethernal/CertIndexor/internal/store"
	pkgconfig "github.com/goran-ethernal/CertIndexor/pkg/config"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║           CertIndexor v%s              ║
║   Hydrogen Certificate Ledger Indexer     ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "CertIndexor - hydrogen certificate ledger indexer",
	Long: `CertIndexor follows the finalized blocks of the certificate ledger and mirrors
certificate issuance, transfer and revocation into a relational store. Each block
is committed atomically together with its progress marker.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Follow the ledger and index finalized blocks (default)",
	RunE:  runIndexer,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last processed block and the ledger finalized head",
	RunE:  runStatus,
}

var configSchemaCmd = &cobra.Command{
	Use:   "config-schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.AddCommand(runCmd, migrateCmd, statusCmd, configSchemaCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			fmt.Println("\n\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// openStore migrates the configured database and returns a store on top of it.
func openStore(cfg *pkgconfig.Config) (*sql.DB, *store.CertStore, error) {
	storeLog := logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging)

	storeLog.Info("Running database migrations...")
	if err := migrations.RunMigrations(storeLog, cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	sqlDB, err := db.NewDBFromConfig(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database: %w", err)
	}

	certStore, err := store.NewCertStore(sqlDB, cfg.Database.Driver, storeLog)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	return sqlDB, certStore, nil
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := logger.NewComponentLoggerFromConfig(common.ComponentIndexer, cfg.Logging)
	defer func() { _ = log.Close() }()

	if !cfg.Indexer.IsEnabled() {
		log.Warn("Indexer is disabled in configuration. Exiting.")
		return nil
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(
			cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging),
		)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
		log.Infof("Metrics server started on %s%s", cfg.Metrics.ListenAddress, cfg.Metrics.Path)
	}

	sqlDB, certStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	metrics.ComponentHealthSet(common.ComponentStore, true)

	log.Info("Connecting to ledger node...")
	client, err := ledger.NewClient(
		ctx,
		&cfg.Ledger,
		logger.NewComponentLoggerFromConfig(common.ComponentLedgerClient, cfg.Logging),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger client: %w", err)
	}
	defer client.Close()
	metrics.ComponentHealthSet(common.ComponentLedgerClient, true)
	log.Infof("Connected to ledger node: %s", cfg.Ledger.RPCURL)

	events := indexer.NewEventHandler(
		client,
		certStore,
		processor.DefaultProcessors(),
		logger.NewComponentLoggerFromConfig(common.ComponentEventHandler, cfg.Logging),
	)
	blocks := indexer.NewBlockHandler(
		client,
		events,
		logger.NewComponentLoggerFromConfig(common.ComponentBlockHandler, cfg.Logging),
	)
	idx := indexer.New(&cfg.Indexer, client, certStore, blocks, log)
	defer func() {
		if err := idx.Close(); err != nil {
			log.Warnf("Failed to close indexer: %v", err)
		}
	}()

	follower := indexer.NewFollower(
		idx,
		client,
		logger.NewComponentLoggerFromConfig(common.ComponentFollower, cfg.Logging),
	)

	log.Info("Starting CertIndexor...")
	metrics.ComponentHealthSet(common.ComponentIndexer, true)

	if err := follower.Run(ctx); err != nil {
		metrics.ComponentHealthSet(common.ComponentIndexer, false)
		return fmt.Errorf("indexer failed: %w", err)
	}

	log.Info("CertIndexor stopped successfully")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	storeLog := logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging)
	if err := migrations.RunMigrations(storeLog, cfg.Database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s database\n", cfg.Database.Driver)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	sqlDB, certStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	out := cmd.OutOrStdout()

	last, err := certStore.GetLastProcessedBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last processed block: %w", err)
	}
	if last == nil {
		fmt.Fprintln(out, "Last processed block: none")
	} else {
		fmt.Fprintf(out, "Last processed block: %d (%s)\n", last.Height, last.Hash.Hex())
	}

	client, err := ledger.NewClient(
		ctx,
		&cfg.Ledger,
		logger.NewComponentLoggerFromConfig(common.ComponentLedgerClient, cfg.Logging),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger client: %w", err)
	}
	defer client.Close()

	headHash, err := client.GetLastFinalisedBlockHash(ctx)
	if err != nil {
		return fmt.Errorf("failed to get finalized head: %w", err)
	}
	head, err := client.GetHeader(ctx, headHash)
	if err != nil {
		return fmt.Errorf("failed to get finalized head header: %w", err)
	}
	fmt.Fprintf(out, "Ledger finalized head: %d (%s)\n", head.Height, head.Hash.Hex())

	if last != nil && head.Height >= last.Height {
		fmt.Fprintf(out, "Blocks behind: %d\n", head.Height-last.Height)
	}

	return nil
}
