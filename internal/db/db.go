package db

import (
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/CertIndexor/pkg/config"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/russross/meddler"
)

// NewSQLiteDBFromConfig creates a new SQLite DB with the given configuration.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	foreignKeys := "off"
	if cfg.EnableForeignKeys {
		foreignKeys = "on"
	}

	connStr := fmt.Sprintf(
		"file:%s?_txlock=immediate&_foreign_keys=%s&_journal_mode=%s&_busy_timeout=%d",
		cfg.Path,
		foreignKeys,
		cfg.JournalMode,
		cfg.BusyTimeout,
	)

	db, err := sql.Open(config.DriverSQLite, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	pragmas := []string{
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.Synchronous),
		fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize),
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return db, nil
}

// NewPostgresDBFromConfig opens a PostgreSQL connection pool and verifies it is reachable.
func NewPostgresDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(config.DriverPostgres, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// NewDBFromConfig opens the database selected by cfg.Driver.
func NewDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewSQLiteDBFromConfig(cfg)
	case config.DriverPostgres:
		return NewPostgresDBFromConfig(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Dialect returns the meddler dialect matching the driver name.
func Dialect(driver string) (*meddler.Database, error) {
	switch driver {
	case config.DriverSQLite, "":
		return meddler.SQLite, nil
	case config.DriverPostgres:
		return meddler.PostgreSQL, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
