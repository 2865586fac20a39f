package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/CertIndexor/internal/db"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
)

//go:embed 001_certificate_indexer.sql
var mig001 string

// All lists the schema migrations of the certificate store in order.
var All = []db.Migration{
	{
		ID:  "001_certificate_indexer.sql",
		SQL: mig001,
	},
}

// RunMigrations opens the configured database and applies pending schema migrations.
func RunMigrations(log *logger.Logger, cfg config.DatabaseConfig) error {
	return db.RunMigrations(log, cfg, All)
}

// RunMigrationsDB applies pending schema migrations on an already open database.
func RunMigrationsDB(log *logger.Logger, sqlDB *sql.DB, driver string) error {
	return db.RunMigrationsDB(log, sqlDB, driver, All)
}
