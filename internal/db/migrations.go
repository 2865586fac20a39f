package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	UpDownSeparator     = "-- +migrate Up"
	downMarker          = "-- +migrate Down"
	dbPrefixReplacer    = "/*dbprefix*/"
	NoLimitMigrations   = 0 // indicate that there is no limit on the number of migrations to run
	migrationDirections = 2
)

type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrations opens the configured database and applies all pending migrations.
func RunMigrations(log *logger.Logger, cfg config.DatabaseConfig, migrations []Migration) error {
	db, err := NewDBFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("error creating DB %w", err)
	}
	defer db.Close()

	return RunMigrationsDB(log, db, cfg.Driver, migrations)
}

func RunMigrationsDB(log *logger.Logger, db *sql.DB, driver string, migrationsParam []Migration) error {
	return RunMigrationsDBExtended(log, db, driver, migrationsParam, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended is an extended version of RunMigrationsDB that allows
// dir: can be migrate.Up or migrate.Down
// maxMigrations: Will apply at most `max` migrations. Pass 0 for no limit (or use Exec)
func RunMigrationsDBExtended(log *logger.Logger,
	db *sql.DB,
	driver string,
	migrationsParam []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int) error {
	if driver == "" {
		driver = config.DriverSQLite
	}

	migs := &migrate.MemoryMigrationSource{Migrations: []*migrate.Migration{}}
	// In case of partial execution we ignore the base migrations
	if maxMigrations != NoLimitMigrations {
		migrate.SetIgnoreUnknown(true)
	}

	for _, m := range migrationsParam {
		prefixed := strings.ReplaceAll(m.SQL, dbPrefixReplacer, m.Prefix)
		splitted := strings.Split(prefixed, UpDownSeparator)

		if len(splitted) < migrationDirections {
			return fmt.Errorf("migration %s missing '%s' separator", m.ID, UpDownSeparator)
		}

		// splitted[0] holds the Down section, splitted[1] the Up section
		downSQL := splitted[0]
		if idx := strings.Index(downSQL, downMarker); idx != -1 {
			downSQL = downSQL[idx+len(downMarker):]
		}

		migs.Migrations = append(migs.Migrations, &migrate.Migration{
			Id:   m.Prefix + m.ID,
			Up:   []string{strings.TrimSpace(splitted[1])},
			Down: []string{strings.TrimSpace(downSQL)},
		})
	}

	var listMigrations strings.Builder
	for _, m := range migs.Migrations {
		listMigrations.WriteString(m.Id + ", ")
	}

	log.Debugf("running migrations: (max %d/%d) dialect %s migrations: %s", maxMigrations,
		len(migs.Migrations),
		driver,
		listMigrations.String())
	nMigrations, err := migrate.ExecMax(db, driver, migs, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migration (max %d/%d) migrations: %s . Err: %w",
			maxMigrations, len(migs.Migrations), listMigrations.String(), err)
	}

	log.Infof("successfully ran %d migrations from migrations: %s", nMigrations, listMigrations.String())
	return nil
}
