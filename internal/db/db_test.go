package db

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	"github.com/russross/meddler"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
)

func testDBConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.sqlite")}
	cfg.ApplyDefaults()
	return cfg
}

func TestNewDBFromConfig(t *testing.T) {
	cfg := testDBConfig(t)

	sqlDB, err := NewDBFromConfig(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	var journal string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&journal))
	require.Equal(t, "wal", journal)

	_, err = NewDBFromConfig(config.DatabaseConfig{Driver: "oracle"})
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestDialect(t *testing.T) {
	d, err := Dialect(config.DriverSQLite)
	require.NoError(t, err)
	require.Equal(t, meddler.SQLite, d)

	d, err = Dialect(config.DriverPostgres)
	require.NoError(t, err)
	require.Equal(t, meddler.PostgreSQL, d)

	_, err = Dialect("mysql")
	require.Error(t, err)
}

const testMigration = `
-- +migrate Down
DROP TABLE IF EXISTS /*dbprefix*/blocks;

-- +migrate Up
CREATE TABLE /*dbprefix*/blocks (
	hash   TEXT PRIMARY KEY,
	parent TEXT
);
`

func TestRunMigrationsDB_UpAndDown(t *testing.T) {
	cfg := testDBConfig(t)
	sqlDB, err := NewDBFromConfig(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	migs := []Migration{{ID: "001_blocks.sql", SQL: testMigration, Prefix: "t_"}}
	log := logger.NewNopLogger()

	require.NoError(t, RunMigrationsDB(log, sqlDB, cfg.Driver, migs))
	_, err = sqlDB.Exec(`INSERT INTO t_blocks (hash, parent) VALUES ('a', 'b')`)
	require.NoError(t, err)

	// re-running is a no-op
	require.NoError(t, RunMigrationsDB(log, sqlDB, cfg.Driver, migs))

	require.NoError(t, RunMigrationsDBExtended(log, sqlDB, cfg.Driver, migs, migrate.Down, NoLimitMigrations))
	_, err = sqlDB.Exec(`SELECT 1 FROM t_blocks`)
	require.Error(t, err)
}

func TestRunMigrationsDB_MissingSeparator(t *testing.T) {
	cfg := testDBConfig(t)
	sqlDB, err := NewDBFromConfig(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	err = RunMigrationsDB(logger.NewNopLogger(), sqlDB, cfg.Driver,
		[]Migration{{ID: "broken.sql", SQL: "CREATE TABLE x (id INTEGER);"}})
	require.ErrorContains(t, err, "missing '-- +migrate Up' separator")
}

type hashRow struct {
	Hash   common.Hash  `meddler:"hash,hash"`
	Parent *common.Hash `meddler:"parent,hash"`
}

func TestHashMeddler(t *testing.T) {
	cfg := testDBConfig(t)
	sqlDB, err := NewDBFromConfig(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`CREATE TABLE hashes (hash CHAR(64) NOT NULL, parent CHAR(64))`)
	require.NoError(t, err)

	h := common.HexToHash("0xfe")
	require.NoError(t, meddler.SQLite.Insert(sqlDB, "hashes", &hashRow{Hash: h}))

	var raw string
	require.NoError(t, sqlDB.QueryRow(`SELECT hash FROM hashes`).Scan(&raw))
	require.Equal(t, HashToColumn(h), raw)
	require.Len(t, raw, 64)

	var got hashRow
	require.NoError(t, meddler.SQLite.QueryRow(sqlDB, &got, `SELECT hash, parent FROM hashes`))
	require.Equal(t, h, got.Hash)
	require.Nil(t, got.Parent)
}
