package cmd

import (
	"database/sql"
	"fmt"

	"github.com/pingdeck/migrate/database"
	"github.com/pingdeck/migrate/database/postgres"
	"github.com/pingdeck/migrate/database/sqlite"
	"github.com/pingdeck/migrate/internal/config"
)

// resolveDatabaseURL loads pingdeck.toml and applies the flag > env >
// dotenv > toml resolution order.
func resolveDatabaseURL() (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return config.ResolveDatabaseURL(flagDatabaseURL, flagEnvironment, cfg)
}

// openDatabase opens the connection and picks the dialect driver for it.
// The caller owns the handle and must close it on every exit path.
func openDatabase(connString string) (*sql.DB, database.Driver, error) {
	var drv database.Driver
	switch database.DetectDialect(connString) {
	case database.DialectSQLite:
		drv = sqlite.NewDriver()
	default:
		drv = postgres.NewDriver()
	}

	db, err := sql.Open(database.SQLDriverName(connString), database.DSN(connString))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, drv, nil
}
