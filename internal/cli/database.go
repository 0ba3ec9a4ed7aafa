package cli

import (
	"fmt"

	"github.com/naatacademy/naat-api/internal/config"
	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/entrypoint"
)

// openDatabase connects with the environment configuration. A non-empty
// sqlitePath switches to that SQLite file instead.
func openDatabase(sqlitePath string) (*database.Database, error) {
	dbCfg := entrypoint.DatabaseConfig(config.NewConfig())
	if sqlitePath != "" {
		dbCfg.Driver = database.DriverSQLite
		dbCfg.Path = sqlitePath
	}

	db, err := database.NewDatabase(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbCfg.Driver, err)
	}
	return db, nil
}
