package migration

import (
	"fmt"

	"go.uber.org/zap"

	appconfig "github.com/BaSui01/fluxgen/config"
)

// NewMigratorFromConfig creates a migrator for the configured history database
func NewMigratorFromConfig(cfg *appconfig.Config, logger *zap.Logger) (*DefaultMigrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return NewMigratorFromDatabaseConfig(cfg.Database, logger)
}

// NewMigratorFromDatabaseConfig creates a migrator from database configuration
func NewMigratorFromDatabaseConfig(dbCfg appconfig.DatabaseConfig, logger *zap.Logger) (*DefaultMigrator, error) {
	return NewMigrator(Config{
		Driver:    dbCfg.Driver,
		DSN:       dbCfg.DSN(),
		TableName: DefaultTableName,
	}, logger)
}
