package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mdatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/internal/database"
)

// =============================================================================
// Embedded Migration Files
// =============================================================================

//go:embed migrations
var migrationsFS embed.FS

// DefaultTableName 记录已应用版本的表
const DefaultTableName = "schema_migrations"

// =============================================================================
// Types and Interfaces
// =============================================================================

// MigrationStatus represents the status of a migration
type MigrationStatus struct {
	Version uint
	Name    string
	Applied bool
	Dirty   bool
}

// MigrationInfo contains information about the current migration state
type MigrationInfo struct {
	CurrentVersion    uint
	Dirty             bool
	TotalMigrations   int
	AppliedMigrations int
	PendingMigrations int
}

// Config holds the configuration for the migrator
type Config struct {
	// Driver: postgres, mysql, sqlite（与 database.Open 相同）
	Driver string
	// DSN 与 GORM 连接使用同一格式
	DSN string

	// TableName 默认 schema_migrations
	TableName string

	// LockTimeout 获取迁移锁的超时
	LockTimeout time.Duration
}

// Migrator defines the interface for database migrations
type Migrator interface {
	// Up applies all pending migrations
	Up(ctx context.Context) error
	// Down rolls back the last migration
	Down(ctx context.Context) error
	// DownAll rolls back all migrations
	DownAll(ctx context.Context) error
	// Steps applies (n > 0) or rolls back (n < 0) n migrations
	Steps(ctx context.Context, n int) error
	// Goto migrates to a specific version
	Goto(ctx context.Context, version uint) error
	// Force sets the migration version without running migrations
	Force(ctx context.Context, version int) error
	// Version returns the current migration version
	Version(ctx context.Context) (uint, bool, error)
	// Status returns the status of all migrations
	Status(ctx context.Context) ([]MigrationStatus, error)
	// Info returns information about the current migration state
	Info(ctx context.Context) (*MigrationInfo, error)
	// Close closes the migrator and releases resources
	Close() error
}

// =============================================================================
// Default Migrator Implementation
// =============================================================================

// DefaultMigrator 基于 golang-migrate。连接通过 database.Open 建立，
// 与历史存储使用同一套驱动（SQLite 为纯 Go 实现）。
type DefaultMigrator struct {
	config  Config
	pool    *database.PoolManager
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// NewMigrator opens its own connection and prepares the embedded migrations
// for cfg.Driver.
func NewMigrator(cfg Config, logger *zap.Logger) (*DefaultMigrator, error) {
	if cfg.DSN == "" && cfg.Driver != database.DriverSQLite {
		return nil, errors.New("database DSN is required")
	}
	if _, err := sourceDir(cfg.Driver); err != nil {
		return nil, err
	}
	if cfg.TableName == "" {
		cfg.TableName = DefaultTableName
	}
	if cfg.LockTimeout == 0 {
		cfg.LockTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := database.Open(cfg.Driver, cfg.DSN, database.PoolConfig{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	m := &DefaultMigrator{
		config: cfg,
		pool:   pool,
		logger: logger.With(zap.String("component", "migration")),
	}
	if err := m.init(); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to initialize migrator: %w", err)
	}
	return m, nil
}

func (m *DefaultMigrator) init() error {
	dbDriver, err := m.createDatabaseDriver()
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	dir, _ := sourceDir(m.config.Driver)
	sourceDriver, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to create source driver: %w", err)
	}

	m.migrate, err = migrate.NewWithInstance("iofs", sourceDriver, m.config.Driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.migrate.LockTimeout = m.config.LockTimeout
	m.migrate.Log = migrateLogger{m.logger}
	return nil
}

// createDatabaseDriver wraps the pool's *sql.DB for golang-migrate
func (m *DefaultMigrator) createDatabaseDriver() (mdatabase.Driver, error) {
	db := m.pool.SQLDB()
	switch m.config.Driver {
	case database.DriverPostgres:
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: m.config.TableName})
	case database.DriverMySQL:
		return mysql.WithInstance(db, &mysql.Config{MigrationsTable: m.config.TableName})
	case database.DriverSQLite:
		return sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: m.config.TableName})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}
}

func sourceDir(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres, database.DriverMySQL, database.DriverSQLite:
		return path.Join("migrations", driver), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q (supported: postgres, mysql, sqlite)", driver)
	}
}

// Up applies all pending migrations
func (m *DefaultMigrator) Up(ctx context.Context) error {
	if err := m.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Down rolls back the last migration
func (m *DefaultMigrator) Down(ctx context.Context) error {
	if err := m.migrate.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// DownAll rolls back all migrations
func (m *DefaultMigrator) DownAll(ctx context.Context) error {
	if err := m.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down all failed: %w", err)
	}
	return nil
}

// Steps applies or rolls back n migrations
func (m *DefaultMigrator) Steps(ctx context.Context, n int) error {
	if err := m.migrate.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration steps failed: %w", err)
	}
	return nil
}

// Goto migrates to a specific version
func (m *DefaultMigrator) Goto(ctx context.Context, version uint) error {
	if err := m.migrate.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration goto failed: %w", err)
	}
	return nil
}

// Force sets the migration version without running migrations
func (m *DefaultMigrator) Force(ctx context.Context, version int) error {
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("migration force failed: %w", err)
	}
	return nil
}

// Version returns the current migration version; 0 when nothing is applied.
func (m *DefaultMigrator) Version(ctx context.Context) (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

// Status returns the status of all migrations
func (m *DefaultMigrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	currentVersion, dirty, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	migrations, err := availableMigrations(m.config.Driver)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, mig := range migrations {
		statuses = append(statuses, MigrationStatus{
			Version: mig.version,
			Name:    mig.name,
			Applied: mig.version <= currentVersion,
			Dirty:   dirty && mig.version == currentVersion,
		})
	}
	return statuses, nil
}

// Info returns information about the current migration state
func (m *DefaultMigrator) Info(ctx context.Context) (*MigrationInfo, error) {
	currentVersion, dirty, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	migrations, err := availableMigrations(m.config.Driver)
	if err != nil {
		return nil, err
	}

	applied := 0
	for _, mig := range migrations {
		if mig.version <= currentVersion {
			applied++
		}
	}
	return &MigrationInfo{
		CurrentVersion:    currentVersion,
		Dirty:             dirty,
		TotalMigrations:   len(migrations),
		AppliedMigrations: applied,
		PendingMigrations: len(migrations) - applied,
	}, nil
}

// Close closes the migrator and its connection
func (m *DefaultMigrator) Close() error {
	var errs []error
	if m.migrate != nil {
		sourceErr, dbErr := m.migrate.Close()
		errs = append(errs, sourceErr, dbErr)
	}
	errs = append(errs, m.pool.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close migrator: %w", err)
	}
	return nil
}

// migrationFile represents a migration file
type migrationFile struct {
	version uint
	name    string
}

// availableMigrations lists the embedded migrations for driver by version
func availableMigrations(driver string) ([]migrationFile, error) {
	dir, err := sourceDir(driver)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	seen := make(map[uint]bool)
	var migrations []migrationFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		// 000001_create_history_slots.up.sql
		num, rest, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.ParseUint(num, 10, 32)
		if err != nil || seen[uint(version)] {
			continue
		}
		seen[uint(version)] = true
		migrations = append(migrations, migrationFile{
			version: uint(version),
			name:    strings.TrimSuffix(rest, ".up.sql"),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

// migrateLogger 把 golang-migrate 的日志转到 zap
type migrateLogger struct {
	logger *zap.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}
