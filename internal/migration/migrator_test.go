package migration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appconfig "github.com/BaSui01/fluxgen/config"
	"github.com/BaSui01/fluxgen/internal/database"
)

func newSQLiteMigrator(t *testing.T) (*DefaultMigrator, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	m, err := NewMigrator(Config{Driver: database.DriverSQLite, DSN: dbPath}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, dbPath
}

func hasHistoryTable(t *testing.T, dbPath string) bool {
	t.Helper()
	pm, err := database.Open(database.DriverSQLite, dbPath, database.DefaultPoolConfig(), zap.NewNop())
	require.NoError(t, err)
	defer pm.Close()
	return pm.DB().Migrator().HasTable("history_slots")
}

func TestAvailableMigrations(t *testing.T) {
	for _, driver := range []string{database.DriverPostgres, database.DriverMySQL, database.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			migrations, err := availableMigrations(driver)
			require.NoError(t, err)
			require.Len(t, migrations, 2)
			assert.Equal(t, migrationFile{version: 1, name: "create_history_slots"}, migrations[0])
			assert.Equal(t, uint(2), migrations[1].version)
		})
	}

	_, err := availableMigrations("oracle")
	assert.Error(t, err)
}

func TestNewMigrator_InvalidConfig(t *testing.T) {
	_, err := NewMigrator(Config{Driver: database.DriverPostgres}, nil)
	assert.ErrorContains(t, err, "DSN is required")

	_, err = NewMigrator(Config{Driver: "oracle", DSN: "x"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrator_SQLite(t *testing.T) {
	ctx := context.Background()
	m, dbPath := newSQLiteMigrator(t)

	version, dirty, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up(ctx))
	require.NoError(t, m.Up(ctx), "up is idempotent")
	assert.True(t, hasHistoryTable(t, dbPath))

	info, err := m.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, &MigrationInfo{CurrentVersion: 2, TotalMigrations: 2, AppliedMigrations: 2}, info)

	require.NoError(t, m.Down(ctx))
	version, _, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[1].Applied)

	require.NoError(t, m.DownAll(ctx))
	assert.False(t, hasHistoryTable(t, dbPath))

	require.NoError(t, m.Goto(ctx, 1))
	require.NoError(t, m.Steps(ctx, 1))
	version, _, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestNewMigratorFromDatabaseConfig(t *testing.T) {
	cfg := appconfig.DefaultDatabaseConfig()
	cfg.Name = filepath.Join(t.TempDir(), "cfg.db")

	m, err := NewMigratorFromDatabaseConfig(cfg, nil)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Up(context.Background()))
	assert.True(t, hasHistoryTable(t, cfg.Name))

	_, err = NewMigratorFromConfig(nil, nil)
	assert.Error(t, err)
}

func TestCLI_Output(t *testing.T) {
	ctx := context.Background()
	m, _ := newSQLiteMigrator(t)
	var out bytes.Buffer
	cli := NewCLI(m)
	cli.SetOutput(&out)

	require.NoError(t, cli.RunVersion(ctx))
	assert.Contains(t, out.String(), "No migrations applied yet")

	out.Reset()
	require.NoError(t, cli.RunUp(ctx))
	assert.Contains(t, out.String(), "Current version: 2")

	out.Reset()
	require.NoError(t, cli.RunStatus(ctx))
	assert.Regexp(t, `000001\s+create_history_slots\s+applied`, out.String())
	assert.Contains(t, out.String(), "Total: 2, Applied: 2, Pending: 0")

	out.Reset()
	require.NoError(t, cli.RunForce(ctx, 1))
	require.NoError(t, cli.RunInfo(ctx))
	assert.Contains(t, out.String(), "Pending Migrations: 1")
}
