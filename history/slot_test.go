package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/internal/cache"
	"github.com/BaSui01/fluxgen/internal/database"
)

// testSlot runs the Slot contract against s.
func testSlot(t *testing.T, s Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)
	require.NoError(t, s.Delete(ctx), "deleting an empty slot")

	require.NoError(t, s.Save(ctx, []byte(`[{"id":"a"}]`)))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, s.Save(ctx, []byte(`[]`)))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Delete(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	// end to end through a Store
	store := NewStore(s, zap.NewNop())
	store.Add(ctx, sampleResult(1), "a", "", catalog.QualityStandard)
	assert.Len(t, NewStore(s, zap.NewNop()).GetAll(ctx), 1, "a fresh store sees the saved document")
}

func TestMemorySlot(t *testing.T) {
	testSlot(t, NewMemorySlot())
}

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	s, err := NewFileSlot(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	testSlot(t, s)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "history.json", entries[0].Name())

	_, err = NewFileSlot("")
	assert.Error(t, err)
}

func newTestCache(t *testing.T) (*cache.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	m, err := cache.NewManager(cache.Config{Addr: mr.Addr(), KeyPrefix: "fluxgen:", DefaultTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, mr
}

func TestRedisSlot(t *testing.T) {
	m, mr := newTestCache(t)
	testSlot(t, NewRedisSlot(m, ""))

	assert.True(t, mr.Exists("fluxgen:"+DefaultKey))
	assert.Equal(t, time.Duration(0), mr.TTL("fluxgen:"+DefaultKey), "history never expires")
}

func newSQLitePool(t *testing.T) *database.PoolManager {
	t.Helper()
	pm, err := database.Open(database.DriverSQLite, "file::memory:", database.DefaultPoolConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pm.Close() })
	require.NoError(t, pm.DB().Migrator().CreateTable(&slotRecord{}))
	return pm
}

func TestNewGormSlot_SchemaMissing(t *testing.T) {
	pm, err := database.Open(database.DriverSQLite, "file::memory:", database.DefaultPoolConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pm.Close() })

	_, err = NewGormSlot(context.Background(), pm, "")
	assert.ErrorIs(t, err, ErrSchemaMissing)
}

func TestGormSlot_SQLite(t *testing.T) {
	pm := newSQLitePool(t)
	s, err := NewGormSlot(context.Background(), pm, "")
	require.NoError(t, err)
	testSlot(t, s)

	var count int64
	require.NoError(t, pm.DB().Model(&slotRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert keeps one row per key")
}

func TestGormSlot_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	pm := newSQLitePool(t)
	a, err := NewGormSlot(ctx, pm, "a")
	require.NoError(t, err)
	b, err := NewGormSlot(ctx, pm, "b")
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, []byte("A")))
	_, err = b.Load(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, b.Save(ctx, []byte("B")))
	require.NoError(t, a.Delete(ctx))
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", string(got))
}

func newPostgresMockSlot(t *testing.T) (*GormSlot, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	pm, err := database.NewPoolManager(db, database.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1}, zap.NewNop())
	require.NoError(t, err)
	return &GormSlot{pool: pm, key: DefaultKey}, mock
}

func TestGormSlot_Postgres(t *testing.T) {
	ctx := context.Background()
	s, mock := newPostgresMockSlot(t)

	mock.ExpectQuery(`SELECT \* FROM "history_slots" WHERE slot_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"slot_key", "value", "updated_at"}))
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	mock.ExpectQuery(`SELECT \* FROM "history_slots" WHERE slot_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"slot_key", "value", "updated_at"}).
			AddRow(DefaultKey, []byte(`[{"id":"x"}]`), time.Now()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(got))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "history_slots" .* ON CONFLICT \("slot_key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, s.Save(ctx, []byte(`[]`)))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "history_slots" WHERE slot_key = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, s.Delete(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSlot(t *testing.T) {
	ctx := context.Background()

	s, err := NewSlot(ctx, Config{Type: StoreMemory}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &MemorySlot{}, s)

	s, err = NewSlot(ctx, Config{Type: StoreFile, FilePath: filepath.Join(t.TempDir(), "h.json")}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &FileSlot{}, s)

	m, _ := newTestCache(t)
	s, err = NewSlot(ctx, Config{Type: StoreRedis}, Backends{Cache: m})
	require.NoError(t, err)
	assert.IsType(t, &RedisSlot{}, s)

	s, err = NewSlot(ctx, Config{Type: StoreDatabase, Key: "k"}, Backends{DB: newSQLitePool(t)})
	require.NoError(t, err)
	assert.IsType(t, &GormSlot{}, s)

	for _, typ := range []StoreType{StoreRedis, StoreDatabase, StoreMongo} {
		_, err = NewSlot(ctx, Config{Type: typ}, Backends{})
		assert.Error(t, err, typ)
	}
	_, err = NewSlot(ctx, Config{Type: "s3"}, Backends{})
	assert.Error(t, err)
}

// MongoSlot 需要真实服务：FLUXGEN_TEST_MONGO_URI=mongodb://localhost:27017
func TestMongoSlot(t *testing.T) {
	uri := os.Getenv("FLUXGEN_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FLUXGEN_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := ConnectMongo(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	coll := client.Database("fluxgen_test").Collection(DefaultMongoCollection)
	key := "test-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = NewMongoSlot(coll, key).Delete(context.Background()) })
	testSlot(t, NewMongoSlot(coll, key))
}
