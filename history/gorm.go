package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BaSui01/fluxgen/internal/database"
)

// slotRecord 每个槽一行
type slotRecord struct {
	SlotKey   string `gorm:"primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

func (slotRecord) TableName() string { return "history_slots" }

// saveRetries is the number of extra attempts on transient database errors.
const saveRetries = 2

// GormSlot stores the document as one row of history_slots.
type GormSlot struct {
	pool *database.PoolManager
	key  string
}

// ErrSchemaMissing is returned when history_slots has not been created.
var ErrSchemaMissing = errors.New("history_slots table missing, run `fluxgen migrate up`")

// NewGormSlot returns a slot for key. The table comes from the schema
// migrations; it is not created here.
func NewGormSlot(ctx context.Context, pool *database.PoolManager, key string) (*GormSlot, error) {
	if key == "" {
		key = DefaultKey
	}
	if !pool.DB().WithContext(ctx).Migrator().HasTable(&slotRecord{}) {
		return nil, ErrSchemaMissing
	}
	return &GormSlot{pool: pool, key: key}, nil
}

func (s *GormSlot) Load(ctx context.Context) ([]byte, error) {
	var rec slotRecord
	err := s.pool.DB().WithContext(ctx).Where("slot_key = ?", s.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load history row: %w", err)
	}
	return rec.Value, nil
}

func (s *GormSlot) Save(ctx context.Context, data []byte) error {
	rec := slotRecord{SlotKey: s.key, Value: data, UpdatedAt: time.Now().UTC()}
	return s.pool.WithTransactionRetry(ctx, saveRetries, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rec).Error
	})
}

func (s *GormSlot) Delete(ctx context.Context) error {
	err := s.pool.DB().WithContext(ctx).Where("slot_key = ?", s.key).Delete(&slotRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete history row: %w", err)
	}
	return nil
}
