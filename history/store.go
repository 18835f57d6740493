package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/types"
)

// =============================================================================
// 📚 历史记录存储
// =============================================================================

// Store 有界、最新优先的历史记录。所有修改由互斥锁串行化，
// 返回前已写入 Slot。
type Store struct {
	mu       sync.Mutex
	slot     Slot
	capacity int
	newID    func() string
	onRemove RemoveFunc
	logger   *zap.Logger
}

// RemoveFunc receives items that left the store through eviction, deletion,
// Clear or Import. It runs after the write succeeded, outside the store lock.
type RemoveFunc func(ctx context.Context, removed []Item)

// Option configures a Store.
type Option func(*Store)

// WithCapacity overrides MaxHistory. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithRemoveHook registers fn for removed items, typically to release their
// media handles.
func WithRemoveHook(fn RemoveFunc) Option {
	return func(s *Store) { s.onRemove = fn }
}

// NewStore creates a Store over slot.
func NewStore(slot Slot, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slot:     slot,
		capacity: MaxHistory,
		newID:    newItemID,
		logger:   logger.With(zap.String("component", "history")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newItemID 时间有序 + 随机
func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Capacity returns the maximum number of items kept.
func (s *Store) Capacity() int { return s.capacity }

// GetAll returns items most-recent-first. Unreadable or corrupt storage
// yields an empty list.
func (s *Store) GetAll(ctx context.Context) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := s.load(ctx)
	return items
}

// Add records result at the head and evicts the oldest items beyond capacity.
// A failed write is logged; the returned item is valid either way. When the
// slot could not be read, nothing is written so the stored list survives.
func (s *Store) Add(ctx context.Context, result generation.Result, prompt, negative string, mode catalog.QualityMode) Item {
	item := Item{
		Result:         result,
		ID:             s.newID(),
		Prompt:         prompt,
		NegativePrompt: negative,
		QualityMode:    mode,
	}

	s.mu.Lock()
	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("history unreadable, item not recorded", zap.String("id", item.ID), zap.Error(err))
		return item
	}

	items = append([]Item{item}, items...)
	var evicted []Item
	if len(items) > s.capacity {
		evicted = append(evicted, items[s.capacity:]...)
		items = items[:s.capacity]
	}
	if err := s.save(ctx, items); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to save history", zap.String("id", item.ID), zap.Error(err))
		return item
	}
	s.mu.Unlock()

	s.removed(ctx, evicted)
	return item
}

// DeleteByID removes the item with id. Unknown ids are a no-op.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var (
		kept    = make([]Item, 0, len(items))
		removed []Item
	)
	for _, it := range items {
		if it.ID == id {
			removed = append(removed, it)
		} else {
			kept = append(kept, it)
		}
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return nil
	}
	if err := s.save(ctx, kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.removed(ctx, removed)
	return nil
}

// Clear empties the store.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	items, _ := s.load(ctx)
	if err := s.slot.Delete(ctx); err != nil {
		s.mu.Unlock()
		return storageError("clear history", err)
	}
	s.mu.Unlock()

	s.removed(ctx, items)
	return nil
}

// ExportAll returns the full list as 2-space indented JSON.
func (s *Store) ExportAll(ctx context.Context) ([]byte, error) {
	items := s.GetAll(ctx)
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, types.NewError(types.ErrInternalError, "encode history export").WithCause(err)
	}
	return data, nil
}

// Import replaces the store with an exported document, keeping the first
// Capacity items. Previous items absent from the document are removed.
func (s *Store) Import(ctx context.Context, doc []byte) (int, error) {
	items, err := decode(doc)
	if err != nil {
		return 0, types.NewValidationError("invalid history document").WithCause(err)
	}
	for i, it := range items {
		if it.ID == "" {
			return 0, types.NewValidationError(fmt.Sprintf("history item %d has no id", i))
		}
	}
	if len(items) > s.capacity {
		items = items[:s.capacity]
	}

	s.mu.Lock()
	previous, _ := s.load(ctx)
	if err := s.save(ctx, items); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.mu.Unlock()

	s.removed(ctx, dropped(previous, items))
	return len(items), nil
}

// dropped returns the items of before whose media URL no item of after uses.
func dropped(before, after []Item) []Item {
	live := make(map[string]struct{}, len(after))
	for _, it := range after {
		live[it.URL] = struct{}{}
	}
	var out []Item
	for _, it := range before {
		if _, ok := live[it.URL]; !ok {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) removed(ctx context.Context, items []Item) {
	if s.onRemove != nil && len(items) > 0 {
		s.onRemove(ctx, items)
	}
}

// Stats reports the item count, the compact JSON size in KB (2 decimals)
// and the style of the newest item.
func (s *Store) Stats(ctx context.Context) Stats {
	items := s.GetAll(ctx)
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("failed to size history", zap.Error(err))
	}

	st := Stats{
		Total:           len(items),
		SizeKB:          math.Round(float64(len(data))/1024*100) / 100,
		MostRecentStyle: NoStyle,
	}
	if len(items) > 0 && items[0].Style != "" {
		st.MostRecentStyle = items[0].Style
	}
	return st
}

// load reads the slot; caller holds mu. Missing or corrupt documents are an
// empty list with a nil error. A read failure is an empty list plus the
// storage error, so writers can avoid overwriting data they never saw.
func (s *Store) load(ctx context.Context) ([]Item, error) {
	data, err := s.slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return []Item{}, nil
	}
	if err != nil {
		s.logger.Error("failed to load history", zap.Error(err))
		return []Item{}, storageError("load history", err)
	}
	items, err := decode(data)
	if err != nil {
		s.logger.Error("history document is corrupt, treating as empty", zap.Error(err))
		return []Item{}, nil
	}
	if len(items) > s.capacity {
		items = items[:s.capacity]
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return storageError("encode history", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return storageError("save history", err)
	}
	return nil
}

func decode(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func storageError(msg string, err error) *types.Error {
	return types.NewError(types.ErrStorageFailed, msg).
		WithCause(err).
		WithHTTPStatus(http.StatusInternalServerError)
}
