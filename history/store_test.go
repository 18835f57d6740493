package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/types"
)

func sampleResult(i int) generation.Result {
	return generation.Result{
		URL:       fmt.Sprintf("media://%d", i),
		Model:     "flux",
		Seed:      int64(i),
		Width:     1024,
		Height:    768,
		Style:     "anime",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(time.RFC3339Nano),
		MimeType:  "image/png",
		Steps:     20,
		Guidance:  7.5,
	}
}

// failingSlot loads fine and refuses writes.
type failingSlot struct {
	MemorySlot
	saveErr error
}

func (s *failingSlot) Save(context.Context, []byte) error { return s.saveErr }

func TestStore_AddAndGetAll(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop())

	assert.Empty(t, s.GetAll(ctx))
	first := s.Add(ctx, sampleResult(1), "a cat", "blurry", catalog.QualityEconomy)
	second := s.Add(ctx, sampleResult(2), "a dog", "", catalog.QualityUltra)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	items := s.GetAll(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0], "newest first")
	assert.Equal(t, first, items[1])
	assert.Equal(t, "a cat", items[1].Prompt)
	assert.Equal(t, "blurry", items[1].NegativePrompt)
	assert.Equal(t, catalog.QualityEconomy, items[1].QualityMode)
	assert.Equal(t, int64(1), items[1].Seed)
}

func TestStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop())

	var ids []string
	for i := 0; i < MaxHistory+5; i++ {
		ids = append(ids, s.Add(ctx, sampleResult(i), "p", "", catalog.QualityStandard).ID)
	}

	items := s.GetAll(ctx)
	require.Len(t, items, MaxHistory)
	assert.Equal(t, ids[len(ids)-1], items[0].ID)
	assert.Equal(t, ids[5], items[MaxHistory-1].ID)

	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}
	for _, id := range ids[:5] {
		assert.False(t, present[id], "oldest items evicted")
	}
}

func TestStore_Capacity(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), nil, WithCapacity(3), WithCapacity(-1))
	assert.Equal(t, 3, s.Capacity())
	for i := 0; i < 10; i++ {
		s.Add(ctx, sampleResult(i), "p", "", catalog.QualityStandard)
	}
	assert.Len(t, s.GetAll(ctx), 3)
}

func TestStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop())
	a := s.Add(ctx, sampleResult(1), "a", "", catalog.QualityStandard)
	b := s.Add(ctx, sampleResult(2), "b", "", catalog.QualityStandard)

	before := s.GetAll(ctx)
	require.NoError(t, s.DeleteByID(ctx, "missing"))
	assert.Equal(t, before, s.GetAll(ctx))

	require.NoError(t, s.DeleteByID(ctx, a.ID))
	items := s.GetAll(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop())
	s.Add(ctx, sampleResult(1), "a", "", catalog.QualityStandard)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.GetAll(ctx))
	assert.Equal(t, Stats{Total: 0, SizeKB: 0, MostRecentStyle: NoStyle}, s.Stats(ctx))
}

func TestStore_ExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop())
	for i := 0; i < 3; i++ {
		s.Add(ctx, sampleResult(i), fmt.Sprintf("prompt %d", i), "", catalog.QualityStandard)
	}

	doc, err := s.ExportAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "\n  {\n    \"url\"", "two-space indentation")

	var reloaded []Item
	require.NoError(t, json.Unmarshal(doc, &reloaded))
	assert.Equal(t, s.GetAll(ctx), reloaded)

	other := NewStore(NewMemorySlot(), zap.NewNop())
	n, err := other.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, reloaded, other.GetAll(ctx))
}

func TestStore_ExportEmpty(t *testing.T) {
	doc, err := NewStore(NewMemorySlot(), nil).ExportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))
}

func TestStore_Import(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), nil, WithCapacity(2))

	_, err := s.Import(ctx, []byte(`{"not":"a list"}`))
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidRequest))

	_, err = s.Import(ctx, []byte(`[{"url":"x"}]`))
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidRequest), "items need ids")

	n, err := s.Import(ctx, []byte(`[{"id":"1"},{"id":"2"},{"id":"3"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	items := s.GetAll(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
}

func TestStore_CorruptStorageIsEmpty(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)
	slot := NewMemorySlot()
	require.NoError(t, slot.Save(ctx, []byte("{corrupt")))

	s := NewStore(slot, zap.New(core))
	assert.Empty(t, s.GetAll(ctx))
	assert.Equal(t, 1, logs.FilterMessage("history document is corrupt, treating as empty").Len())

	// the next add overwrites the corrupt document
	s.Add(ctx, sampleResult(1), "a", "", catalog.QualityStandard)
	assert.Len(t, s.GetAll(ctx), 1)
}

func TestStore_AddWriteFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)
	s := NewStore(&failingSlot{saveErr: errors.New("disk full")}, zap.New(core))

	item := s.Add(ctx, sampleResult(1), "a", "", catalog.QualityStandard)
	assert.NotEmpty(t, item.ID)
	assert.Empty(t, s.GetAll(ctx))
	assert.Equal(t, 1, logs.FilterMessage("failed to save history").Len())

	err := s.DeleteByID(ctx, "x")
	assert.NoError(t, err, "nothing to delete, nothing written")
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), nil, WithIDGenerator(func() string { return "fixed" }))
	assert.Equal(t, NoStyle, s.Stats(ctx).MostRecentStyle)

	r := sampleResult(1)
	s.Add(ctx, r, "a", "", catalog.QualityStandard)
	r.Style = "cyberpunk"
	s.Add(ctx, r, "b", "", catalog.QualityStandard)

	st := s.Stats(ctx)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, "cyberpunk", st.MostRecentStyle)

	data, err := json.Marshal(s.GetAll(ctx))
	require.NoError(t, err)
	want := float64(int(float64(len(data))/1024*100+0.5)) / 100
	assert.InDelta(t, want, st.SizeKB, 1e-9)
	assert.Greater(t, st.SizeKB, 0.0)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), zap.NewNop(), WithCapacity(50))

	var wg sync.WaitGroup
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(ctx, sampleResult(i), "p", "", catalog.QualityStandard)
		}()
	}
	wg.Wait()

	items := s.GetAll(ctx)
	assert.Len(t, items, 50)
	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("CST", 8*3600))
	assert.Equal(t, "flux-ai-history-2026-10-17.json", ExportFileName(ts))
}

// 属性：任意 add/delete 序列下，Store 与简单模型一致且不超过容量
func TestProperty_Store_MatchesModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		capacity := rapid.IntRange(1, 8).Draw(rt, "capacity")
		next := 0
		s := NewStore(NewMemorySlot(), nil, WithCapacity(capacity), WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}))

		var model []string
		ops := rapid.IntRange(1, 40).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			if len(model) > 0 && rapid.Bool().Draw(rt, "delete") {
				idx := rapid.IntRange(0, len(model)-1).Draw(rt, "idx")
				id := model[idx]
				if err := s.DeleteByID(ctx, id); err != nil {
					rt.Fatal(err)
				}
				model = append(model[:idx:idx], model[idx+1:]...)
				continue
			}
			it := s.Add(ctx, sampleResult(i), "p", "", catalog.QualityStandard)
			model = append([]string{it.ID}, model...)
			if len(model) > capacity {
				model = model[:capacity]
			}
		}

		items := s.GetAll(ctx)
		if len(items) > capacity {
			rt.Fatalf("len %d exceeds capacity %d", len(items), capacity)
		}
		got := make([]string, len(items))
		for i, it := range items {
			got[i] = it.ID
		}
		if fmt.Sprint(got) != fmt.Sprint(model) {
			rt.Fatalf("got %v, want %v", got, model)
		}
	})
}

// unreadableSlot fails every read.
type unreadableSlot struct {
	MemorySlot
	loadErr error
	saves   int
}

func (s *unreadableSlot) Load(context.Context) ([]byte, error) { return nil, s.loadErr }

func (s *unreadableSlot) Save(ctx context.Context, data []byte) error {
	s.saves++
	return s.MemorySlot.Save(ctx, data)
}

// removeRecorder collects the URLs handed to the remove hook.
type removeRecorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *removeRecorder) hook(_ context.Context, items []Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.urls = append(r.urls, it.URL)
	}
}

func (r *removeRecorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

func TestStore_RemoveHook(t *testing.T) {
	ctx := context.Background()
	rec := &removeRecorder{}
	next := 0
	s := NewStore(NewMemorySlot(), nil, WithCapacity(2), WithRemoveHook(rec.hook),
		WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}))

	for i := 1; i <= 4; i++ {
		s.Add(ctx, sampleResult(i), "p", "", catalog.QualityStandard)
	}
	assert.Equal(t, []string{"media://1", "media://2"}, rec.got(), "evicted oldest first")

	require.NoError(t, s.DeleteByID(ctx, "id-4"))
	require.NoError(t, s.DeleteByID(ctx, "missing"))
	assert.Equal(t, []string{"media://1", "media://2", "media://4"}, rec.got())

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, []string{"media://1", "media://2", "media://4", "media://3"}, rec.got())
	assert.Empty(t, s.GetAll(ctx))
}

func TestStore_ImportReleasesOnlyDroppedItems(t *testing.T) {
	ctx := context.Background()
	rec := &removeRecorder{}
	s := NewStore(NewMemorySlot(), nil, WithRemoveHook(rec.hook))

	s.Add(ctx, sampleResult(1), "p", "", catalog.QualityStandard)
	s.Add(ctx, sampleResult(2), "p", "", catalog.QualityStandard)

	_, err := s.Import(ctx, []byte(`[{"id":"x","url":"media://2"},{"id":"y","url":"https://cdn/a.png"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"media://1"}, rec.got())

	_, err = s.Import(ctx, []byte(`not json`))
	require.Error(t, err)
	assert.Len(t, rec.got(), 1, "rejected documents remove nothing")
}

func TestStore_UnreadableSlotIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)
	rec := &removeRecorder{}
	slot := &unreadableSlot{loadErr: errors.New("connection reset")}
	s := NewStore(slot, zap.New(core), WithRemoveHook(rec.hook))

	item := s.Add(ctx, sampleResult(1), "p", "", catalog.QualityStandard)
	assert.NotEmpty(t, item.ID)
	assert.Zero(t, slot.saves, "a failed read must not replace the stored list")
	assert.Equal(t, 1, logs.FilterMessage("history unreadable, item not recorded").Len())

	err := s.DeleteByID(ctx, "any")
	assert.True(t, types.IsErrorCode(err, types.ErrStorageFailed))
	assert.Zero(t, slot.saves)

	assert.Empty(t, s.GetAll(ctx))
	assert.Empty(t, rec.got())
}
