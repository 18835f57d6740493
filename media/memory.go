package media

import (
	"context"
	"sync"
)

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

func (s *MemoryStore) Put(_ context.Context, blob Blob) (string, error) {
	h := newHandle()
	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)

	s.mu.Lock()
	s.blobs[h] = Blob{MimeType: blob.MimeType, Data: data}
	s.mu.Unlock()
	return h, nil
}

func (s *MemoryStore) Get(_ context.Context, handle string) (Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[handle]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) Release(_ context.Context, handle string) error {
	s.mu.Lock()
	delete(s.blobs, handle)
	s.mu.Unlock()
	return nil
}

// Len returns the number of live handles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
