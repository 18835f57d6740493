package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Load when nothing has been saved.
var ErrSlotEmpty = errors.New("history slot is empty")

// Slot 单键存储：整个历史以一个 JSON 文档保存
type Slot interface {
	// Load returns the stored document or ErrSlotEmpty.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the document. It must be durable when it returns.
	Save(ctx context.Context, data []byte) error
	// Delete removes the document. Deleting an empty slot is not an error.
	Delete(ctx context.Context) error
}

// =============================================================================
// 💾 内存
// =============================================================================

// MemorySlot keeps the document in process memory.
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte{}, data...)
	return nil
}

func (s *MemorySlot) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// =============================================================================
// 📁 文件
// =============================================================================

// FileSlot stores the document in a single file, replaced atomically.
type FileSlot struct {
	path string
}

// NewFileSlot creates the parent directory of path if needed.
func NewFileSlot(path string) (*FileSlot, error) {
	if path == "" {
		return nil, fmt.Errorf("history file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileSlot{path: path}, nil
}

// Path returns the backing file.
func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return data, nil
}

// Save writes to a temp file, syncs it and renames it over the target.
func (s *FileSlot) Save(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write history file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename history file: %w", err)
	}
	return nil
}

func (s *FileSlot) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove history file: %w", err)
	}
	return nil
}
