package media

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Scheme prefixes every handle.
const Scheme = "media://"

// ErrNotFound is returned for unknown or released handles.
var ErrNotFound = errors.New("media: handle not found")

// Blob 一份图像载荷
type Blob struct {
	MimeType string
	Data     []byte
}

// Store 媒体句柄存储
type Store interface {
	// Put stores blob and returns a new handle.
	Put(ctx context.Context, blob Blob) (string, error)
	// Get returns the blob behind handle.
	Get(ctx context.Context, handle string) (Blob, error)
	// Release frees handle. Releasing an unknown handle is a no-op.
	Release(ctx context.Context, handle string) error
}

func newHandle() string {
	return Scheme + uuid.NewString()
}

// parseHandle returns the id part of a handle.
func parseHandle(handle string) (string, bool) {
	id, ok := strings.CutPrefix(handle, Scheme)
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// ReleaseAll releases every handle and returns the first error.
func ReleaseAll(ctx context.Context, s Store, handles []string) error {
	var first error
	for _, h := range handles {
		if err := s.Release(ctx, h); err != nil && first == nil {
			first = err
		}
	}
	return first
}
