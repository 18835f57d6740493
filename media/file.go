package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// FileStore writes each blob to <dir>/<uuid><ext>.
// Suitable for a single-node server that serves images back over HTTP.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(_ context.Context, blob Blob) (string, error) {
	h := newHandle()
	id, _ := parseHandle(h)

	ext, ok := extByMime[strings.ToLower(blob.MimeType)]
	if !ok {
		ext = ".bin"
	}
	path := filepath.Join(s.dir, id+ext)

	// Atomic write: write to temp file then rename
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob.Data, 0644); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write media: %w", err)
	}
	return h, nil
}

func (s *FileStore) find(handle string) (string, error) {
	id, ok := parseHandle(handle)
	if !ok {
		return "", ErrNotFound
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, id+".*"))
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if !strings.HasSuffix(m, ".tmp") {
			return m, nil
		}
	}
	return "", ErrNotFound
}

func (s *FileStore) Get(_ context.Context, handle string) (Blob, error) {
	path, err := s.find(handle)
	if err != nil {
		return Blob{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Blob{}, ErrNotFound
	}
	if err != nil {
		return Blob{}, err
	}

	mt := "application/octet-stream"
	if ext := filepath.Ext(path); ext != ".bin" {
		if t := mime.TypeByExtension(ext); t != "" {
			mt = t
		}
	}
	return Blob{MimeType: mt, Data: data}, nil
}

func (s *FileStore) Release(_ context.Context, handle string) error {
	path, err := s.find(handle)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
