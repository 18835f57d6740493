package history

import (
	"context"

	"github.com/BaSui01/fluxgen/internal/cache"
)

// RedisSlot stores the document as one redis string without expiry.
type RedisSlot struct {
	cache *cache.Manager
	key   string
}

// NewRedisSlot uses key under the manager's prefix.
func NewRedisSlot(m *cache.Manager, key string) *RedisSlot {
	if key == "" {
		key = DefaultKey
	}
	return &RedisSlot{cache: m, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	v, err := s.cache.Get(ctx, s.key)
	if cache.IsCacheMiss(err) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.cache.Set(ctx, s.key, string(data), cache.NoExpiration)
}

func (s *RedisSlot) Delete(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}
