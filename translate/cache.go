package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/BaSui01/fluxgen/internal/cache"
)

// Cache stores remote translations keyed by source text.
type Cache interface {
	Get(ctx context.Context, text string) (string, bool)
	Set(ctx context.Context, text, translated string)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "translate:" + hex.EncodeToString(sum[:])
}

// RedisCache 基于 internal/cache.Manager 的翻译缓存，读写失败按未命中处理
type RedisCache struct {
	manager *cache.Manager
	ttl     time.Duration
}

// NewRedisCache creates a RedisCache. ttl 0 uses the manager's default TTL.
func NewRedisCache(manager *cache.Manager, ttl time.Duration) *RedisCache {
	return &RedisCache{manager: manager, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, text string) (string, bool) {
	v, err := c.manager.Get(ctx, cacheKey(text))
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, text, translated string) {
	_ = c.manager.Set(ctx, cacheKey(text), translated, c.ttl)
}

// MemoryCache 进程内缓存，用于单机与测试
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(text)]
	return v, ok
}

func (c *MemoryCache) Set(_ context.Context, text, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(text)] = translated
}
