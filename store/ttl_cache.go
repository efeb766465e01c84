package store

import (
	"sync"
	"time"

	"github.com/rushteam/feedkit/core"
)

// TTLCache 是 core.Cache 的进程内实现：显式构造、显式注入，
// 替代早期实现里手动管理过期的包级全局 map。
// TTL 在构造时配置；now 可注入，测试用来拨动时钟。
type TTLCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// WithClock 注入时钟（测试用）。
func (c *TTLCache) WithClock(now func() time.Time) *TTLCache {
	c.now = now
	return c
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

func (c *TTLCache) Expired(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	return c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

var _ core.Cache = (*TTLCache)(nil)
