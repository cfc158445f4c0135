package inmemorycache

import (
	"encoding/json"
	"sync"
	"time"
)

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

// Cache stores JSON encoded values under string keys.
type Cache interface {
	Get(key string, dst any) (bool, error)
	Set(key string, value any, ttl time.Duration) error
}

type InMemoryCache struct {
	cache           map[string]cacheEntry
	mutex           sync.Mutex
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewInMemoryCacheProvider(cleanupInterval time.Duration) *InMemoryCache {
	provider := &InMemoryCache{
		cache:           make(map[string]cacheEntry),
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go provider.startCleanup()

	return provider
}

// Get decodes the cached value into dst. It reports false for missing or expired keys.
func (m *InMemoryCache) Get(key string, dst any) (bool, error) {
	m.mutex.Lock()
	entry, exists := m.cache[key]
	if exists && time.Now().After(entry.expiration) {
		delete(m.cache, key)
		exists = false
	}
	m.mutex.Unlock()

	if !exists {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, err
	}

	return true, nil
}

func (m *InMemoryCache) Set(key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cache[key] = cacheEntry{
		data:       jsonData,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Len counts entries, including expired ones not yet swept.
func (m *InMemoryCache) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.cache)
}

func (m *InMemoryCache) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for k, v := range m.cache {
				if now.After(v.expiration) {
					delete(m.cache, k)
				}
			}
			m.mutex.Unlock()
		}
	}
}
