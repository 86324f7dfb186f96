package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// MemoryCache 行程內快取，TTL 過期加 LRU 淘汰
type MemoryCache struct {
	cfg   *config.Config
	mu    sync.Mutex
	store map[string]cacheEntry
	stats cacheStats
	done  chan struct{}
	once  sync.Once
}

// cacheEntry 快取條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryCache 創建記憶體快取並啟動清理協程
func NewMemoryCache(cfg *config.Config) *MemoryCache {
	m := &MemoryCache{
		cfg:   cfg,
		store: make(map[string]cacheEntry),
		done:  make(chan struct{}),
	}
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)
	return m
}

// Get 獲取快取值
func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++
	common.LogCacheHit("memory", key)
	return entry.value, true
}

// Set 設置快取值
// 容量滿時先清過期項目，仍滿則 LRU 淘汰一項
func (m *MemoryCache) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.cfg.Cache.MaxSize {
		m.cleanupLocked()
		if len(m.store) >= m.cfg.Cache.MaxSize {
			m.evictLRULocked()
		}
		if len(m.store) >= m.cfg.Cache.MaxSize {
			common.LogWarn("快取已滿",
				zap.Int("目前容量", len(m.store)),
			)
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.cfg.Cache.TTL),
		lastAccess: now,
	}
	return nil
}

// startCleanup 週期清理過期條目
func (m *MemoryCache) startCleanup() {
	ticker := time.NewTicker(m.cfg.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			evicted := m.cleanupLocked()
			m.mu.Unlock()
			if evicted > 0 {
				common.LogDebug("快取清理執行",
					zap.Int("清理數量", evicted),
				)
			}
		}
	}
}

// cleanupLocked 清除過期條目，呼叫端須持有鎖
func (m *MemoryCache) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰訪問次數最少、最久未使用的條目，呼叫端須持有鎖
func (m *MemoryCache) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestCount ||
			(entry.accessCount == lowestCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestCount = entry.accessCount
		}
	}
	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// Stats 快取統計資訊
func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.cfg.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close 關閉快取
func (m *MemoryCache) Close() error {
	m.once.Do(func() {
		close(m.done)
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
