package cache

import (
	"context"
	"fmt"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// Cache 抽取結果快取介面
// key 由呼叫端以 purpose 與輸入文字構成，value 為序列化後的結果
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
	Close() error
}

// New 依設定建立快取後端，未啟用時回傳 nil
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("快取未啟用")
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "memory":
		return NewMemoryCache(cfg), nil
	case "redis":
		return NewRedisCache(cfg)
	}
	return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
}

// Key 組合快取鍵：用途前綴加上輸入文字的雜湊
func Key(purpose, text string) string {
	return purpose + ":" + common.HashText(common.NormalizeSpace(text))
}
