package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// RedisCache 以 Redis 為後端的快取，多實例部署時共用抽取結果
type RedisCache struct {
	cfg    *config.Config
	client *redis.Client
}

// NewRedisCache 創建 Redis 快取並驗證連線
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("Redis 快取已初始化",
		zap.String("位址", cfg.Cache.RedisAddr),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)
	return &RedisCache{cfg: cfg, client: client}, nil
}

// Get 獲取快取值
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		common.LogCacheMiss("redis", key)
		return "", false
	}
	if err != nil {
		common.LogWarn("Redis 快取讀取失敗",
			zap.Error(err),
		)
		return "", false
	}
	common.LogCacheHit("redis", key)
	return value, true
}

// Set 設置快取值
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, r.cfg.Cache.TTL).Err()
}

// Close 關閉 Redis 連線
func (r *RedisCache) Close() error {
	return r.client.Close()
}
