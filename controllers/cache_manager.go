package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
	defaultCacheTTL        = 5 * time.Minute
)

// CacheManager keeps versioned product-list entries in Redis. Any product
// write bumps the version, which invalidates every cached page at once.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(rdb *redis.Client) *CacheManager {
	return &CacheManager{redis: rdb, ttl: defaultCacheTTL}
}

func (cm *CacheManager) version(ctx context.Context) int64 {
	v, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (cm *CacheManager) listKey(version int64, page, limit int, category, vendor, search string) string {
	return fmt.Sprintf("%s%d:p%d:l%d:c%s:v%s:s%s", productListCachePrefix, version, page, limit, category, vendor, search)
}

// GetProductList returns a cached listing response, if present.
func (cm *CacheManager) GetProductList(ctx context.Context, page, limit int, category, vendor, search string) (map[string]interface{}, bool) {
	version := cm.version(ctx)
	if version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version, page, limit, category, vendor, search)).Result()
	if err != nil {
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetProductListAsync caches a listing response off the request path.
func (cm *CacheManager) SetProductListAsync(page, limit int, category, vendor, search string, response map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version := cm.version(ctx)
		if version == 0 {
			if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
				return
			}
			version = 1
		}

		payload, err := json.Marshal(response)
		if err != nil {
			return
		}
		if err := cm.redis.Set(ctx, cm.listKey(version, page, limit, category, vendor, search), payload, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version after a product write.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if err := cm.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump product cache version", zap.Error(err))
	}
}
