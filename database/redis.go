package database

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient parses REDIS_URL, falling back to the default address
// when the URL is malformed.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		redisURL = "redis://redis:6379"
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		opts = &redis.Options{Addr: "redis:6379", DB: 0}
	}
	return redis.NewClient(opts)
}
