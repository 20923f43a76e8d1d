package utils

import (
	"context"
	"time"

	"catering/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the catalog cache client. It stays nil when no Redis address
// is configured or the server could not be reached at startup.
var CacheClient *redis.Client

// InitCache connects the catalog cache on REDIS_CACHE_DB.
func InitCache() *redis.Client {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	return CacheClient
}

func newRedisClient(db int, purpose string) *redis.Client {
	logger := GetLogger()
	if config.AppConfig.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, redis disabled", zap.String("purpose", purpose))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("failed to connect to redis", zap.String("purpose", purpose), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
