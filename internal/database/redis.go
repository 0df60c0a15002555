package database

import (
	"fmt"
	"time"

	"github.com/kartik7022/FlowEngine/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient builds the client backing the datasource config cache.
// With caching disabled it returns nil and the cache service runs in
// pass-through mode, so no Redis connection is ever opened.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}

	// Cache reads sit on the request path; a slow Redis should fail fast
	// and let the lookup fall through to Postgres.
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		PoolSize:     20,
		MinIdleConns: 2,
	})
}
