package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kartik7022/FlowEngine/internal/config"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss indicates the requested key is not cached
var ErrCacheMiss = fmt.Errorf("cache miss")

// ConfigCacheService caches datasource config lookups in Redis. It is
// disabled-safe: with caching off or no client wired, every call degrades to
// a no-op and reads fall through to the repository.
type ConfigCacheService struct {
	client *redis.Client
	logger *logger.Logger
	ttl    time.Duration
	active bool
}

// NewConfigCacheService creates a new config cache service
func NewConfigCacheService(client *redis.Client, cfg *config.Config, logger *logger.Logger) *ConfigCacheService {
	return &ConfigCacheService{
		client: client,
		logger: logger,
		ttl:    time.Duration(cfg.Cache.ConfigTTL) * time.Second,
		active: cfg.Cache.Enabled && client != nil,
	}
}

// Enabled reports whether the cache will serve reads
func (cs *ConfigCacheService) Enabled() bool {
	return cs.active
}

func (cs *ConfigCacheService) nameKey(tenantID, name string) string {
	return fmt.Sprintf("eivs:config:%s:name:%s", tenantID, name)
}

func (cs *ConfigCacheService) tenantPattern(tenantID string) string {
	return fmt.Sprintf("eivs:config:%s:*", tenantID)
}

// GetByName retrieves a cached config by name, ErrCacheMiss when absent
func (cs *ConfigCacheService) GetByName(ctx context.Context, tenantID, name string) (*models.DatasourceConfig, error) {
	if !cs.active {
		return nil, ErrCacheMiss
	}

	val, err := cs.client.Get(ctx, cs.nameKey(tenantID, name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached config '%s': %w", name, err)
	}

	var config models.DatasourceConfig
	if err := json.Unmarshal([]byte(val), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached config '%s': %w", name, err)
	}
	return &config, nil
}

// SetByName caches a config under its name
func (cs *ConfigCacheService) SetByName(ctx context.Context, config *models.DatasourceConfig) error {
	if !cs.active {
		return nil
	}

	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config '%s': %w", config.Name, err)
	}
	return cs.client.Set(ctx, cs.nameKey(config.TenantID, config.Name), data, cs.ttl).Err()
}

// InvalidateTenant drops every cached config for a tenant. Called after any
// config mutation; repoints and renames make per-key invalidation fragile.
func (cs *ConfigCacheService) InvalidateTenant(ctx context.Context, tenantID string) {
	if !cs.active {
		return
	}

	keys, err := cs.client.Keys(ctx, cs.tenantPattern(tenantID)).Result()
	if err != nil {
		cs.logger.WithError(err).WithField("tenant_id", tenantID).Warn("Failed to scan config cache keys")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := cs.client.Del(ctx, keys...).Err(); err != nil {
		cs.logger.WithError(err).WithField("tenant_id", tenantID).Warn("Failed to invalidate config cache")
	}
}
