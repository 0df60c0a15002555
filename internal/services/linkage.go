package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// configCache is the invalidation side of ConfigCacheService. Renaming a
// config through the datasource path mutates the config table, so cached
// by-name reads must be dropped here just like on direct config mutations.
type configCache interface {
	InvalidateTenant(ctx context.Context, tenantID string)
}

// LinkageSynchronizer keeps Datasource.connection_key and
// DatasourceConfig.name aligned. There is no foreign key between the two
// tables; synchronization is a set of directed reconciliation rules applied
// after specific mutations, never a bidirectional link.
type LinkageSynchronizer struct {
	logger         *logger.Logger
	datasourceRepo repositories.DatasourceRepository
	configRepo     repositories.DatasourceConfigRepository
	cache          configCache
}

// NewLinkageSynchronizer creates a new linkage synchronizer
func NewLinkageSynchronizer(
	logger *logger.Logger,
	datasourceRepo repositories.DatasourceRepository,
	configRepo repositories.DatasourceConfigRepository,
	cache *ConfigCacheService,
) *LinkageSynchronizer {
	return &LinkageSynchronizer{
		logger:         logger,
		datasourceRepo: datasourceRepo,
		configRepo:     configRepo,
		cache:          cache,
	}
}

// OnConfigCreated wires every datasource in the tenant whose datasource_type
// matches the new config's driver family to the new config's name. Callers
// run this inside the create's transaction so the insert and the repoint
// commit together.
func (ls *LinkageSynchronizer) OnConfigCreated(ctx context.Context, tenantID, driverFamily, configName string) error {
	ls.logger.WithTenant(tenantID).
		WithField("driver_family", driverFamily).
		WithField("config_name", configName).
		Info("Repointing datasources to new config")
	return ls.datasourceRepo.RepointByType(ctx, tenantID, driverFamily, configName)
}

// OnConfigNameChanged repoints every datasource keyed to the old config name
// onto the new one. Runs in its own transaction.
func (ls *LinkageSynchronizer) OnConfigNameChanged(ctx context.Context, tenantID, oldName, newName string) error {
	ls.logger.WithTenant(tenantID).
		WithField("old_name", oldName).
		WithField("new_name", newName).
		Info("Repointing datasources after config rename")
	return ls.datasourceRepo.RepointByKey(ctx, tenantID, oldName, newName)
}

// OnConfigDriverFamilyChanged wires every datasource whose datasource_type
// matches the config's new driver family onto the config's current name.
// Runs in its own transaction, independent of the name repoint; a failure
// between the two leaves partial synchronization.
func (ls *LinkageSynchronizer) OnConfigDriverFamilyChanged(ctx context.Context, tenantID, driverFamily, configName string) error {
	ls.logger.WithTenant(tenantID).
		WithField("driver_family", driverFamily).
		WithField("config_name", configName).
		Info("Repointing datasources after driver family change")
	return ls.datasourceRepo.RepointByType(ctx, tenantID, driverFamily, configName)
}

// OnDatasourceKeyChanged renames the config named after a datasource's old
// connection_key to the new key, if such a config exists. This is the inverse
// direction of synchronization: editing a datasource's key can rename a
// config.
func (ls *LinkageSynchronizer) OnDatasourceKeyChanged(ctx context.Context, tenantID, oldKey, newKey string) error {
	config, err := ls.configRepo.GetByName(ctx, tenantID, oldKey)
	if err != nil {
		return err
	}
	if config == nil {
		return nil
	}

	ls.logger.WithTenant(tenantID).
		WithField("config_id", config.ConfigID).
		WithField("old_name", oldKey).
		WithField("new_name", newKey).
		Info("Renaming config after datasource key change")

	_, err = ls.configRepo.Update(ctx, tenantID, config.ConfigID, map[string]interface{}{"name": newKey})
	if err != nil {
		return apperrors.FromDatabase(err, "datasource config")
	}

	ls.cache.InvalidateTenant(ctx, tenantID)
	return nil
}
