package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// datasourceConfigRepository implements DatasourceConfigRepository
type datasourceConfigRepository struct {
	db *database.Connection
}

// NewDatasourceConfigRepository creates a new datasource config repository
func NewDatasourceConfigRepository(db *database.Connection) DatasourceConfigRepository {
	return &datasourceConfigRepository{db: db}
}

// GetAll retrieves all configs for a tenant, newest first
func (r *datasourceConfigRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.DatasourceConfig, error) {
	var configs []*models.DatasourceConfig
	query := session(ctx, r.db).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("config_id DESC").Find(&configs).Error
	return configs, err
}

// GetByID retrieves a config by ID within a tenant
func (r *datasourceConfigRepository) GetByID(ctx context.Context, tenantID string, configID int) (*models.DatasourceConfig, error) {
	var config models.DatasourceConfig
	err := session(ctx, r.db).
		Where("tenant_id = ? AND config_id = ?", tenantID, configID).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetByName retrieves a config by name within a tenant
func (r *datasourceConfigRepository) GetByName(ctx context.Context, tenantID string, name string) (*models.DatasourceConfig, error) {
	var config models.DatasourceConfig
	err := session(ctx, r.db).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetByDriverFamily retrieves all configs in a tenant for a driver family
func (r *datasourceConfigRepository) GetByDriverFamily(ctx context.Context, tenantID string, driverFamily string) ([]*models.DatasourceConfig, error) {
	var configs []*models.DatasourceConfig
	err := session(ctx, r.db).
		Where("tenant_id = ? AND driver_family = ?", tenantID, driverFamily).
		Order("config_id DESC").
		Find(&configs).Error
	return configs, err
}

// GetByProtocol retrieves all configs in a tenant for a protocol
func (r *datasourceConfigRepository) GetByProtocol(ctx context.Context, tenantID string, protocol string) ([]*models.DatasourceConfig, error) {
	var configs []*models.DatasourceConfig
	err := session(ctx, r.db).
		Where("tenant_id = ? AND protocol = ?", tenantID, protocol).
		Order("config_id DESC").
		Find(&configs).Error
	return configs, err
}

// Create persists a new datasource config
func (r *datasourceConfigRepository) Create(ctx context.Context, config *models.DatasourceConfig) error {
	return session(ctx, r.db).Create(config).Error
}

// Update applies the given column changes and returns the refreshed config
func (r *datasourceConfigRepository) Update(ctx context.Context, tenantID string, configID int, changes map[string]interface{}) (*models.DatasourceConfig, error) {
	existing, err := r.GetByID(ctx, tenantID, configID)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.DatasourceConfig{}).
			Where("tenant_id = ? AND config_id = ?", tenantID, configID).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, tenantID, configID)
}

// Delete removes a config, reporting whether a row was deleted. Datasources
// pointing at the config's name keep their connection_key as-is.
func (r *datasourceConfigRepository) Delete(ctx context.Context, tenantID string, configID int) (bool, error) {
	result := session(ctx, r.db).
		Where("tenant_id = ? AND config_id = ?", tenantID, configID).
		Delete(&models.DatasourceConfig{})
	return result.RowsAffected > 0, result.Error
}
