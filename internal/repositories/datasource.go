package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// datasourceRepository implements DatasourceRepository
type datasourceRepository struct {
	db *database.Connection
}

// NewDatasourceRepository creates a new datasource repository
func NewDatasourceRepository(db *database.Connection) DatasourceRepository {
	return &datasourceRepository{db: db}
}

// GetAll retrieves all datasources for a tenant, newest first
func (r *datasourceRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Datasource, error) {
	var datasources []*models.Datasource
	query := session(ctx, r.db).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("datasource_id DESC").Find(&datasources).Error
	return datasources, err
}

// GetByID retrieves a datasource by ID within a tenant
func (r *datasourceRepository) GetByID(ctx context.Context, tenantID string, datasourceID int) (*models.Datasource, error) {
	var datasource models.Datasource
	err := session(ctx, r.db).
		Where("tenant_id = ? AND datasource_id = ?", tenantID, datasourceID).
		First(&datasource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &datasource, nil
}

// GetByName retrieves a datasource by name within a tenant
func (r *datasourceRepository) GetByName(ctx context.Context, tenantID string, name string) (*models.Datasource, error) {
	var datasource models.Datasource
	err := session(ctx, r.db).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&datasource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &datasource, nil
}

// Create persists a new datasource
func (r *datasourceRepository) Create(ctx context.Context, datasource *models.Datasource) error {
	return session(ctx, r.db).Create(datasource).Error
}

// Update applies the given column changes and returns the refreshed datasource
func (r *datasourceRepository) Update(ctx context.Context, tenantID string, datasourceID int, changes map[string]interface{}) (*models.Datasource, error) {
	existing, err := r.GetByID(ctx, tenantID, datasourceID)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.Datasource{}).
			Where("tenant_id = ? AND datasource_id = ?", tenantID, datasourceID).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, tenantID, datasourceID)
}

// Delete removes a datasource, reporting whether a row was deleted
func (r *datasourceRepository) Delete(ctx context.Context, tenantID string, datasourceID int) (bool, error) {
	result := session(ctx, r.db).
		Where("tenant_id = ? AND datasource_id = ?", tenantID, datasourceID).
		Delete(&models.Datasource{})
	return result.RowsAffected > 0, result.Error
}

// RepointByType sets connection_key on every datasource in the tenant whose
// datasource_type matches the driver family, active or not
func (r *datasourceRepository) RepointByType(ctx context.Context, tenantID, driverFamily, connectionKey string) error {
	return session(ctx, r.db).Model(&models.Datasource{}).
		Where("tenant_id = ? AND datasource_type = ?", tenantID, driverFamily).
		Update("connection_key", connectionKey).Error
}

// RepointByKey moves every datasource in the tenant from one connection_key
// to another; datasources with any other key are untouched
func (r *datasourceRepository) RepointByKey(ctx context.Context, tenantID, oldKey, newKey string) error {
	return session(ctx, r.db).Model(&models.Datasource{}).
		Where("tenant_id = ? AND connection_key = ?", tenantID, oldKey).
		Update("connection_key", newKey).Error
}
