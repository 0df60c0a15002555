package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// tenantRepository implements TenantRepository
type tenantRepository struct {
	db *database.Connection
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *database.Connection) TenantRepository {
	return &tenantRepository{db: db}
}

// GetAll retrieves all tenants, newest first
func (r *tenantRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	query := session(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

// GetByID retrieves a tenant by ID
func (r *tenantRepository) GetByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := session(ctx, r.db).First(&tenant, "tenant_id = ?", tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Exists reports whether a tenant with the given ID is registered
func (r *tenantRepository) Exists(ctx context.Context, tenantID string) (bool, error) {
	var count int64
	err := session(ctx, r.db).Model(&models.Tenant{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count > 0, err
}

// Create persists a new tenant
func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return session(ctx, r.db).Create(tenant).Error
}

// Update applies the given column changes and returns the refreshed tenant
func (r *tenantRepository) Update(ctx context.Context, tenantID string, changes map[string]interface{}) (*models.Tenant, error) {
	existing, err := r.GetByID(ctx, tenantID)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.Tenant{}).
			Where("tenant_id = ?", tenantID).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, tenantID)
}

// Delete removes a tenant, reporting whether a row was deleted
func (r *tenantRepository) Delete(ctx context.Context, tenantID string) (bool, error) {
	result := session(ctx, r.db).Delete(&models.Tenant{}, "tenant_id = ?", tenantID)
	return result.RowsAffected > 0, result.Error
}
