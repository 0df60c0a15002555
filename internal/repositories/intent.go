package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// intentRepository implements IntentRepository
type intentRepository struct {
	db *database.Connection
}

// NewIntentRepository creates a new intent repository
func NewIntentRepository(db *database.Connection) IntentRepository {
	return &intentRepository{db: db}
}

// GetAll retrieves all intents for a tenant, newest first, with policies
func (r *intentRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Intent, error) {
	var intents []*models.Intent
	query := session(ctx, r.db).Preload("Policies").Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("intent_id DESC").Find(&intents).Error
	return intents, err
}

// GetByID retrieves an intent by ID within a tenant
func (r *intentRepository) GetByID(ctx context.Context, tenantID string, intentID int) (*models.Intent, error) {
	var intent models.Intent
	err := session(ctx, r.db).Preload("Policies").
		Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
		First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// GetByCode retrieves an intent by its code within a tenant
func (r *intentRepository) GetByCode(ctx context.Context, tenantID string, intentCode string) (*models.Intent, error) {
	var intent models.Intent
	err := session(ctx, r.db).
		Where("tenant_id = ? AND intent_code = ?", tenantID, intentCode).
		First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateWithPolicies persists the intent and its initial policies in one
// transaction. The intent row is inserted first so the generated intent_id
// can be stamped onto each policy; any policy failure rolls back the intent.
func (r *intentRepository) CreateWithPolicies(ctx context.Context, intent *models.Intent, policies []models.IntentPolicy) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Policies").Create(intent).Error; err != nil {
			return err
		}

		for i := range policies {
			policies[i].TenantID = intent.TenantID
			policies[i].IntentID = intent.IntentID
			if err := tx.Create(&policies[i]).Error; err != nil {
				return err
			}
		}

		intent.Policies = policies
		return nil
	})
}

// Update applies the given column changes and returns the refreshed intent
func (r *intentRepository) Update(ctx context.Context, tenantID string, intentID int, changes map[string]interface{}) (*models.Intent, error) {
	existing, err := r.GetByID(ctx, tenantID, intentID)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.Intent{}).
			Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, tenantID, intentID)
}

// Delete removes an intent together with its policies and validation rules
// in one transaction, reporting whether the intent row existed
func (r *intentRepository) Delete(ctx context.Context, tenantID string, intentID int) (bool, error) {
	deleted := false
	err := session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
			Delete(&models.IntentPolicy{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
			Delete(&models.ValidationRule{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
			Delete(&models.Intent{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}
