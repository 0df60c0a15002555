package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// intentPolicyRepository implements IntentPolicyRepository
type intentPolicyRepository struct {
	db *database.Connection
}

// NewIntentPolicyRepository creates a new intent policy repository
func NewIntentPolicyRepository(db *database.Connection) IntentPolicyRepository {
	return &intentPolicyRepository{db: db}
}

// GetAllWithIntent retrieves all policies for a tenant joined to their parent
// intent, ordered by (intent_code, language_code) for display
func (r *intentPolicyRepository) GetAllWithIntent(ctx context.Context, tenantID string) ([]*models.IntentPolicyWithIntent, error) {
	var policies []*models.IntentPolicyWithIntent
	err := session(ctx, r.db).Model(&models.IntentPolicy{}).
		Select("eivs.intent_policies.*, eivs.intents.intent_code AS intent_code, eivs.intents.display_name AS intent_display_name").
		Joins("JOIN eivs.intents ON eivs.intents.tenant_id = eivs.intent_policies.tenant_id AND eivs.intents.intent_id = eivs.intent_policies.intent_id").
		Where("eivs.intent_policies.tenant_id = ?", tenantID).
		Order("eivs.intents.intent_code, eivs.intent_policies.language_code").
		Scan(&policies).Error
	return policies, err
}

// GetAll retrieves all policies across all intents for a tenant
func (r *intentPolicyRepository) GetAll(ctx context.Context, tenantID string) ([]*models.IntentPolicy, error) {
	var policies []*models.IntentPolicy
	err := session(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("intent_id, language_code").
		Find(&policies).Error
	return policies, err
}

// GetByIntent retrieves all policies for one intent
func (r *intentPolicyRepository) GetByIntent(ctx context.Context, tenantID string, intentID int) ([]*models.IntentPolicy, error) {
	var policies []*models.IntentPolicy
	err := session(ctx, r.db).
		Where("tenant_id = ? AND intent_id = ?", tenantID, intentID).
		Order("language_code").
		Find(&policies).Error
	return policies, err
}

// GetByIntentAndLanguage retrieves the policy for one (intent, language) pair
func (r *intentPolicyRepository) GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.IntentPolicy, error) {
	var policy models.IntentPolicy
	err := session(ctx, r.db).
		Where("tenant_id = ? AND intent_id = ? AND language_code = ?", tenantID, intentID, languageCode).
		First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// Create persists a new intent policy
func (r *intentPolicyRepository) Create(ctx context.Context, policy *models.IntentPolicy) error {
	return session(ctx, r.db).Create(policy).Error
}

// Update applies the given column changes and returns the refreshed policy
func (r *intentPolicyRepository) Update(ctx context.Context, tenantID string, intentID int, languageCode string, changes map[string]interface{}) (*models.IntentPolicy, error) {
	existing, err := r.GetByIntentAndLanguage(ctx, tenantID, intentID, languageCode)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.IntentPolicy{}).
			Where("tenant_id = ? AND intent_id = ? AND language_code = ?", tenantID, intentID, languageCode).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByIntentAndLanguage(ctx, tenantID, intentID, languageCode)
}

// Delete removes a policy, reporting whether a row was deleted
func (r *intentPolicyRepository) Delete(ctx context.Context, tenantID string, intentID int, languageCode string) (bool, error) {
	result := session(ctx, r.db).
		Where("tenant_id = ? AND intent_id = ? AND language_code = ?", tenantID, intentID, languageCode).
		Delete(&models.IntentPolicy{})
	return result.RowsAffected > 0, result.Error
}
