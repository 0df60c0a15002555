package repositories

import (
	"context"
	"errors"

	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/models"

	"gorm.io/gorm"
)

// validationRuleRepository implements ValidationRuleRepository
type validationRuleRepository struct {
	db *database.Connection
}

// NewValidationRuleRepository creates a new validation rule repository
func NewValidationRuleRepository(db *database.Connection) ValidationRuleRepository {
	return &validationRuleRepository{db: db}
}

// GetAll retrieves rules for a tenant, narrowed by the filter, in execution order
func (r *validationRuleRepository) GetAll(ctx context.Context, tenantID string, filter models.ValidationRuleFilter) ([]*models.ValidationRule, error) {
	var rules []*models.ValidationRule
	query := session(ctx, r.db).Preload("Datasource").Where("tenant_id = ?", tenantID)
	if filter.IntentID != 0 {
		query = query.Where("intent_id = ?", filter.IntentID)
	}
	if filter.LanguageCode != "" {
		query = query.Where("language_code = ?", filter.LanguageCode)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("intent_id, language_code, execution_order").Find(&rules).Error
	return rules, err
}

// GetByID retrieves a rule by ID within a tenant
func (r *validationRuleRepository) GetByID(ctx context.Context, tenantID string, ruleID int) (*models.ValidationRule, error) {
	var rule models.ValidationRule
	err := session(ctx, r.db).Preload("Datasource").
		Where("tenant_id = ? AND rule_id = ?", tenantID, ruleID).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// GetByIntentAndLanguage retrieves the active rules for an (intent, language)
// pair in execution order
func (r *validationRuleRepository) GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) ([]*models.ValidationRule, error) {
	var rules []*models.ValidationRule
	err := session(ctx, r.db).Preload("Datasource").
		Where("tenant_id = ? AND intent_id = ? AND language_code = ? AND is_active = ?",
			tenantID, intentID, languageCode, true).
		Order("execution_order").
		Find(&rules).Error
	return rules, err
}

// GetMaxExecutionOrder returns the highest execution order for the (intent,
// language) pair, or 0 when no rules exist
func (r *validationRuleRepository) GetMaxExecutionOrder(ctx context.Context, tenantID string, intentID int, languageCode string) (int, error) {
	var max int
	err := session(ctx, r.db).Model(&models.ValidationRule{}).
		Select("COALESCE(MAX(execution_order), 0)").
		Where("tenant_id = ? AND intent_id = ? AND language_code = ?", tenantID, intentID, languageCode).
		Scan(&max).Error
	return max, err
}

// ExistsByCode reports whether a rule with the code exists for the tenant+intent
func (r *validationRuleRepository) ExistsByCode(ctx context.Context, tenantID string, intentID int, ruleCode string) (bool, error) {
	var count int64
	err := session(ctx, r.db).Model(&models.ValidationRule{}).
		Where("tenant_id = ? AND intent_id = ? AND rule_code = ?", tenantID, intentID, ruleCode).
		Count(&count).Error
	return count > 0, err
}

// CountByDatasource counts the rules in a tenant referencing a datasource
func (r *validationRuleRepository) CountByDatasource(ctx context.Context, tenantID string, datasourceID int) (int64, error) {
	var count int64
	err := session(ctx, r.db).Model(&models.ValidationRule{}).
		Where("tenant_id = ? AND datasource_id = ?", tenantID, datasourceID).
		Count(&count).Error
	return count, err
}

// Create persists a new validation rule
func (r *validationRuleRepository) Create(ctx context.Context, rule *models.ValidationRule) error {
	return session(ctx, r.db).Create(rule).Error
}

// Update applies the given column changes and returns the refreshed rule
func (r *validationRuleRepository) Update(ctx context.Context, tenantID string, ruleID int, changes map[string]interface{}) (*models.ValidationRule, error) {
	existing, err := r.GetByID(ctx, tenantID, ruleID)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err = session(ctx, r.db).Model(&models.ValidationRule{}).
			Where("tenant_id = ? AND rule_id = ?", tenantID, ruleID).
			Updates(changes).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, tenantID, ruleID)
}

// Delete removes a rule, reporting whether a row was deleted
func (r *validationRuleRepository) Delete(ctx context.Context, tenantID string, ruleID int) (bool, error) {
	result := session(ctx, r.db).
		Where("tenant_id = ? AND rule_id = ?", tenantID, ruleID).
		Delete(&models.ValidationRule{})
	return result.RowsAffected > 0, result.Error
}
