package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// validationRuleService implements ValidationRuleService
type validationRuleService struct {
	logger         *logger.Logger
	ruleRepo       repositories.ValidationRuleRepository
	intentRepo     repositories.IntentRepository
	datasourceRepo repositories.DatasourceRepository
	validationSvc  *models.ValidationService
}

// NewValidationRuleService creates a new validation rule service
func NewValidationRuleService(
	logger *logger.Logger,
	ruleRepo repositories.ValidationRuleRepository,
	intentRepo repositories.IntentRepository,
	datasourceRepo repositories.DatasourceRepository,
	validationSvc *models.ValidationService,
) ValidationRuleService {
	return &validationRuleService{
		logger:         logger,
		ruleRepo:       ruleRepo,
		intentRepo:     intentRepo,
		datasourceRepo: datasourceRepo,
		validationSvc:  validationSvc,
	}
}

// GetRules retrieves rules narrowed by the filter
func (s *validationRuleService) GetRules(ctx context.Context, tenantID string, filter models.ValidationRuleFilter) ([]*models.ValidationRule, error) {
	return s.ruleRepo.GetAll(ctx, tenantID, filter)
}

// GetRule retrieves a rule by ID
func (s *validationRuleService) GetRule(ctx context.Context, tenantID string, ruleID int) (*models.ValidationRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperrors.NewNotFound("validation rule %d not found", ruleID)
	}
	return rule, nil
}

// GetRulesForIntent retrieves the active rules for an (intent, language)
// pair in execution order
func (s *validationRuleService) GetRulesForIntent(ctx context.Context, tenantID string, intentID int, languageCode string) ([]*models.ValidationRule, error) {
	if languageCode == "" {
		languageCode = models.DefaultLanguageCode
	}
	return s.ruleRepo.GetByIntentAndLanguage(ctx, tenantID, intentID, languageCode)
}

// GetNextExecutionOrder returns the next free execution order for the
// (intent, language) pair. Not enforced atomically; concurrent callers can
// pick the same order.
func (s *validationRuleService) GetNextExecutionOrder(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.NextOrderResponse, error) {
	if languageCode == "" {
		languageCode = models.DefaultLanguageCode
	}

	max, err := s.ruleRepo.GetMaxExecutionOrder(ctx, tenantID, intentID, languageCode)
	if err != nil {
		return nil, err
	}

	return &models.NextOrderResponse{
		IntentID:           intentID,
		LanguageCode:       languageCode,
		NextExecutionOrder: max + 1,
	}, nil
}

// CreateRule creates a validation rule. All referential and semantic checks
// run before the insert; the first failing check short-circuits.
func (s *validationRuleService) CreateRule(ctx context.Context, tenantID string, payload *models.ValidationRuleCreate) (*models.ValidationRule, error) {
	s.logger.WithIntent(tenantID, payload.IntentID).
		WithField("rule_code", payload.RuleCode).Info("Creating validation rule")

	payload.Normalize()
	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	intent, err := s.intentRepo.GetByID(ctx, tenantID, payload.IntentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, apperrors.NewNotFound("intent %d not found", payload.IntentID)
	}

	datasource, err := s.datasourceRepo.GetByID(ctx, tenantID, payload.DatasourceID)
	if err != nil {
		return nil, err
	}
	if datasource == nil {
		return nil, apperrors.NewNotFound("datasource %d not found", payload.DatasourceID)
	}
	if !datasource.IsActive {
		return nil, apperrors.NewValidation("datasource '%s' is inactive", datasource.Name)
	}

	taken, err := s.ruleRepo.ExistsByCode(ctx, tenantID, payload.IntentID, payload.RuleCode)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewAlreadyExists(
			"validation rule with code '%s' already exists for intent %d", payload.RuleCode, payload.IntentID)
	}

	if payload.ExecutionOrder < 1 {
		return nil, apperrors.NewValidation("execution_order must be at least 1")
	}
	if payload.Severity != models.SeverityCritical && payload.Severity != models.SeverityWarning {
		return nil, apperrors.NewValidation("severity must be CRITICAL or WARNING")
	}

	rule := &models.ValidationRule{
		IntentID:        payload.IntentID,
		LanguageCode:    payload.LanguageCode,
		TenantID:        tenantID,
		RuleCode:        payload.RuleCode,
		RuleName:        payload.RuleName,
		RuleDescription: payload.RuleDescription,
		DatasourceID:    payload.DatasourceID,
		ExecutionOrder:  payload.ExecutionOrder,
		Severity:        payload.Severity,
		IsActive:        true,
	}
	if payload.IsActive != nil {
		rule.IsActive = *payload.IsActive
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, apperrors.FromDatabase(err, "validation rule")
	}

	return s.ruleRepo.GetByID(ctx, tenantID, rule.RuleID)
}

// UpdateRule applies a partial update, re-validating only the fields present
// in the payload. Existence is checked first so an unknown rule reports
// NotFound regardless of what the payload carries.
func (s *validationRuleService) UpdateRule(ctx context.Context, tenantID string, ruleID int, payload *models.ValidationRuleUpdate) (*models.ValidationRule, error) {
	s.logger.WithTenant(tenantID).WithField("rule_id", ruleID).Info("Updating validation rule")

	current, err := s.ruleRepo.GetByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NewNotFound("validation rule %d not found", ruleID)
	}

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	if payload.IntentID != nil {
		intent, err := s.intentRepo.GetByID(ctx, tenantID, *payload.IntentID)
		if err != nil {
			return nil, err
		}
		if intent == nil {
			return nil, apperrors.NewNotFound("intent %d not found", *payload.IntentID)
		}
	}

	if payload.DatasourceID != nil {
		datasource, err := s.datasourceRepo.GetByID(ctx, tenantID, *payload.DatasourceID)
		if err != nil {
			return nil, err
		}
		if datasource == nil {
			return nil, apperrors.NewNotFound("datasource %d not found", *payload.DatasourceID)
		}
		if !datasource.IsActive {
			return nil, apperrors.NewValidation("datasource '%s' is inactive", datasource.Name)
		}
	}

	if payload.ExecutionOrder != nil && *payload.ExecutionOrder < 1 {
		return nil, apperrors.NewValidation("execution_order must be at least 1")
	}
	if payload.Severity != nil &&
		*payload.Severity != models.SeverityCritical && *payload.Severity != models.SeverityWarning {
		return nil, apperrors.NewValidation("severity must be CRITICAL or WARNING")
	}

	rule, err := s.ruleRepo.Update(ctx, tenantID, ruleID, payload.Changes())
	if err != nil {
		return nil, apperrors.FromDatabase(err, "validation rule")
	}
	if rule == nil {
		return nil, apperrors.NewNotFound("validation rule %d not found", ruleID)
	}
	return rule, nil
}

// DeleteRule removes a rule
func (s *validationRuleService) DeleteRule(ctx context.Context, tenantID string, ruleID int) error {
	s.logger.WithTenant(tenantID).WithField("rule_id", ruleID).Info("Deleting validation rule")

	deleted, err := s.ruleRepo.Delete(ctx, tenantID, ruleID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("validation rule %d not found", ruleID)
	}
	return nil
}
