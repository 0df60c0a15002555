package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// intentPolicyService implements IntentPolicyService
type intentPolicyService struct {
	logger        *logger.Logger
	policyRepo    repositories.IntentPolicyRepository
	intentRepo    repositories.IntentRepository
	validationSvc *models.ValidationService
}

// NewIntentPolicyService creates a new intent policy service
func NewIntentPolicyService(
	logger *logger.Logger,
	policyRepo repositories.IntentPolicyRepository,
	intentRepo repositories.IntentRepository,
	validationSvc *models.ValidationService,
) IntentPolicyService {
	return &intentPolicyService{
		logger:        logger,
		policyRepo:    policyRepo,
		intentRepo:    intentRepo,
		validationSvc: validationSvc,
	}
}

// GetPoliciesWithIntent retrieves every policy joined to its parent intent,
// ordered by intent code then language code
func (s *intentPolicyService) GetPoliciesWithIntent(ctx context.Context, tenantID string) ([]*models.IntentPolicyWithIntent, error) {
	return s.policyRepo.GetAllWithIntent(ctx, tenantID)
}

// GetPolicies retrieves every policy for a tenant
func (s *intentPolicyService) GetPolicies(ctx context.Context, tenantID string) ([]*models.IntentPolicy, error) {
	return s.policyRepo.GetAll(ctx, tenantID)
}

// GetPoliciesForIntent retrieves the policies of one intent
func (s *intentPolicyService) GetPoliciesForIntent(ctx context.Context, tenantID string, intentID int) ([]*models.IntentPolicy, error) {
	intent, err := s.intentRepo.GetByID(ctx, tenantID, intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, apperrors.NewNotFound("intent %d not found", intentID)
	}
	return s.policyRepo.GetByIntent(ctx, tenantID, intentID)
}

// GetPolicy retrieves one policy by its (intent, language) key
func (s *intentPolicyService) GetPolicy(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.IntentPolicy, error) {
	policy, err := s.policyRepo.GetByIntentAndLanguage(ctx, tenantID, intentID, languageCode)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, apperrors.NewNotFound("policy for intent %d language '%s' not found", intentID, languageCode)
	}
	return policy, nil
}

// CreatePolicy adds a per-language policy to an existing intent
func (s *intentPolicyService) CreatePolicy(ctx context.Context, tenantID string, intentID int, payload *models.IntentPolicyCreate) (*models.IntentPolicy, error) {
	s.logger.WithIntent(tenantID, intentID).Info("Creating intent policy")

	payload.Normalize()
	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	intent, err := s.intentRepo.GetByID(ctx, tenantID, intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, apperrors.NewNotFound("intent %d not found", intentID)
	}

	existing, err := s.policyRepo.GetByIntentAndLanguage(ctx, tenantID, intentID, payload.LanguageCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyExists(
			"policy for intent %d language '%s' already exists", intentID, payload.LanguageCode)
	}

	policy := &models.IntentPolicy{
		TenantID:            tenantID,
		IntentID:            intentID,
		LanguageCode:        payload.LanguageCode,
		N8nOrchestrationURL: payload.N8nOrchestrationURL,
		AutoProcessMinConf:  payload.AutoProcessMinConf,
		ManualReviewMinConf: payload.ManualReviewMinConf,
		RerouteEmail:        payload.RerouteEmail,
		MultiIntentMode:     payload.MultiIntentMode,
		AllowMultiAuto:      payload.AllowMultiAuto,
		AllowSubsetAuto:     payload.AllowSubsetAuto,
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, apperrors.FromDatabase(err, "intent policy")
	}
	return policy, nil
}

// UpdatePolicy applies a partial update to a policy
func (s *intentPolicyService) UpdatePolicy(ctx context.Context, tenantID string, intentID int, languageCode string, payload *models.IntentPolicyUpdate) (*models.IntentPolicy, error) {
	s.logger.WithIntent(tenantID, intentID).
		WithField("language_code", languageCode).Info("Updating intent policy")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.Update(ctx, tenantID, intentID, languageCode, payload.Changes())
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, apperrors.NewNotFound("policy for intent %d language '%s' not found", intentID, languageCode)
	}
	return policy, nil
}

// DeletePolicy removes one policy
func (s *intentPolicyService) DeletePolicy(ctx context.Context, tenantID string, intentID int, languageCode string) error {
	s.logger.WithIntent(tenantID, intentID).
		WithField("language_code", languageCode).Info("Deleting intent policy")

	deleted, err := s.policyRepo.Delete(ctx, tenantID, intentID, languageCode)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("policy for intent %d language '%s' not found", intentID, languageCode)
	}
	return nil
}
