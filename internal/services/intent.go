package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// intentService implements IntentService
type intentService struct {
	logger        *logger.Logger
	intentRepo    repositories.IntentRepository
	validationSvc *models.ValidationService
}

// NewIntentService creates a new intent service
func NewIntentService(
	logger *logger.Logger,
	intentRepo repositories.IntentRepository,
	validationSvc *models.ValidationService,
) IntentService {
	return &intentService{
		logger:        logger,
		intentRepo:    intentRepo,
		validationSvc: validationSvc,
	}
}

// GetIntents retrieves all intents for a tenant
func (s *intentService) GetIntents(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Intent, error) {
	return s.intentRepo.GetAll(ctx, tenantID, activeOnly)
}

// GetIntent retrieves an intent by ID
func (s *intentService) GetIntent(ctx context.Context, tenantID string, intentID int) (*models.Intent, error) {
	intent, err := s.intentRepo.GetByID(ctx, tenantID, intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, apperrors.NewNotFound("intent %d not found", intentID)
	}
	return intent, nil
}

// CreateIntent creates an intent, persisting any initial policies in the same
// transaction so a policy failure rolls the intent back too
func (s *intentService) CreateIntent(ctx context.Context, tenantID string, payload *models.IntentCreate) (*models.Intent, error) {
	s.logger.WithTenant(tenantID).WithField("intent_code", payload.IntentCode).Info("Creating intent")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	existing, err := s.intentRepo.GetByCode(ctx, tenantID, payload.IntentCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyExists("intent with code '%s' already exists", payload.IntentCode)
	}

	intent := &models.Intent{
		IntentCode:  payload.IntentCode,
		TenantID:    tenantID,
		DisplayName: payload.DisplayName,
		Description: payload.Description,
		Category:    payload.Category,
		IsActive:    true,
	}
	if payload.IsActive != nil {
		intent.IsActive = *payload.IsActive
	}

	policies := make([]models.IntentPolicy, 0, len(payload.Policies))
	for i := range payload.Policies {
		pc := payload.Policies[i]
		pc.Normalize()
		policies = append(policies, models.IntentPolicy{
			TenantID:            tenantID,
			LanguageCode:        pc.LanguageCode,
			N8nOrchestrationURL: pc.N8nOrchestrationURL,
			AutoProcessMinConf:  pc.AutoProcessMinConf,
			ManualReviewMinConf: pc.ManualReviewMinConf,
			RerouteEmail:        pc.RerouteEmail,
			MultiIntentMode:     pc.MultiIntentMode,
			AllowMultiAuto:      pc.AllowMultiAuto,
			AllowSubsetAuto:     pc.AllowSubsetAuto,
		})
	}

	if err := s.intentRepo.CreateWithPolicies(ctx, intent, policies); err != nil {
		return nil, apperrors.FromDatabase(err, "intent")
	}

	return s.intentRepo.GetByID(ctx, tenantID, intent.IntentID)
}

// UpdateIntent applies a partial update to an intent
func (s *intentService) UpdateIntent(ctx context.Context, tenantID string, intentID int, payload *models.IntentUpdate) (*models.Intent, error) {
	s.logger.WithIntent(tenantID, intentID).Info("Updating intent")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	if payload.IntentCode != nil {
		existing, err := s.intentRepo.GetByCode(ctx, tenantID, *payload.IntentCode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.IntentID != intentID {
			return nil, apperrors.NewAlreadyExists("intent with code '%s' already exists", *payload.IntentCode)
		}
	}

	intent, err := s.intentRepo.Update(ctx, tenantID, intentID, payload.Changes())
	if err != nil {
		return nil, apperrors.FromDatabase(err, "intent")
	}
	if intent == nil {
		return nil, apperrors.NewNotFound("intent %d not found", intentID)
	}
	return intent, nil
}

// DeleteIntent removes an intent with its policies and validation rules
func (s *intentService) DeleteIntent(ctx context.Context, tenantID string, intentID int) error {
	s.logger.WithIntent(tenantID, intentID).Info("Deleting intent")

	deleted, err := s.intentRepo.Delete(ctx, tenantID, intentID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("intent %d not found", intentID)
	}
	return nil
}
