package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// tenantService implements TenantService
type tenantService struct {
	logger        *logger.Logger
	tenantRepo    repositories.TenantRepository
	validationSvc *models.ValidationService
}

// NewTenantService creates a new tenant service
func NewTenantService(
	logger *logger.Logger,
	tenantRepo repositories.TenantRepository,
	validationSvc *models.ValidationService,
) TenantService {
	return &tenantService{
		logger:        logger,
		tenantRepo:    tenantRepo,
		validationSvc: validationSvc,
	}
}

// GetTenants retrieves all tenants
func (s *tenantService) GetTenants(ctx context.Context, activeOnly bool) ([]*models.Tenant, error) {
	return s.tenantRepo.GetAll(ctx, activeOnly)
}

// GetTenant retrieves a tenant by ID
func (s *tenantService) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.NewNotFound("tenant '%s' not found", tenantID)
	}
	return tenant, nil
}

// ValidateTenant reports whether a tenant exists without mutating anything
func (s *tenantService) ValidateTenant(ctx context.Context, tenantID string) (*models.TenantValidateResponse, error) {
	exists, err := s.tenantRepo.Exists(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &models.TenantValidateResponse{Valid: false}, nil
	}
	return &models.TenantValidateResponse{Valid: true, TenantID: tenantID}, nil
}

// CreateTenant creates a new tenant
func (s *tenantService) CreateTenant(ctx context.Context, payload *models.TenantCreate) (*models.Tenant, error) {
	s.logger.WithTenant(payload.TenantID).Info("Creating tenant")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	exists, err := s.tenantRepo.Exists(ctx, payload.TenantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewAlreadyExists("tenant '%s' already exists", payload.TenantID)
	}

	tenant := &models.Tenant{
		TenantID:   payload.TenantID,
		TenantName: payload.TenantName,
		IsActive:   true,
	}
	if payload.IsActive != nil {
		tenant.IsActive = *payload.IsActive
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, apperrors.FromDatabase(err, "tenant")
	}
	return tenant, nil
}

// UpdateTenant applies a partial update to a tenant
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, payload *models.TenantUpdate) (*models.Tenant, error) {
	s.logger.WithTenant(tenantID).Info("Updating tenant")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.Update(ctx, tenantID, payload.Changes())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.NewNotFound("tenant '%s' not found", tenantID)
	}
	return tenant, nil
}

// DeleteTenant removes a tenant. Child rows in other tables are left in
// place; the tenant id simply stops resolving.
func (s *tenantService) DeleteTenant(ctx context.Context, tenantID string) error {
	s.logger.WithTenant(tenantID).Info("Deleting tenant")

	deleted, err := s.tenantRepo.Delete(ctx, tenantID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("tenant '%s' not found", tenantID)
	}
	return nil
}
