package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
)

// datasourceService implements DatasourceService
type datasourceService struct {
	logger         *logger.Logger
	datasourceRepo repositories.DatasourceRepository
	ruleRepo       repositories.ValidationRuleRepository
	synchronizer   *LinkageSynchronizer
	validationSvc  *models.ValidationService
}

// NewDatasourceService creates a new datasource service
func NewDatasourceService(
	logger *logger.Logger,
	datasourceRepo repositories.DatasourceRepository,
	ruleRepo repositories.ValidationRuleRepository,
	synchronizer *LinkageSynchronizer,
	validationSvc *models.ValidationService,
) DatasourceService {
	return &datasourceService{
		logger:         logger,
		datasourceRepo: datasourceRepo,
		ruleRepo:       ruleRepo,
		synchronizer:   synchronizer,
		validationSvc:  validationSvc,
	}
}

// GetDatasources retrieves all datasources for a tenant
func (s *datasourceService) GetDatasources(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Datasource, error) {
	return s.datasourceRepo.GetAll(ctx, tenantID, activeOnly)
}

// GetDatasource retrieves a datasource by ID
func (s *datasourceService) GetDatasource(ctx context.Context, tenantID string, datasourceID int) (*models.Datasource, error) {
	datasource, err := s.datasourceRepo.GetByID(ctx, tenantID, datasourceID)
	if err != nil {
		return nil, err
	}
	if datasource == nil {
		return nil, apperrors.NewNotFound("datasource %d not found", datasourceID)
	}
	return datasource, nil
}

// CreateDatasource creates a datasource
func (s *datasourceService) CreateDatasource(ctx context.Context, tenantID string, payload *models.DatasourceCreate) (*models.Datasource, error) {
	s.logger.WithTenant(tenantID).WithField("name", payload.Name).Info("Creating datasource")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	existing, err := s.datasourceRepo.GetByName(ctx, tenantID, payload.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyExists("datasource with name '%s' already exists", payload.Name)
	}

	datasource := &models.Datasource{
		Name:           payload.Name,
		DatasourceType: payload.DatasourceType,
		ConnectionKey:  payload.ConnectionKey,
		Description:    payload.Description,
		TenantID:       tenantID,
		IsActive:       true,
	}
	if payload.IsActive != nil {
		datasource.IsActive = *payload.IsActive
	}

	if err := s.datasourceRepo.Create(ctx, datasource); err != nil {
		return nil, apperrors.FromDatabase(err, "datasource")
	}
	return datasource, nil
}

// UpdateDatasource applies a partial update to a datasource. A changed
// connection_key additionally renames the config named after the old key.
func (s *datasourceService) UpdateDatasource(ctx context.Context, tenantID string, datasourceID int, payload *models.DatasourceUpdate) (*models.Datasource, error) {
	s.logger.WithDatasource(tenantID, datasourceID).Info("Updating datasource")

	if err := s.validationSvc.ValidateStruct(payload); err != nil {
		return nil, err
	}

	current, err := s.datasourceRepo.GetByID(ctx, tenantID, datasourceID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NewNotFound("datasource %d not found", datasourceID)
	}

	if payload.Name != nil && *payload.Name != current.Name {
		existing, err := s.datasourceRepo.GetByName(ctx, tenantID, *payload.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewAlreadyExists("datasource with name '%s' already exists", *payload.Name)
		}
	}

	oldKey := current.ConnectionKey

	datasource, err := s.datasourceRepo.Update(ctx, tenantID, datasourceID, payload.Changes())
	if err != nil {
		return nil, apperrors.FromDatabase(err, "datasource")
	}
	if datasource == nil {
		return nil, apperrors.NewNotFound("datasource %d not found", datasourceID)
	}

	if payload.ConnectionKey != nil && *payload.ConnectionKey != oldKey {
		if err := s.synchronizer.OnDatasourceKeyChanged(ctx, tenantID, oldKey, *payload.ConnectionKey); err != nil {
			return nil, err
		}
	}

	return datasource, nil
}

// DeleteDatasource removes a datasource unless validation rules still
// reference it
func (s *datasourceService) DeleteDatasource(ctx context.Context, tenantID string, datasourceID int) error {
	s.logger.WithDatasource(tenantID, datasourceID).Info("Deleting datasource")

	datasource, err := s.datasourceRepo.GetByID(ctx, tenantID, datasourceID)
	if err != nil {
		return err
	}
	if datasource == nil {
		return apperrors.NewNotFound("datasource %d not found", datasourceID)
	}

	refs, err := s.ruleRepo.CountByDatasource(ctx, tenantID, datasourceID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperrors.NewValidation(
			"datasource '%s' is referenced by %d validation rule(s) and cannot be deleted", datasource.Name, refs)
	}

	deleted, err := s.datasourceRepo.Delete(ctx, tenantID, datasourceID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("datasource %d not found", datasourceID)
	}
	return nil
}
