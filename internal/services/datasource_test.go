package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/config"
	"github.com/kartik7022/FlowEngine/internal/models"
)

func newDatasourceService(dsRepo *MockDatasourceRepository, ruleRepo *MockValidationRuleRepository, configRepo *MockDatasourceConfigRepository) DatasourceService {
	cache := NewConfigCacheService(nil, &config.Config{}, createTestLogger())
	synchronizer := NewLinkageSynchronizer(createTestLogger(), dsRepo, configRepo, cache)
	return NewDatasourceService(createTestLogger(), dsRepo, ruleRepo, synchronizer, models.NewValidationService())
}

func TestCreateDatasource(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with a unique name", func(t *testing.T) {
		dsRepo := &MockDatasourceRepository{}
		dsRepo.On("GetByName", ctx, "acme", "orders").Return(nil, nil)
		dsRepo.On("Create", ctx, mock.AnythingOfType("*models.Datasource")).Return(nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, &MockDatasourceConfigRepository{})
		ds, err := svc.CreateDatasource(ctx, "acme", &models.DatasourceCreate{
			Name:           "orders",
			DatasourceType: "postgres",
			ConnectionKey:  "pg-main",
		})

		require.NoError(t, err)
		assert.Equal(t, "acme", ds.TenantID)
		assert.True(t, ds.IsActive)
	})

	t.Run("rejects a duplicate name in the tenant", func(t *testing.T) {
		dsRepo := &MockDatasourceRepository{}
		dsRepo.On("GetByName", ctx, "acme", "orders").Return(&models.Datasource{DatasourceID: 1, Name: "orders"}, nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, &MockDatasourceConfigRepository{})
		_, err := svc.CreateDatasource(ctx, "acme", &models.DatasourceCreate{
			Name:           "orders",
			DatasourceType: "postgres",
			ConnectionKey:  "pg-main",
		})

		assert.True(t, apperrors.IsAlreadyExists(err))
	})
}

func TestUpdateDatasourceKeyChangeRenamesConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("renames the config named after the old key", func(t *testing.T) {
		newKey := "pg-replica"
		dsRepo := &MockDatasourceRepository{}
		configRepo := &MockDatasourceConfigRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)
		dsRepo.On("Update", ctx, "acme", 5, map[string]interface{}{"connection_key": "pg-replica"}).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-replica"}, nil)
		configRepo.On("GetByName", ctx, "acme", "pg-main").
			Return(&models.DatasourceConfig{ConfigID: 3, Name: "pg-main"}, nil)
		configRepo.On("Update", ctx, "acme", 3, map[string]interface{}{"name": "pg-replica"}).
			Return(&models.DatasourceConfig{ConfigID: 3, Name: "pg-replica"}, nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, configRepo)
		ds, err := svc.UpdateDatasource(ctx, "acme", 5, &models.DatasourceUpdate{ConnectionKey: &newKey})

		require.NoError(t, err)
		assert.Equal(t, "pg-replica", ds.ConnectionKey)
		configRepo.AssertExpectations(t)
	})

	t.Run("no matching config is a no-op", func(t *testing.T) {
		newKey := "pg-replica"
		dsRepo := &MockDatasourceRepository{}
		configRepo := &MockDatasourceConfigRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)
		dsRepo.On("Update", ctx, "acme", 5, map[string]interface{}{"connection_key": "pg-replica"}).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-replica"}, nil)
		configRepo.On("GetByName", ctx, "acme", "pg-main").Return(nil, nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, configRepo)
		_, err := svc.UpdateDatasource(ctx, "acme", 5, &models.DatasourceUpdate{ConnectionKey: &newKey})

		require.NoError(t, err)
		configRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unchanged key leaves configs alone", func(t *testing.T) {
		sameKey := "pg-main"
		dsRepo := &MockDatasourceRepository{}
		configRepo := &MockDatasourceConfigRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)
		dsRepo.On("Update", ctx, "acme", 5, map[string]interface{}{"connection_key": "pg-main"}).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, configRepo)
		_, err := svc.UpdateDatasource(ctx, "acme", 5, &models.DatasourceUpdate{ConnectionKey: &sameKey})

		require.NoError(t, err)
		configRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything, mock.Anything)
	})
}

type recordingConfigCache struct {
	invalidated []string
}

func (r *recordingConfigCache) InvalidateTenant(_ context.Context, tenantID string) {
	r.invalidated = append(r.invalidated, tenantID)
}

func TestUpdateDatasourceKeyChangeDropsCachedConfigs(t *testing.T) {
	ctx := context.Background()

	newService := func(dsRepo *MockDatasourceRepository, configRepo *MockDatasourceConfigRepository, cache configCache) DatasourceService {
		synchronizer := &LinkageSynchronizer{
			logger:         createTestLogger(),
			datasourceRepo: dsRepo,
			configRepo:     configRepo,
			cache:          cache,
		}
		return NewDatasourceService(createTestLogger(), dsRepo, &MockValidationRuleRepository{}, synchronizer, models.NewValidationService())
	}

	t.Run("rename invalidates the tenant's cached configs", func(t *testing.T) {
		newKey := "pg-replica"
		cache := &recordingConfigCache{}
		dsRepo := &MockDatasourceRepository{}
		configRepo := &MockDatasourceConfigRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)
		dsRepo.On("Update", ctx, "acme", 5, map[string]interface{}{"connection_key": "pg-replica"}).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-replica"}, nil)
		configRepo.On("GetByName", ctx, "acme", "pg-main").
			Return(&models.DatasourceConfig{ConfigID: 3, Name: "pg-main"}, nil)
		configRepo.On("Update", ctx, "acme", 3, map[string]interface{}{"name": "pg-replica"}).
			Return(&models.DatasourceConfig{ConfigID: 3, Name: "pg-replica"}, nil)

		svc := newService(dsRepo, configRepo, cache)
		_, err := svc.UpdateDatasource(ctx, "acme", 5, &models.DatasourceUpdate{ConnectionKey: &newKey})

		require.NoError(t, err)
		assert.Equal(t, []string{"acme"}, cache.invalidated)
	})

	t.Run("no matching config leaves the cache warm", func(t *testing.T) {
		newKey := "pg-replica"
		cache := &recordingConfigCache{}
		dsRepo := &MockDatasourceRepository{}
		configRepo := &MockDatasourceConfigRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-main"}, nil)
		dsRepo.On("Update", ctx, "acme", 5, map[string]interface{}{"connection_key": "pg-replica"}).
			Return(&models.Datasource{DatasourceID: 5, Name: "orders", ConnectionKey: "pg-replica"}, nil)
		configRepo.On("GetByName", ctx, "acme", "pg-main").Return(nil, nil)

		svc := newService(dsRepo, configRepo, cache)
		_, err := svc.UpdateDatasource(ctx, "acme", 5, &models.DatasourceUpdate{ConnectionKey: &newKey})

		require.NoError(t, err)
		assert.Empty(t, cache.invalidated)
	})
}

func TestDeleteDatasource(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while rules reference it", func(t *testing.T) {
		dsRepo := &MockDatasourceRepository{}
		ruleRepo := &MockValidationRuleRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).Return(&models.Datasource{DatasourceID: 5, Name: "orders"}, nil)
		ruleRepo.On("CountByDatasource", ctx, "acme", 5).Return(int64(2), nil)

		svc := newDatasourceService(dsRepo, ruleRepo, &MockDatasourceConfigRepository{})
		err := svc.DeleteDatasource(ctx, "acme", 5)

		assert.True(t, apperrors.IsValidation(err))
		dsRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		dsRepo := &MockDatasourceRepository{}
		ruleRepo := &MockValidationRuleRepository{}

		dsRepo.On("GetByID", ctx, "acme", 5).Return(&models.Datasource{DatasourceID: 5, Name: "orders"}, nil)
		ruleRepo.On("CountByDatasource", ctx, "acme", 5).Return(int64(0), nil)
		dsRepo.On("Delete", ctx, "acme", 5).Return(true, nil)

		svc := newDatasourceService(dsRepo, ruleRepo, &MockDatasourceConfigRepository{})
		require.NoError(t, svc.DeleteDatasource(ctx, "acme", 5))
	})

	t.Run("absent maps to NotFound", func(t *testing.T) {
		dsRepo := &MockDatasourceRepository{}
		dsRepo.On("GetByID", ctx, "acme", 99).Return(nil, nil)

		svc := newDatasourceService(dsRepo, &MockValidationRuleRepository{}, &MockDatasourceConfigRepository{})
		err := svc.DeleteDatasource(ctx, "acme", 99)

		assert.True(t, apperrors.IsNotFound(err))
	})
}
