package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/models"
)

func newTenantService(repo *MockTenantRepository) TenantService {
	return NewTenantService(createTestLogger(), repo, models.NewValidationService())
}

func TestCreateTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a tenant with defaults", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Exists", ctx, "acme").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

		svc := newTenantService(repo)
		tenant, err := svc.CreateTenant(ctx, &models.TenantCreate{TenantID: "acme", TenantName: "Acme Corp"})

		require.NoError(t, err)
		assert.Equal(t, "acme", tenant.TenantID)
		assert.True(t, tenant.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a taken id", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Exists", ctx, "acme").Return(true, nil)

		svc := newTenantService(repo)
		_, err := svc.CreateTenant(ctx, &models.TenantCreate{TenantID: "acme"})

		assert.True(t, apperrors.IsAlreadyExists(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty id before any lookup", func(t *testing.T) {
		repo := &MockTenantRepository{}

		svc := newTenantService(repo)
		_, err := svc.CreateTenant(ctx, &models.TenantCreate{})

		assert.True(t, apperrors.IsValidation(err))
		repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

func TestValidateTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("known tenant", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Exists", ctx, "acme").Return(true, nil)

		svc := newTenantService(repo)
		result, err := svc.ValidateTenant(ctx, "acme")

		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "acme", result.TenantID)
	})

	t.Run("unknown tenant does not raise", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Exists", ctx, "ghost").Return(false, nil)

		svc := newTenantService(repo)
		result, err := svc.ValidateTenant(ctx, "ghost")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Empty(t, result.TenantID)
	})
}

func TestGetTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("GetByID", ctx, "acme").Return(&models.Tenant{TenantID: "acme"}, nil)

		svc := newTenantService(repo)
		tenant, err := svc.GetTenant(ctx, "acme")

		require.NoError(t, err)
		assert.Equal(t, "acme", tenant.TenantID)
	})

	t.Run("absent maps to NotFound", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("GetByID", ctx, "ghost").Return(nil, nil)

		svc := newTenantService(repo)
		_, err := svc.GetTenant(ctx, "ghost")

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestDeleteTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes without touching child rows", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Delete", ctx, "acme").Return(true, nil)

		svc := newTenantService(repo)
		err := svc.DeleteTenant(ctx, "acme")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("absent maps to NotFound", func(t *testing.T) {
		repo := &MockTenantRepository{}
		repo.On("Delete", ctx, "ghost").Return(false, nil)

		svc := newTenantService(repo)
		err := svc.DeleteTenant(ctx, "ghost")

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUpdateTenantPartial(t *testing.T) {
	ctx := context.Background()

	name := "Renamed"
	repo := &MockTenantRepository{}
	repo.On("Update", ctx, "acme", map[string]interface{}{"tenant_name": "Renamed"}).
		Return(&models.Tenant{TenantID: "acme", TenantName: "Renamed", IsActive: true}, nil)

	svc := newTenantService(repo)
	tenant, err := svc.UpdateTenant(ctx, "acme", &models.TenantUpdate{TenantName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", tenant.TenantName)
	assert.True(t, tenant.IsActive)
	repo.AssertExpectations(t)
}
