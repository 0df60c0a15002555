package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
)

func createTestLogger() *logger.Logger {
	return &logger.Logger{Logger: logrus.New()}
}

// stubTxManager executes the unit of work directly, without a database
type stubTxManager struct{}

func (stubTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockTenantRepository is a mock implementation of TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Tenant, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Exists(ctx context.Context, tenantID string) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenantID string, changes map[string]interface{}) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Delete(ctx context.Context, tenantID string) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

// MockIntentRepository is a mock implementation of IntentRepository for testing
type MockIntentRepository struct {
	mock.Mock
}

func (m *MockIntentRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Intent, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Intent), args.Error(1)
}

func (m *MockIntentRepository) GetByID(ctx context.Context, tenantID string, intentID int) (*models.Intent, error) {
	args := m.Called(ctx, tenantID, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Intent), args.Error(1)
}

func (m *MockIntentRepository) GetByCode(ctx context.Context, tenantID string, intentCode string) (*models.Intent, error) {
	args := m.Called(ctx, tenantID, intentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Intent), args.Error(1)
}

func (m *MockIntentRepository) CreateWithPolicies(ctx context.Context, intent *models.Intent, policies []models.IntentPolicy) error {
	args := m.Called(ctx, intent, policies)
	return args.Error(0)
}

func (m *MockIntentRepository) Update(ctx context.Context, tenantID string, intentID int, changes map[string]interface{}) (*models.Intent, error) {
	args := m.Called(ctx, tenantID, intentID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Intent), args.Error(1)
}

func (m *MockIntentRepository) Delete(ctx context.Context, tenantID string, intentID int) (bool, error) {
	args := m.Called(ctx, tenantID, intentID)
	return args.Bool(0), args.Error(1)
}

// MockIntentPolicyRepository is a mock implementation of IntentPolicyRepository for testing
type MockIntentPolicyRepository struct {
	mock.Mock
}

func (m *MockIntentPolicyRepository) GetAllWithIntent(ctx context.Context, tenantID string) ([]*models.IntentPolicyWithIntent, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IntentPolicyWithIntent), args.Error(1)
}

func (m *MockIntentPolicyRepository) GetAll(ctx context.Context, tenantID string) ([]*models.IntentPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IntentPolicy), args.Error(1)
}

func (m *MockIntentPolicyRepository) GetByIntent(ctx context.Context, tenantID string, intentID int) ([]*models.IntentPolicy, error) {
	args := m.Called(ctx, tenantID, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IntentPolicy), args.Error(1)
}

func (m *MockIntentPolicyRepository) GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.IntentPolicy, error) {
	args := m.Called(ctx, tenantID, intentID, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntentPolicy), args.Error(1)
}

func (m *MockIntentPolicyRepository) Create(ctx context.Context, policy *models.IntentPolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockIntentPolicyRepository) Update(ctx context.Context, tenantID string, intentID int, languageCode string, changes map[string]interface{}) (*models.IntentPolicy, error) {
	args := m.Called(ctx, tenantID, intentID, languageCode, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntentPolicy), args.Error(1)
}

func (m *MockIntentPolicyRepository) Delete(ctx context.Context, tenantID string, intentID int, languageCode string) (bool, error) {
	args := m.Called(ctx, tenantID, intentID, languageCode)
	return args.Bool(0), args.Error(1)
}

// MockDatasourceRepository is a mock implementation of DatasourceRepository for testing
type MockDatasourceRepository struct {
	mock.Mock
}

func (m *MockDatasourceRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Datasource, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Datasource), args.Error(1)
}

func (m *MockDatasourceRepository) GetByID(ctx context.Context, tenantID string, datasourceID int) (*models.Datasource, error) {
	args := m.Called(ctx, tenantID, datasourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Datasource), args.Error(1)
}

func (m *MockDatasourceRepository) GetByName(ctx context.Context, tenantID string, name string) (*models.Datasource, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Datasource), args.Error(1)
}

func (m *MockDatasourceRepository) Create(ctx context.Context, datasource *models.Datasource) error {
	args := m.Called(ctx, datasource)
	return args.Error(0)
}

func (m *MockDatasourceRepository) Update(ctx context.Context, tenantID string, datasourceID int, changes map[string]interface{}) (*models.Datasource, error) {
	args := m.Called(ctx, tenantID, datasourceID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Datasource), args.Error(1)
}

func (m *MockDatasourceRepository) Delete(ctx context.Context, tenantID string, datasourceID int) (bool, error) {
	args := m.Called(ctx, tenantID, datasourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDatasourceRepository) RepointByType(ctx context.Context, tenantID, driverFamily, connectionKey string) error {
	args := m.Called(ctx, tenantID, driverFamily, connectionKey)
	return args.Error(0)
}

func (m *MockDatasourceRepository) RepointByKey(ctx context.Context, tenantID, oldKey, newKey string) error {
	args := m.Called(ctx, tenantID, oldKey, newKey)
	return args.Error(0)
}

// MockDatasourceConfigRepository is a mock implementation of DatasourceConfigRepository for testing
type MockDatasourceConfigRepository struct {
	mock.Mock
}

func (m *MockDatasourceConfigRepository) GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) GetByID(ctx context.Context, tenantID string, configID int) (*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) GetByName(ctx context.Context, tenantID string, name string) (*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) GetByDriverFamily(ctx context.Context, tenantID string, driverFamily string) ([]*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, driverFamily)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) GetByProtocol(ctx context.Context, tenantID string, protocol string) ([]*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, protocol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) Create(ctx context.Context, config *models.DatasourceConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockDatasourceConfigRepository) Update(ctx context.Context, tenantID string, configID int, changes map[string]interface{}) (*models.DatasourceConfig, error) {
	args := m.Called(ctx, tenantID, configID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasourceConfig), args.Error(1)
}

func (m *MockDatasourceConfigRepository) Delete(ctx context.Context, tenantID string, configID int) (bool, error) {
	args := m.Called(ctx, tenantID, configID)
	return args.Bool(0), args.Error(1)
}

// MockValidationRuleRepository is a mock implementation of ValidationRuleRepository for testing
type MockValidationRuleRepository struct {
	mock.Mock
}

func (m *MockValidationRuleRepository) GetAll(ctx context.Context, tenantID string, filter models.ValidationRuleFilter) ([]*models.ValidationRule, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepository) GetByID(ctx context.Context, tenantID string, ruleID int) (*models.ValidationRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepository) GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) ([]*models.ValidationRule, error) {
	args := m.Called(ctx, tenantID, intentID, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepository) GetMaxExecutionOrder(ctx context.Context, tenantID string, intentID int, languageCode string) (int, error) {
	args := m.Called(ctx, tenantID, intentID, languageCode)
	return args.Int(0), args.Error(1)
}

func (m *MockValidationRuleRepository) ExistsByCode(ctx context.Context, tenantID string, intentID int, ruleCode string) (bool, error) {
	args := m.Called(ctx, tenantID, intentID, ruleCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockValidationRuleRepository) CountByDatasource(ctx context.Context, tenantID string, datasourceID int) (int64, error) {
	args := m.Called(ctx, tenantID, datasourceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockValidationRuleRepository) Create(ctx context.Context, rule *models.ValidationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockValidationRuleRepository) Update(ctx context.Context, tenantID string, ruleID int, changes map[string]interface{}) (*models.ValidationRule, error) {
	args := m.Called(ctx, tenantID, ruleID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepository) Delete(ctx context.Context, tenantID string, ruleID int) (bool, error) {
	args := m.Called(ctx, tenantID, ruleID)
	return args.Bool(0), args.Error(1)
}
