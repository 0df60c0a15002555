package services

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/models"
)

// TenantService defines tenant registry business operations
type TenantService interface {
	GetTenants(ctx context.Context, activeOnly bool) ([]*models.Tenant, error)
	GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error)
	ValidateTenant(ctx context.Context, tenantID string) (*models.TenantValidateResponse, error)
	CreateTenant(ctx context.Context, payload *models.TenantCreate) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, payload *models.TenantUpdate) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID string) error
}

// IntentService defines intent business operations
type IntentService interface {
	GetIntents(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Intent, error)
	GetIntent(ctx context.Context, tenantID string, intentID int) (*models.Intent, error)
	CreateIntent(ctx context.Context, tenantID string, payload *models.IntentCreate) (*models.Intent, error)
	UpdateIntent(ctx context.Context, tenantID string, intentID int, payload *models.IntentUpdate) (*models.Intent, error)
	DeleteIntent(ctx context.Context, tenantID string, intentID int) error
}

// IntentPolicyService defines intent policy business operations
type IntentPolicyService interface {
	GetPoliciesWithIntent(ctx context.Context, tenantID string) ([]*models.IntentPolicyWithIntent, error)
	GetPolicies(ctx context.Context, tenantID string) ([]*models.IntentPolicy, error)
	GetPoliciesForIntent(ctx context.Context, tenantID string, intentID int) ([]*models.IntentPolicy, error)
	GetPolicy(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.IntentPolicy, error)
	CreatePolicy(ctx context.Context, tenantID string, intentID int, payload *models.IntentPolicyCreate) (*models.IntentPolicy, error)
	UpdatePolicy(ctx context.Context, tenantID string, intentID int, languageCode string, payload *models.IntentPolicyUpdate) (*models.IntentPolicy, error)
	DeletePolicy(ctx context.Context, tenantID string, intentID int, languageCode string) error
}

// DatasourceService defines datasource business operations
type DatasourceService interface {
	GetDatasources(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Datasource, error)
	GetDatasource(ctx context.Context, tenantID string, datasourceID int) (*models.Datasource, error)
	CreateDatasource(ctx context.Context, tenantID string, payload *models.DatasourceCreate) (*models.Datasource, error)
	UpdateDatasource(ctx context.Context, tenantID string, datasourceID int, payload *models.DatasourceUpdate) (*models.Datasource, error)
	DeleteDatasource(ctx context.Context, tenantID string, datasourceID int) error
}

// DatasourceConfigService defines datasource config business operations
type DatasourceConfigService interface {
	GetConfigs(ctx context.Context, tenantID string, activeOnly bool) ([]*models.DatasourceConfig, error)
	GetConfig(ctx context.Context, tenantID string, configID int) (*models.DatasourceConfig, error)
	GetConfigByName(ctx context.Context, tenantID string, name string) (*models.DatasourceConfig, error)
	GetConfigsByDriverFamily(ctx context.Context, tenantID string, driverFamily string) ([]*models.DatasourceConfig, error)
	GetConfigsByProtocol(ctx context.Context, tenantID string, protocol string) ([]*models.DatasourceConfig, error)
	CreateConfig(ctx context.Context, tenantID string, payload *models.DatasourceConfigCreate) (*models.DatasourceConfig, error)
	UpdateConfig(ctx context.Context, tenantID string, configID int, payload *models.DatasourceConfigUpdate) (*models.DatasourceConfig, error)
	DeleteConfig(ctx context.Context, tenantID string, configID int) error
	TestConnection(ctx context.Context, tenantID string, configID int) (*models.ConnectionTestResult, error)
}

// ValidationRuleService defines validation rule business operations
type ValidationRuleService interface {
	GetRules(ctx context.Context, tenantID string, filter models.ValidationRuleFilter) ([]*models.ValidationRule, error)
	GetRule(ctx context.Context, tenantID string, ruleID int) (*models.ValidationRule, error)
	GetRulesForIntent(ctx context.Context, tenantID string, intentID int, languageCode string) ([]*models.ValidationRule, error)
	GetNextExecutionOrder(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.NextOrderResponse, error)
	CreateRule(ctx context.Context, tenantID string, payload *models.ValidationRuleCreate) (*models.ValidationRule, error)
	UpdateRule(ctx context.Context, tenantID string, ruleID int, payload *models.ValidationRuleUpdate) (*models.ValidationRule, error)
	DeleteRule(ctx context.Context, tenantID string, ruleID int) error
}
