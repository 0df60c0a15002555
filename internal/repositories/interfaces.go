package repositories

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/models"
)

// TxManager scopes a set of repository calls to a single database
// transaction. The callback's context carries the transaction; repositories
// invoked with it participate in the same unit of work, committed or rolled
// back together.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TenantRepository defines the interface for tenant data operations.
// Lookups return (nil, nil) when no row matches; services decide whether
// absence is an error.
type TenantRepository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]*models.Tenant, error)
	GetByID(ctx context.Context, tenantID string) (*models.Tenant, error)
	Exists(ctx context.Context, tenantID string) (bool, error)
	Create(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, tenantID string, changes map[string]interface{}) (*models.Tenant, error)
	Delete(ctx context.Context, tenantID string) (bool, error)
}

// IntentRepository defines the interface for intent data operations
type IntentRepository interface {
	GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Intent, error)
	GetByID(ctx context.Context, tenantID string, intentID int) (*models.Intent, error)
	GetByCode(ctx context.Context, tenantID string, intentCode string) (*models.Intent, error)
	// CreateWithPolicies persists the intent and its initial policies as one
	// transaction; the intent row is flushed first to obtain its id.
	CreateWithPolicies(ctx context.Context, intent *models.Intent, policies []models.IntentPolicy) error
	Update(ctx context.Context, tenantID string, intentID int, changes map[string]interface{}) (*models.Intent, error)
	// Delete removes the intent together with its policies and validation
	// rules in one transaction.
	Delete(ctx context.Context, tenantID string, intentID int) (bool, error)
}

// IntentPolicyRepository defines the interface for intent policy data operations
type IntentPolicyRepository interface {
	GetAllWithIntent(ctx context.Context, tenantID string) ([]*models.IntentPolicyWithIntent, error)
	GetAll(ctx context.Context, tenantID string) ([]*models.IntentPolicy, error)
	GetByIntent(ctx context.Context, tenantID string, intentID int) ([]*models.IntentPolicy, error)
	GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) (*models.IntentPolicy, error)
	Create(ctx context.Context, policy *models.IntentPolicy) error
	Update(ctx context.Context, tenantID string, intentID int, languageCode string, changes map[string]interface{}) (*models.IntentPolicy, error)
	Delete(ctx context.Context, tenantID string, intentID int, languageCode string) (bool, error)
}

// DatasourceRepository defines the interface for datasource data operations
type DatasourceRepository interface {
	GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Datasource, error)
	GetByID(ctx context.Context, tenantID string, datasourceID int) (*models.Datasource, error)
	GetByName(ctx context.Context, tenantID string, name string) (*models.Datasource, error)
	Create(ctx context.Context, datasource *models.Datasource) error
	Update(ctx context.Context, tenantID string, datasourceID int, changes map[string]interface{}) (*models.Datasource, error)
	Delete(ctx context.Context, tenantID string, datasourceID int) (bool, error)
	// RepointByType sets connection_key on every datasource in the tenant
	// whose datasource_type matches the driver family.
	RepointByType(ctx context.Context, tenantID, driverFamily, connectionKey string) error
	// RepointByKey moves every datasource in the tenant from one
	// connection_key to another.
	RepointByKey(ctx context.Context, tenantID, oldKey, newKey string) error
}

// DatasourceConfigRepository defines the interface for datasource config data operations
type DatasourceConfigRepository interface {
	GetAll(ctx context.Context, tenantID string, activeOnly bool) ([]*models.DatasourceConfig, error)
	GetByID(ctx context.Context, tenantID string, configID int) (*models.DatasourceConfig, error)
	GetByName(ctx context.Context, tenantID string, name string) (*models.DatasourceConfig, error)
	GetByDriverFamily(ctx context.Context, tenantID string, driverFamily string) ([]*models.DatasourceConfig, error)
	GetByProtocol(ctx context.Context, tenantID string, protocol string) ([]*models.DatasourceConfig, error)
	Create(ctx context.Context, config *models.DatasourceConfig) error
	Update(ctx context.Context, tenantID string, configID int, changes map[string]interface{}) (*models.DatasourceConfig, error)
	Delete(ctx context.Context, tenantID string, configID int) (bool, error)
}

// ValidationRuleRepository defines the interface for validation rule data operations
type ValidationRuleRepository interface {
	GetAll(ctx context.Context, tenantID string, filter models.ValidationRuleFilter) ([]*models.ValidationRule, error)
	GetByID(ctx context.Context, tenantID string, ruleID int) (*models.ValidationRule, error)
	GetByIntentAndLanguage(ctx context.Context, tenantID string, intentID int, languageCode string) ([]*models.ValidationRule, error)
	// GetMaxExecutionOrder returns the highest execution order for the
	// (intent, language) pair, or 0 when no rules exist.
	GetMaxExecutionOrder(ctx context.Context, tenantID string, intentID int, languageCode string) (int, error)
	ExistsByCode(ctx context.Context, tenantID string, intentID int, ruleCode string) (bool, error)
	CountByDatasource(ctx context.Context, tenantID string, datasourceID int) (int64, error)
	Create(ctx context.Context, rule *models.ValidationRule) error
	Update(ctx context.Context, tenantID string, ruleID int, changes map[string]interface{}) (*models.ValidationRule, error)
	Delete(ctx context.Context, tenantID string, ruleID int) (bool, error)
}
