// Package flowengine provides a Go client SDK for the FlowEngine registry API
package flowengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client represents the FlowEngine registry client
type Client struct {
	baseURL    string
	httpClient *http.Client
	tenantID   string
	version    string
}

// ClientOption represents a client configuration option
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTenant sets the tenant identifier sent on every scoped request
func WithTenant(tenantID string) ClientOption {
	return func(c *Client) {
		c.tenantID = tenantID
	}
}

// WithVersion sets the API version
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		c.version = version
	}
}

// NewClient creates a new FlowEngine registry client
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tenantID: "global",
		version:  "v1",
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Tenant represents a tenant in the registry
type Tenant struct {
	TenantID   string    `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// TenantCreate represents the data needed to create a tenant
type TenantCreate struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// TenantValidation represents the tenant validation probe result
type TenantValidation struct {
	Valid    bool   `json:"valid"`
	TenantID string `json:"tenant_id,omitempty"`
}

// Intent represents a classified email purpose
type Intent struct {
	IntentID    int            `json:"intent_id"`
	IntentCode  string         `json:"intent_code"`
	TenantID    string         `json:"tenant_id"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Policies    []IntentPolicy `json:"policies"`
}

// IntentPolicy represents per-language routing thresholds for an intent
type IntentPolicy struct {
	TenantID            string    `json:"tenant_id"`
	IntentID            int       `json:"intent_id"`
	LanguageCode        string    `json:"language_code"`
	N8nOrchestrationURL string    `json:"n8n_orchestration_url"`
	AutoProcessMinConf  float64   `json:"auto_process_min_conf"`
	ManualReviewMinConf float64   `json:"manual_review_min_conf"`
	RerouteEmail        string    `json:"reroute_email"`
	MultiIntentMode     string    `json:"multi_intent_mode"`
	AllowMultiAuto      bool      `json:"allow_multi_auto"`
	AllowSubsetAuto     bool      `json:"allow_subset_auto"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Datasource represents a logical datasource reference
type Datasource struct {
	DatasourceID   int       `json:"datasource_id"`
	Name           string    `json:"name"`
	DatasourceType string    `json:"datasource_type"`
	ConnectionKey  string    `json:"connection_key"`
	Description    string    `json:"description"`
	TenantID       string    `json:"tenant_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DatasourceConfig represents stored connection parameters
type DatasourceConfig struct {
	ConfigID       int                    `json:"config_id"`
	Name           string                 `json:"name"`
	TenantID       string                 `json:"tenant_id"`
	Protocol       string                 `json:"protocol"`
	DriverFamily   string                 `json:"driver_family"`
	BaseURL        string                 `json:"base_url"`
	AuthType       *string                `json:"auth_type"`
	AuthConfig     map[string]interface{} `json:"auth_config"`
	ConnectionJSON map[string]interface{} `json:"connection_json"`
	MetadataRef    string                 `json:"metadata_ref"`
	RouterBaseURL  string                 `json:"router_base_url"`
	IsActive       bool                   `json:"is_active"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ValidationRule represents an ordered validation check for an intent
type ValidationRule struct {
	RuleID          int         `json:"rule_id"`
	IntentID        int         `json:"intent_id"`
	LanguageCode    string      `json:"language_code"`
	TenantID        string      `json:"tenant_id"`
	RuleCode        string      `json:"rule_code"`
	RuleName        string      `json:"rule_name"`
	RuleDescription string      `json:"rule_description"`
	DatasourceID    int         `json:"datasource_id"`
	ExecutionOrder  int         `json:"execution_order"`
	Severity        string      `json:"severity"`
	IsActive        bool        `json:"is_active"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Datasource      *Datasource `json:"datasource,omitempty"`
}

// NextExecutionOrder represents the next-order probe result
type NextExecutionOrder struct {
	IntentID           int    `json:"intent_id"`
	LanguageCode       string `json:"language_code"`
	NextExecutionOrder int    `json:"next_execution_order"`
}

// ConnectionTestResult represents the connection test payload
type ConnectionTestResult struct {
	ConfigID int    `json:"config_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// Ack represents a deletion acknowledgement
type Ack struct {
	Message string `json:"message"`
}

// Error represents an API error response
type Error struct {
	Message   string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Tenant Registry Methods

// CreateTenant creates a new tenant
func (c *Client) CreateTenant(ctx context.Context, tenant *TenantCreate) (*Tenant, error) {
	var result Tenant
	err := c.makeRequest(ctx, "POST", "/tenants", tenant, &result)
	return &result, err
}

// GetTenants retrieves all tenants
func (c *Client) GetTenants(ctx context.Context) ([]*Tenant, error) {
	var result []*Tenant
	err := c.makeRequest(ctx, "GET", "/tenants", nil, &result)
	return result, err
}

// GetTenant retrieves a specific tenant
func (c *Client) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	var result Tenant
	path := fmt.Sprintf("/tenants/%s", url.PathEscape(id))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// ValidateTenant checks whether a tenant exists
func (c *Client) ValidateTenant(ctx context.Context, id string) (*TenantValidation, error) {
	var result TenantValidation
	path := fmt.Sprintf("/tenants/validate/%s", url.PathEscape(id))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// DeleteTenant deletes a tenant
func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	path := fmt.Sprintf("/tenants/%s", url.PathEscape(id))
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

// Intent Methods

// CreateIntent creates a new intent
func (c *Client) CreateIntent(ctx context.Context, intent map[string]interface{}) (*Intent, error) {
	var result Intent
	err := c.makeRequest(ctx, "POST", "/intents", intent, &result)
	return &result, err
}

// GetIntents retrieves all intents for the client's tenant
func (c *Client) GetIntents(ctx context.Context) ([]*Intent, error) {
	var result []*Intent
	err := c.makeRequest(ctx, "GET", "/intents", nil, &result)
	return result, err
}

// GetIntent retrieves a specific intent
func (c *Client) GetIntent(ctx context.Context, id int) (*Intent, error) {
	var result Intent
	path := fmt.Sprintf("/intents/%d", id)
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// UpdateIntent applies a partial update to an intent
func (c *Client) UpdateIntent(ctx context.Context, id int, changes map[string]interface{}) (*Intent, error) {
	var result Intent
	path := fmt.Sprintf("/intents/%d", id)
	err := c.makeRequest(ctx, "PUT", path, changes, &result)
	return &result, err
}

// DeleteIntent deletes an intent with its policies and rules
func (c *Client) DeleteIntent(ctx context.Context, id int) error {
	path := fmt.Sprintf("/intents/%d", id)
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

// Intent Policy Methods

// CreateIntentPolicy adds a per-language policy to an intent
func (c *Client) CreateIntentPolicy(ctx context.Context, intentID int, policy map[string]interface{}) (*IntentPolicy, error) {
	var result IntentPolicy
	path := fmt.Sprintf("/intents/%d/policies", intentID)
	err := c.makeRequest(ctx, "POST", path, policy, &result)
	return &result, err
}

// GetIntentPolicies retrieves the policies of one intent
func (c *Client) GetIntentPolicies(ctx context.Context, intentID int) ([]*IntentPolicy, error) {
	var result []*IntentPolicy
	path := fmt.Sprintf("/intents/%d/policies", intentID)
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return result, err
}

// GetIntentPolicy retrieves one policy by intent and language
func (c *Client) GetIntentPolicy(ctx context.Context, intentID int, languageCode string) (*IntentPolicy, error) {
	var result IntentPolicy
	path := fmt.Sprintf("/intents/%d/policies/%s", intentID, url.PathEscape(languageCode))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// UpdateIntentPolicy applies a partial update to a policy
func (c *Client) UpdateIntentPolicy(ctx context.Context, intentID int, languageCode string, changes map[string]interface{}) (*IntentPolicy, error) {
	var result IntentPolicy
	path := fmt.Sprintf("/intents/%d/policies/%s", intentID, url.PathEscape(languageCode))
	err := c.makeRequest(ctx, "PUT", path, changes, &result)
	return &result, err
}

// DeleteIntentPolicy deletes one policy
func (c *Client) DeleteIntentPolicy(ctx context.Context, intentID int, languageCode string) error {
	path := fmt.Sprintf("/intents/%d/policies/%s", intentID, url.PathEscape(languageCode))
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

// Datasource Methods

// CreateDatasource creates a new datasource
func (c *Client) CreateDatasource(ctx context.Context, datasource map[string]interface{}) (*Datasource, error) {
	var result Datasource
	err := c.makeRequest(ctx, "POST", "/datasources", datasource, &result)
	return &result, err
}

// GetDatasources retrieves all datasources for the client's tenant
func (c *Client) GetDatasources(ctx context.Context) ([]*Datasource, error) {
	var result []*Datasource
	err := c.makeRequest(ctx, "GET", "/datasources", nil, &result)
	return result, err
}

// GetDatasource retrieves a specific datasource
func (c *Client) GetDatasource(ctx context.Context, id int) (*Datasource, error) {
	var result Datasource
	path := fmt.Sprintf("/datasources/%d", id)
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// UpdateDatasource applies a partial update to a datasource
func (c *Client) UpdateDatasource(ctx context.Context, id int, changes map[string]interface{}) (*Datasource, error) {
	var result Datasource
	path := fmt.Sprintf("/datasources/%d", id)
	err := c.makeRequest(ctx, "PUT", path, changes, &result)
	return &result, err
}

// DeleteDatasource deletes a datasource
func (c *Client) DeleteDatasource(ctx context.Context, id int) error {
	path := fmt.Sprintf("/datasources/%d", id)
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

// Datasource Config Methods

// CreateDatasourceConfig creates a new datasource config
func (c *Client) CreateDatasourceConfig(ctx context.Context, config map[string]interface{}) (*DatasourceConfig, error) {
	var result DatasourceConfig
	err := c.makeRequest(ctx, "POST", "/datasource-configs", config, &result)
	return &result, err
}

// GetDatasourceConfigs retrieves all configs for the client's tenant
func (c *Client) GetDatasourceConfigs(ctx context.Context) ([]*DatasourceConfig, error) {
	var result []*DatasourceConfig
	err := c.makeRequest(ctx, "GET", "/datasource-configs", nil, &result)
	return result, err
}

// GetDatasourceConfig retrieves a specific config
func (c *Client) GetDatasourceConfig(ctx context.Context, id int) (*DatasourceConfig, error) {
	var result DatasourceConfig
	path := fmt.Sprintf("/datasource-configs/%d", id)
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// GetDatasourceConfigByName retrieves a config by its unique name
func (c *Client) GetDatasourceConfigByName(ctx context.Context, name string) (*DatasourceConfig, error) {
	var result DatasourceConfig
	path := fmt.Sprintf("/datasource-configs/by-name/%s", url.PathEscape(name))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// UpdateDatasourceConfig applies a partial update to a config
func (c *Client) UpdateDatasourceConfig(ctx context.Context, id int, changes map[string]interface{}) (*DatasourceConfig, error) {
	var result DatasourceConfig
	path := fmt.Sprintf("/datasource-configs/%d", id)
	err := c.makeRequest(ctx, "PUT", path, changes, &result)
	return &result, err
}

// DeleteDatasourceConfig deletes a config
func (c *Client) DeleteDatasourceConfig(ctx context.Context, id int) error {
	path := fmt.Sprintf("/datasource-configs/%d", id)
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

// TestDatasourceConfig runs the connection test probe for a config
func (c *Client) TestDatasourceConfig(ctx context.Context, id int) (*ConnectionTestResult, error) {
	var result ConnectionTestResult
	path := fmt.Sprintf("/datasource-configs/%d/test", id)
	err := c.makeRequest(ctx, "POST", path, nil, &result)
	return &result, err
}

// Validation Rule Methods

// CreateValidationRule creates a new validation rule
func (c *Client) CreateValidationRule(ctx context.Context, rule map[string]interface{}) (*ValidationRule, error) {
	var result ValidationRule
	err := c.makeRequest(ctx, "POST", "/validation-rules", rule, &result)
	return &result, err
}

// GetValidationRules retrieves all rules for the client's tenant
func (c *Client) GetValidationRules(ctx context.Context) ([]*ValidationRule, error) {
	var result []*ValidationRule
	err := c.makeRequest(ctx, "GET", "/validation-rules", nil, &result)
	return result, err
}

// GetValidationRule retrieves a specific rule
func (c *Client) GetValidationRule(ctx context.Context, id int) (*ValidationRule, error) {
	var result ValidationRule
	path := fmt.Sprintf("/validation-rules/%d", id)
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// GetValidationRulesForIntent retrieves the active rules for an intent and
// language in execution order
func (c *Client) GetValidationRulesForIntent(ctx context.Context, intentID int, languageCode string) ([]*ValidationRule, error) {
	var result []*ValidationRule
	path := fmt.Sprintf("/validation-rules/intent/%d/language/%s", intentID, url.PathEscape(languageCode))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return result, err
}

// GetNextExecutionOrder retrieves the next free execution order for an intent
// and language
func (c *Client) GetNextExecutionOrder(ctx context.Context, intentID int, languageCode string) (*NextExecutionOrder, error) {
	var result NextExecutionOrder
	path := fmt.Sprintf("/validation-rules/next-order/%d?language_code=%s", intentID, url.QueryEscape(languageCode))
	err := c.makeRequest(ctx, "GET", path, nil, &result)
	return &result, err
}

// UpdateValidationRule applies a partial update to a rule
func (c *Client) UpdateValidationRule(ctx context.Context, id int, changes map[string]interface{}) (*ValidationRule, error) {
	var result ValidationRule
	path := fmt.Sprintf("/validation-rules/%d", id)
	err := c.makeRequest(ctx, "PUT", path, changes, &result)
	return &result, err
}

// DeleteValidationRule deletes a rule
func (c *Client) DeleteValidationRule(ctx context.Context, id int) error {
	path := fmt.Sprintf("/validation-rules/%d", id)
	return c.makeRequest(ctx, "DELETE", path, nil, nil)
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := fmt.Sprintf("%s/api/%s%s", c.baseURL, c.version, path)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-ID", c.tenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return &apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
