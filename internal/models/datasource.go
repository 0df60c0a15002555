package models

import (
	"time"

	"gorm.io/datatypes"
)

// Protocols accepted for a datasource config
const (
	ProtocolSQL     = "sql"
	ProtocolREST    = "rest"
	ProtocolGraphQL = "graphql"
	ProtocolFile    = "file"
	ProtocolStream  = "stream"
)

// Auth types accepted for a datasource config
const (
	AuthTypeOAuth2 = "oauth2"
	AuthTypeAPIKey = "apikey"
	AuthTypeBasic  = "basic"
	AuthTypeNone   = "none"
)

// Datasource is a logical named reference to an external system. Its
// connection_key is a soft link to a DatasourceConfig's name; the two tables
// are synchronized procedurally, not by a foreign key.
type Datasource struct {
	DatasourceID   int       `json:"datasource_id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"not null;uniqueIndex:uq_eivs_datasources_tenant_name,priority:2" validate:"required,min=1"`
	DatasourceType string    `json:"datasource_type" gorm:"not null" validate:"required,min=1"`
	ConnectionKey  string    `json:"connection_key" gorm:"not null" validate:"required,min=1"`
	Description    string    `json:"description"`
	TenantID       string    `json:"tenant_id" gorm:"not null;default:global;index:idx_eivs_datasources_tenant;uniqueIndex:uq_eivs_datasources_tenant_name,priority:1"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for Datasource
func (Datasource) TableName() string {
	return "eivs.datasources"
}

// DatasourceSummary is a slim datasource representation for nested responses
type DatasourceSummary struct {
	DatasourceID   int    `json:"datasource_id"`
	Name           string `json:"name"`
	DatasourceType string `json:"datasource_type"`
	ConnectionKey  string `json:"connection_key"`
}

// Summary returns the slim representation used when a rule embeds its
// datasource
func (d *Datasource) Summary() DatasourceSummary {
	return DatasourceSummary{
		DatasourceID:   d.DatasourceID,
		Name:           d.Name,
		DatasourceType: d.DatasourceType,
		ConnectionKey:  d.ConnectionKey,
	}
}

// DatasourceConfig holds the actual connection parameters identified by name.
// Datasource.connection_key references this name without a foreign key.
type DatasourceConfig struct {
	ConfigID       int               `json:"config_id" gorm:"primaryKey;autoIncrement"`
	Name           string            `json:"name" gorm:"not null;uniqueIndex:uq_eivs_datasource_configs_tenant_name,priority:2" validate:"required,min=1,max=255"`
	TenantID       string            `json:"tenant_id" gorm:"not null;default:global;index:idx_eivs_datasource_configs_tenant;uniqueIndex:uq_eivs_datasource_configs_tenant_name,priority:1"`
	Protocol       string            `json:"protocol" gorm:"not null" validate:"required,oneof=sql rest graphql file stream"`
	DriverFamily   string            `json:"driver_family" gorm:"not null" validate:"required,min=1"`
	BaseURL        string            `json:"base_url"`
	AuthType       *string           `json:"auth_type" validate:"omitempty,oneof=oauth2 apikey basic none"`
	AuthConfig     datatypes.JSONMap `json:"auth_config" gorm:"type:jsonb"`
	ConnectionJSON datatypes.JSONMap `json:"connection_json" gorm:"type:jsonb"`
	MetadataRef    string            `json:"metadata_ref"`
	RouterBaseURL  string            `json:"router_base_url"`
	IsActive       bool              `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TableName returns the table name for DatasourceConfig
func (DatasourceConfig) TableName() string {
	return "eivs.datasource_configs"
}

// DatasourceCreate is the payload for creating a datasource
type DatasourceCreate struct {
	Name           string `json:"name" validate:"required,min=1"`
	DatasourceType string `json:"datasource_type" validate:"required,min=1"`
	ConnectionKey  string `json:"connection_key" validate:"required,min=1"`
	Description    string `json:"description"`
	IsActive       *bool  `json:"is_active"`
}

// DatasourceUpdate is the partial payload for updating a datasource
type DatasourceUpdate struct {
	Name           *string `json:"name" validate:"omitempty,min=1"`
	DatasourceType *string `json:"datasource_type" validate:"omitempty,min=1"`
	ConnectionKey  *string `json:"connection_key" validate:"omitempty,min=1"`
	Description    *string `json:"description"`
	IsActive       *bool   `json:"is_active"`
}

// Changes returns the column updates for the fields present in the payload
func (u *DatasourceUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.DatasourceType != nil {
		changes["datasource_type"] = *u.DatasourceType
	}
	if u.ConnectionKey != nil {
		changes["connection_key"] = *u.ConnectionKey
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// DatasourceConfigCreate is the payload for creating a datasource config
type DatasourceConfigCreate struct {
	Name           string            `json:"name" validate:"required,min=1,max=255"`
	Protocol       string            `json:"protocol" validate:"required,oneof=sql rest graphql file stream"`
	DriverFamily   string            `json:"driver_family" validate:"required,min=1"`
	BaseURL        string            `json:"base_url"`
	AuthType       *string           `json:"auth_type" validate:"omitempty,oneof=oauth2 apikey basic none"`
	AuthConfig     datatypes.JSONMap `json:"auth_config"`
	ConnectionJSON datatypes.JSONMap `json:"connection_json"`
	MetadataRef    string            `json:"metadata_ref"`
	RouterBaseURL  string            `json:"router_base_url"`
	IsActive       *bool             `json:"is_active"`
}

// DatasourceConfigUpdate is the partial payload for updating a config
type DatasourceConfigUpdate struct {
	Name           *string           `json:"name" validate:"omitempty,min=1,max=255"`
	Protocol       *string           `json:"protocol" validate:"omitempty,oneof=sql rest graphql file stream"`
	DriverFamily   *string           `json:"driver_family" validate:"omitempty,min=1"`
	BaseURL        *string           `json:"base_url"`
	AuthType       *string           `json:"auth_type" validate:"omitempty,oneof=oauth2 apikey basic none"`
	AuthConfig     datatypes.JSONMap `json:"auth_config"`
	ConnectionJSON datatypes.JSONMap `json:"connection_json"`
	MetadataRef    *string           `json:"metadata_ref"`
	RouterBaseURL  *string           `json:"router_base_url"`
	IsActive       *bool             `json:"is_active"`
}

// Changes returns the column updates for the fields present in the payload
func (u *DatasourceConfigUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Protocol != nil {
		changes["protocol"] = *u.Protocol
	}
	if u.DriverFamily != nil {
		changes["driver_family"] = *u.DriverFamily
	}
	if u.BaseURL != nil {
		changes["base_url"] = *u.BaseURL
	}
	if u.AuthType != nil {
		changes["auth_type"] = *u.AuthType
	}
	if u.AuthConfig != nil {
		changes["auth_config"] = u.AuthConfig
	}
	if u.ConnectionJSON != nil {
		changes["connection_json"] = u.ConnectionJSON
	}
	if u.MetadataRef != nil {
		changes["metadata_ref"] = *u.MetadataRef
	}
	if u.RouterBaseURL != nil {
		changes["router_base_url"] = *u.RouterBaseURL
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// ConnectionTestResult is the fixed payload returned by the connection test
// stub; no network activity takes place.
type ConnectionTestResult struct {
	ConfigID int    `json:"config_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}
