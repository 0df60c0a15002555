package models

import (
	"time"
)

// DefaultTenantID is the tenant scope applied when none is supplied
const DefaultTenantID = "global"

// Tenant represents an isolation boundary; all registry data is partitioned
// by tenant identifier.
type Tenant struct {
	TenantID   string    `json:"tenant_id" gorm:"primaryKey" validate:"required,min=1,max=255"`
	TenantName string    `json:"tenant_name"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "eivs.tenants"
}

// TenantCreate is the payload for creating a tenant
type TenantCreate struct {
	TenantID   string `json:"tenant_id" validate:"required,min=1,max=255"`
	TenantName string `json:"tenant_name"`
	IsActive   *bool  `json:"is_active"`
}

// TenantUpdate is the partial payload for updating a tenant
type TenantUpdate struct {
	TenantName *string `json:"tenant_name"`
	IsActive   *bool   `json:"is_active"`
}

// Changes returns the column updates for the fields present in the payload
func (u *TenantUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.TenantName != nil {
		changes["tenant_name"] = *u.TenantName
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// TenantValidateResponse is the read-only tenant validation probe result
type TenantValidateResponse struct {
	Valid    bool   `json:"valid"`
	TenantID string `json:"tenant_id,omitempty"`
}
