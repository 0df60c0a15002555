package models

import (
	"time"
)

// Multi-intent routing modes for an intent policy
const (
	MultiIntentModeStrictSingle = "STRICT_SINGLE"
	MultiIntentModeAutoAll      = "AUTO_ALL"
	MultiIntentModeAutoSubset   = "AUTO_SUBSET"
)

// DefaultLanguageCode is the language scope applied when none is supplied
const DefaultLanguageCode = "multi"

// Intent represents a classified purpose an incoming email may match
type Intent struct {
	IntentID    int       `json:"intent_id" gorm:"primaryKey;autoIncrement"`
	IntentCode  string    `json:"intent_code" gorm:"not null;uniqueIndex:uq_eivs_intents_tenant_code,priority:2" validate:"required,min=1,max=255"`
	TenantID    string    `json:"tenant_id" gorm:"not null;default:global;index:idx_eivs_intents_tenant;uniqueIndex:uq_eivs_intents_tenant_code,priority:1"`
	DisplayName string    `json:"display_name" gorm:"not null" validate:"required,min=1,max=255"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Policies []IntentPolicy `json:"policies" gorm:"foreignKey:TenantID,IntentID;references:TenantID,IntentID"`
}

// TableName returns the table name for Intent
func (Intent) TableName() string {
	return "eivs.intents"
}

// IntentPolicy holds per-language thresholds and routing behaviour for one
// intent. One policy per (intent, language) pair.
type IntentPolicy struct {
	TenantID            string    `json:"tenant_id" gorm:"primaryKey;default:global;index:idx_eivs_intent_policies_tenant"`
	IntentID            int       `json:"intent_id" gorm:"primaryKey"`
	LanguageCode        string    `json:"language_code" gorm:"primaryKey;size:10;default:multi" validate:"max=10"`
	N8nOrchestrationURL string    `json:"n8n_orchestration_url"`
	AutoProcessMinConf  float64   `json:"auto_process_min_conf" gorm:"type:numeric(5,2);not null" validate:"gte=0,lte=100"`
	ManualReviewMinConf float64   `json:"manual_review_min_conf" gorm:"type:numeric(5,2);not null" validate:"gte=0,lte=100"`
	RerouteEmail        string    `json:"reroute_email"`
	MultiIntentMode     string    `json:"multi_intent_mode" gorm:"not null;default:STRICT_SINGLE" validate:"oneof=STRICT_SINGLE AUTO_ALL AUTO_SUBSET"`
	AllowMultiAuto      bool      `json:"allow_multi_auto" gorm:"not null;default:false"`
	AllowSubsetAuto     bool      `json:"allow_subset_auto" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName returns the table name for IntentPolicy
func (IntentPolicy) TableName() string {
	return "eivs.intent_policies"
}

// IntentPolicyWithIntent is a policy joined to its parent intent for display
type IntentPolicyWithIntent struct {
	IntentPolicy
	IntentCode        string `json:"intent_code"`
	IntentDisplayName string `json:"intent_display_name"`
}

// IntentCreate is the payload for creating an intent, optionally with its
// initial policies persisted in the same transaction
type IntentCreate struct {
	IntentCode  string               `json:"intent_code" validate:"required,min=1,max=255"`
	DisplayName string               `json:"display_name" validate:"required,min=1,max=255"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	IsActive    *bool                `json:"is_active"`
	Policies    []IntentPolicyCreate `json:"policies" validate:"dive"`
}

// IntentUpdate is the partial payload for updating an intent
type IntentUpdate struct {
	IntentCode  *string `json:"intent_code" validate:"omitempty,min=1,max=255"`
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

// Changes returns the column updates for the fields present in the payload
func (u *IntentUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.IntentCode != nil {
		changes["intent_code"] = *u.IntentCode
	}
	if u.DisplayName != nil {
		changes["display_name"] = *u.DisplayName
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// IntentPolicyCreate is the payload for creating an intent policy
type IntentPolicyCreate struct {
	LanguageCode        string  `json:"language_code" validate:"max=10"`
	N8nOrchestrationURL string  `json:"n8n_orchestration_url"`
	AutoProcessMinConf  float64 `json:"auto_process_min_conf" validate:"gte=0,lte=100"`
	ManualReviewMinConf float64 `json:"manual_review_min_conf" validate:"gte=0,lte=100"`
	RerouteEmail        string  `json:"reroute_email"`
	MultiIntentMode     string  `json:"multi_intent_mode" validate:"omitempty,oneof=STRICT_SINGLE AUTO_ALL AUTO_SUBSET"`
	AllowMultiAuto      bool    `json:"allow_multi_auto"`
	AllowSubsetAuto     bool    `json:"allow_subset_auto"`
}

// Normalize applies the documented defaults for absent fields
func (c *IntentPolicyCreate) Normalize() {
	if c.LanguageCode == "" {
		c.LanguageCode = DefaultLanguageCode
	}
	if c.MultiIntentMode == "" {
		c.MultiIntentMode = MultiIntentModeStrictSingle
	}
}

// IntentPolicyUpdate is the partial payload for updating an intent policy
type IntentPolicyUpdate struct {
	N8nOrchestrationURL *string  `json:"n8n_orchestration_url"`
	AutoProcessMinConf  *float64 `json:"auto_process_min_conf" validate:"omitempty,gte=0,lte=100"`
	ManualReviewMinConf *float64 `json:"manual_review_min_conf" validate:"omitempty,gte=0,lte=100"`
	RerouteEmail        *string  `json:"reroute_email"`
	MultiIntentMode     *string  `json:"multi_intent_mode" validate:"omitempty,oneof=STRICT_SINGLE AUTO_ALL AUTO_SUBSET"`
	AllowMultiAuto      *bool    `json:"allow_multi_auto"`
	AllowSubsetAuto     *bool    `json:"allow_subset_auto"`
}

// Changes returns the column updates for the fields present in the payload
func (u *IntentPolicyUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.N8nOrchestrationURL != nil {
		changes["n8n_orchestration_url"] = *u.N8nOrchestrationURL
	}
	if u.AutoProcessMinConf != nil {
		changes["auto_process_min_conf"] = *u.AutoProcessMinConf
	}
	if u.ManualReviewMinConf != nil {
		changes["manual_review_min_conf"] = *u.ManualReviewMinConf
	}
	if u.RerouteEmail != nil {
		changes["reroute_email"] = *u.RerouteEmail
	}
	if u.MultiIntentMode != nil {
		changes["multi_intent_mode"] = *u.MultiIntentMode
	}
	if u.AllowMultiAuto != nil {
		changes["allow_multi_auto"] = *u.AllowMultiAuto
	}
	if u.AllowSubsetAuto != nil {
		changes["allow_subset_auto"] = *u.AllowSubsetAuto
	}
	return changes
}
