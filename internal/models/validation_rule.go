package models

import (
	"time"
)

// Rule severities
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// ValidationRule is an ordered check bound to one intent and one datasource,
// executed in ascending execution_order within an (intent, language) pair.
// rule_code is unique within a tenant+intent, not globally.
type ValidationRule struct {
	RuleID          int       `json:"rule_id" gorm:"primaryKey;autoIncrement"`
	IntentID        int       `json:"intent_id" gorm:"not null;uniqueIndex:uq_eivs_validation_rules_tenant_intent_code,priority:2;index:idx_eivs_validation_rules_intent_lang,priority:1" validate:"required"`
	LanguageCode    string    `json:"language_code" gorm:"size:10;not null;default:multi;index:idx_eivs_validation_rules_intent_lang,priority:2" validate:"max=10"`
	TenantID        string    `json:"tenant_id" gorm:"not null;default:global;index:idx_eivs_validation_rules_tenant;uniqueIndex:uq_eivs_validation_rules_tenant_intent_code,priority:1"`
	RuleCode        string    `json:"rule_code" gorm:"not null;uniqueIndex:uq_eivs_validation_rules_tenant_intent_code,priority:3" validate:"required,min=1"`
	RuleName        string    `json:"rule_name" gorm:"not null" validate:"required,min=1"`
	RuleDescription string    `json:"rule_description" gorm:"not null" validate:"required,min=1"`
	DatasourceID    int       `json:"datasource_id" gorm:"not null" validate:"required"`
	ExecutionOrder  int       `json:"execution_order" gorm:"not null;index:idx_eivs_validation_rules_intent_lang,priority:3" validate:"required,gte=1"`
	Severity        string    `json:"severity" gorm:"not null;default:CRITICAL" validate:"oneof=CRITICAL WARNING"`
	IsActive        bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Datasource *Datasource `json:"datasource,omitempty" gorm:"foreignKey:TenantID,DatasourceID;references:TenantID,DatasourceID"`
}

// TableName returns the table name for ValidationRule
func (ValidationRule) TableName() string {
	return "eivs.validation_rules"
}

// ValidationRuleCreate is the payload for creating a validation rule
type ValidationRuleCreate struct {
	IntentID        int    `json:"intent_id" validate:"required"`
	LanguageCode    string `json:"language_code" validate:"max=10"`
	RuleCode        string `json:"rule_code" validate:"required,min=1"`
	RuleName        string `json:"rule_name" validate:"required,min=1"`
	RuleDescription string `json:"rule_description" validate:"required,min=1"`
	DatasourceID    int    `json:"datasource_id" validate:"required"`
	ExecutionOrder  int    `json:"execution_order" validate:"required"`
	Severity        string `json:"severity"`
	IsActive        *bool  `json:"is_active"`
}

// Normalize applies the documented defaults for absent fields
func (c *ValidationRuleCreate) Normalize() {
	if c.LanguageCode == "" {
		c.LanguageCode = DefaultLanguageCode
	}
	if c.Severity == "" {
		c.Severity = SeverityCritical
	}
}

// ValidationRuleUpdate is the partial payload for updating a rule
type ValidationRuleUpdate struct {
	IntentID        *int    `json:"intent_id"`
	LanguageCode    *string `json:"language_code" validate:"omitempty,max=10"`
	RuleCode        *string `json:"rule_code" validate:"omitempty,min=1"`
	RuleName        *string `json:"rule_name" validate:"omitempty,min=1"`
	RuleDescription *string `json:"rule_description" validate:"omitempty,min=1"`
	DatasourceID    *int    `json:"datasource_id"`
	ExecutionOrder  *int    `json:"execution_order"`
	Severity        *string `json:"severity"`
	IsActive        *bool   `json:"is_active"`
}

// Changes returns the column updates for the fields present in the payload
func (u *ValidationRuleUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.IntentID != nil {
		changes["intent_id"] = *u.IntentID
	}
	if u.LanguageCode != nil {
		changes["language_code"] = *u.LanguageCode
	}
	if u.RuleCode != nil {
		changes["rule_code"] = *u.RuleCode
	}
	if u.RuleName != nil {
		changes["rule_name"] = *u.RuleName
	}
	if u.RuleDescription != nil {
		changes["rule_description"] = *u.RuleDescription
	}
	if u.DatasourceID != nil {
		changes["datasource_id"] = *u.DatasourceID
	}
	if u.ExecutionOrder != nil {
		changes["execution_order"] = *u.ExecutionOrder
	}
	if u.Severity != nil {
		changes["severity"] = *u.Severity
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// ValidationRuleFilter narrows rule listings
type ValidationRuleFilter struct {
	IntentID     int
	LanguageCode string
	ActiveOnly   bool
}

// NextOrderResponse is the next-execution-order probe result
type NextOrderResponse struct {
	IntentID           int    `json:"intent_id"`
	LanguageCode       string `json:"language_code"`
	NextExecutionOrder int    `json:"next_execution_order"`
}
