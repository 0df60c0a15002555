package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNamesCarrySchema(t *testing.T) {
	assert.Equal(t, "eivs.tenants", Tenant{}.TableName())
	assert.Equal(t, "eivs.intents", Intent{}.TableName())
	assert.Equal(t, "eivs.intent_policies", IntentPolicy{}.TableName())
	assert.Equal(t, "eivs.datasources", Datasource{}.TableName())
	assert.Equal(t, "eivs.datasource_configs", DatasourceConfig{}.TableName())
	assert.Equal(t, "eivs.validation_rules", ValidationRule{}.TableName())
}

func TestUpdateChangesCarryOnlyPresentFields(t *testing.T) {
	t.Run("intent", func(t *testing.T) {
		name := "Invoice query"
		active := false
		u := IntentUpdate{DisplayName: &name, IsActive: &active}

		assert.Equal(t, map[string]interface{}{
			"display_name": "Invoice query",
			"is_active":    false,
		}, u.Changes())
	})

	t.Run("empty payload yields no changes", func(t *testing.T) {
		assert.Empty(t, (&DatasourceUpdate{}).Changes())
		assert.Empty(t, (&ValidationRuleUpdate{}).Changes())
	})

	t.Run("explicit zero values are carried", func(t *testing.T) {
		conf := 0.0
		u := IntentPolicyUpdate{AutoProcessMinConf: &conf}
		assert.Equal(t, map[string]interface{}{"auto_process_min_conf": 0.0}, u.Changes())
	})

	t.Run("datasource connection key", func(t *testing.T) {
		key := "pg-replica"
		u := DatasourceUpdate{ConnectionKey: &key}
		assert.Equal(t, map[string]interface{}{"connection_key": "pg-replica"}, u.Changes())
	})
}

func TestNormalizeDefaults(t *testing.T) {
	t.Run("intent policy", func(t *testing.T) {
		c := IntentPolicyCreate{}
		c.Normalize()
		assert.Equal(t, DefaultLanguageCode, c.LanguageCode)
		assert.Equal(t, MultiIntentModeStrictSingle, c.MultiIntentMode)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		c := IntentPolicyCreate{LanguageCode: "de", MultiIntentMode: MultiIntentModeAutoAll}
		c.Normalize()
		assert.Equal(t, "de", c.LanguageCode)
		assert.Equal(t, MultiIntentModeAutoAll, c.MultiIntentMode)
	})

	t.Run("validation rule", func(t *testing.T) {
		c := ValidationRuleCreate{}
		c.Normalize()
		assert.Equal(t, DefaultLanguageCode, c.LanguageCode)
		assert.Equal(t, SeverityCritical, c.Severity)
	})
}

func TestDatasourceSummary(t *testing.T) {
	d := Datasource{
		DatasourceID:   3,
		Name:           "crm",
		DatasourceType: "postgres",
		ConnectionKey:  "pg-main",
		Description:    "dropped from the summary",
	}

	assert.Equal(t, DatasourceSummary{
		DatasourceID:   3,
		Name:           "crm",
		DatasourceType: "postgres",
		ConnectionKey:  "pg-main",
	}, d.Summary())
}
