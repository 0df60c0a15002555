package database

import (
	"github.com/kartik7022/FlowEngine/internal/models"
)

// Migrator handles database migrations
type Migrator struct {
	db *Connection
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *Connection) *Migrator {
	return &Migrator{db: db}
}

// Up bootstraps the registry schema and runs all pending migrations
func (m *Migrator) Up() error {
	// All registry tables live under a fixed logical namespace.
	if err := m.db.Exec("CREATE SCHEMA IF NOT EXISTS eivs").Error; err != nil {
		return err
	}

	return m.db.AutoMigrate(
		&models.Tenant{},
		&models.Intent{},
		&models.IntentPolicy{},
		&models.Datasource{},
		&models.DatasourceConfig{},
		&models.ValidationRule{},
	)
}

// Down rolls back all migrations (for testing purposes)
func (m *Migrator) Down() error {
	return m.db.Migrator().DropTable(
		&models.ValidationRule{},
		&models.DatasourceConfig{},
		&models.Datasource{},
		&models.IntentPolicy{},
		&models.Intent{},
		&models.Tenant{},
	)
}
