package container

import (
	"database/sql"

	"github.com/kartik7022/FlowEngine/internal/config"
	"github.com/kartik7022/FlowEngine/internal/database"
	"github.com/kartik7022/FlowEngine/internal/handlers"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/repositories"
	"github.com/kartik7022/FlowEngine/internal/server"
	"github.com/kartik7022/FlowEngine/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides dependency injection configuration
var Module = fx.Options(
	// Configuration
	fx.Provide(config.LoadConfig),

	// Logging
	fx.Provide(logger.NewLogger),

	// Database
	fx.Provide(database.NewConnection),
	fx.Provide(func(conn *database.Connection) *gorm.DB {
		return conn.DB
	}),
	fx.Provide(func(conn *database.Connection) (*sql.DB, error) {
		return conn.DB.DB()
	}),
	fx.Provide(database.NewMigrator),
	fx.Provide(database.NewRedisClient),

	// Repositories
	fx.Provide(repositories.NewTxManager),
	fx.Provide(repositories.NewTenantRepository),
	fx.Provide(repositories.NewIntentRepository),
	fx.Provide(repositories.NewIntentPolicyRepository),
	fx.Provide(repositories.NewDatasourceRepository),
	fx.Provide(repositories.NewDatasourceConfigRepository),
	fx.Provide(repositories.NewValidationRuleRepository),

	// Services
	fx.Provide(services.NewLinkageSynchronizer),
	fx.Provide(services.NewConfigCacheService),
	fx.Provide(services.NewTenantService),
	fx.Provide(services.NewIntentService),
	fx.Provide(services.NewIntentPolicyService),
	fx.Provide(services.NewDatasourceService),
	fx.Provide(services.NewDatasourceConfigService),
	fx.Provide(services.NewValidationRuleService),

	// Handlers
	fx.Provide(handlers.NewRegistryAPIHandler),
	fx.Provide(handlers.NewHealthHandler),

	// Server
	fx.Provide(server.NewServer),

	// Models (for validation and serialization)
	fx.Provide(models.NewValidationService),

	// Invoke migrations on startup
	fx.Invoke(func(migrator *database.Migrator) error {
		return migrator.Up()
	}),
)
