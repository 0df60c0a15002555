package repositories

import (
	"context"

	"github.com/kartik7022/FlowEngine/internal/database"

	"gorm.io/gorm"
)

type txKey struct{}

// gormTxManager implements TxManager on top of gorm transactions
type gormTxManager struct {
	db *database.Connection
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *database.Connection) TxManager {
	return &gormTxManager{db: db}
}

// WithinTransaction runs fn inside a single database transaction. The
// transaction handle travels in the context so repository calls made with it
// share the unit of work.
func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// session resolves the database handle for a repository call: the ambient
// transaction when one is in flight, the shared pool otherwise.
func session(ctx context.Context, db *database.Connection) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
