package repositories

import (
	"context"

	"gorm.io/gorm"
)

type gormTxRepos struct {
	carts    CartRepository
	orders   OrderRepository
	products ProductRepository
}

func (r *gormTxRepos) Carts() CartRepository       { return r.carts }
func (r *gormTxRepos) Orders() OrderRepository     { return r.orders }
func (r *gormTxRepos) Products() ProductRepository { return r.products }

func newGormTxRepos(tx *gorm.DB) TxRepos {
	return &gormTxRepos{
		carts:    NewGORMCartRepository(tx),
		orders:   NewGORMOrderRepository(tx),
		products: NewGORMProductRepository(tx),
	}
}

// GormTxManager is a GORM implementation of TxManager. The repositories
// handed to fn are rebuilt on the transaction handle, so every call made
// through them commits or rolls back as one unit.
type GormTxManager struct {
	db    *gorm.DB
	repos func(tx *gorm.DB) TxRepos
}

// NewGormTxManager creates a transaction manager over db.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db, repos: newGormTxRepos}
}

// NewGormTxManagerWithFactory creates a transaction manager whose
// per-transaction repositories come from factory. Tests use this to wrap
// repositories with failure injection while keeping real rollback.
func NewGormTxManagerWithFactory(db *gorm.DB, factory func(tx *gorm.DB) TxRepos) *GormTxManager {
	return &GormTxManager{db: db, repos: factory}
}

// WithinTx implements TxManager.
func (tm *GormTxManager) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tm.repos(tx))
	})
}
