package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products  repo.ProductRepository
	settings  repo.SettingsRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) Settings() repo.SettingsRepository  { return r.settings }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:  NewProductGormRepository(tx),
			settings:  NewSettingsGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}

// GORM実装の部品一式
func NewGormRepositories(db *gorm.DB) repo.Repositories {
	return repo.Repositories{
		Products:  NewProductGormRepository(db),
		Settings:  NewSettingsGormRepository(db),
		AuditLogs: NewAuditLogGormRepository(db),
		Tx:        NewTxManagerGorm(db),
	}
}
