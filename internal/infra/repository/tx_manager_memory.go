package repository

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

type txReposMemory struct {
	products  repo.ProductRepository
	settings  repo.SettingsRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposMemory) Products() repo.ProductRepository   { return r.products }
func (r *txReposMemory) Settings() repo.SettingsRepository  { return r.settings }
func (r *txReposMemory) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// メモリ実装は直列化するだけでロールバックはしない
type TxManagerMemory struct {
	mu    sync.Mutex
	repos *txReposMemory
}

func NewTxManagerMemory(products repo.ProductRepository, settings repo.SettingsRepository, auditLogs repo.AuditLogRepository) *TxManagerMemory {
	return &TxManagerMemory{
		repos: &txReposMemory{
			products:  products,
			settings:  settings,
			auditLogs: auditLogs,
		},
	}
}

func (tm *TxManagerMemory) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return fn(tm.repos)
}

// メモリ実装の部品一式
func NewMemoryRepositories() repo.Repositories {
	products := NewProductMemoryRepository()
	settings := NewSettingsMemoryRepository()
	auditLogs := NewAuditLogMemoryRepository()
	return repo.Repositories{
		Products:  products,
		Settings:  settings,
		AuditLogs: auditLogs,
		Tx:        NewTxManagerMemory(products, settings, auditLogs),
	}
}
