package repository

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type auditLogMemoryRepository struct {
	mu     sync.RWMutex
	logs   []model.AuditLog
	lastID int64
}

func NewAuditLogMemoryRepository() repo.AuditLogRepository {
	return &auditLogMemoryRepository{}
}

func (r *auditLogMemoryRepository) Create(ctx context.Context, log model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	log.ID = r.lastID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *auditLogMemoryRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	limit := filter.NormalizedLimit()

	out := []model.AuditLog{}
	skipped := 0
	//新しい順
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		l := r.logs[i]
		if filter.Action != nil && l.Action != *filter.Action {
			continue
		}
		if filter.ResourceType != nil && l.ResourceType != *filter.ResourceType {
			continue
		}
		if filter.ResourceID != nil && l.ResourceID != *filter.ResourceID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
