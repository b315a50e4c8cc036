package repository

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type SettingsMemoryRepository struct {
	mu       sync.RWMutex
	settings model.SiteSettings
}

// 初期値で始まる
func NewSettingsMemoryRepository() *SettingsMemoryRepository {
	return &SettingsMemoryRepository{settings: model.DefaultSiteSettings()}
}

var _ repo.SettingsRepository = (*SettingsMemoryRepository)(nil)

func (r *SettingsMemoryRepository) Get(ctx context.Context) (model.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.Clone(), nil
}

func (r *SettingsMemoryRepository) Save(ctx context.Context, s model.SiteSettings) (model.SiteSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s.Clone()
	return s.Clone(), nil
}
