package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// site_settingsテーブル（1行だけ）
type SettingsGormRepository struct {
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

var _ repo.SettingsRepository = (*SettingsGormRepository)(nil)

func (r *SettingsGormRepository) Get(ctx context.Context) (model.SiteSettings, error) {
	var rec model.SiteSettingsRecord
	err := r.db.WithContext(ctx).First(&rec, model.SiteSettingsRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		//まだ保存されていない
		return model.DefaultSiteSettings(), nil
	}
	if err != nil {
		return model.SiteSettings{}, err
	}
	return rec.Payload.Data(), nil
}

// 行が無ければinsert、あれば上書き
func (r *SettingsGormRepository) Save(ctx context.Context, s model.SiteSettings) (model.SiteSettings, error) {
	rec := model.SiteSettingsRecord{
		ID:        model.SiteSettingsRecordID,
		Version:   s.Version,
		Payload:   datatypes.NewJSONType(s),
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "payload", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return model.SiteSettings{}, err
	}
	return s, nil
}
