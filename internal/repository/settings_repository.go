package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// サイト設定（1件）の保存と取得。
type SettingsRepository interface {
	// 保存されていなければ初期値を返す
	Get(ctx context.Context) (model.SiteSettings, error)
	Save(ctx context.Context, s model.SiteSettings) (model.SiteSettings, error)
}
