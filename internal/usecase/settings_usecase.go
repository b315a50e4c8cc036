package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 設定パッチの検証
type SettingsValidator interface {
	ValidateSettingsPatch(p model.SiteSettingsPatch) error
}

type SettingsUsecase struct {
	settingsRepo repo.SettingsRepository
	txm          repo.TransactionManager
	validator    SettingsValidator
	clock        Clock
	log          *zap.Logger
}

// DI
func NewSettingsUsecase(
	settingsRepo repo.SettingsRepository,
	txm repo.TransactionManager,
	validator SettingsValidator,
	clock Clock,
	log *zap.Logger,
) *SettingsUsecase {
	return &SettingsUsecase{
		settingsRepo: settingsRepo,
		txm:          txm,
		validator:    validator,
		clock:        clock,
		log:          log,
	}
}

// 現在の設定（未保存なら初期値）
func (u *SettingsUsecase) Get(ctx context.Context) (model.SiteSettings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if err != nil {
		u.log.Error("get settings", zap.Error(err))
		return model.SiteSettings{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return s, nil
}

// 部分更新。渡されたフィールドだけ置き換える。
func (u *SettingsUsecase) Update(ctx context.Context, patch model.SiteSettingsPatch) (model.SiteSettings, error) {
	if err := u.validator.ValidateSettingsPatch(patch); err != nil {
		return model.SiteSettings{}, err
	}

	var saved model.SiteSettings
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Settings().Get(ctx)
		if err != nil {
			return err
		}

		saved, err = r.Settings().Save(ctx, before.Apply(patch))
		if err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, newAuditLog(
			u.clock.Now(), model.AuditActionUpdateSettings, model.AuditResourceSettings,
			model.SiteSettingsRecordID, before, saved,
		))
	})
	if err != nil {
		u.log.Error("update settings", zap.Error(err))
		return model.SiteSettings{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.log.Info("settings updated")
	return saved, nil
}
