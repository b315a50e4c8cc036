package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
	log       *zap.Logger
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository, log *zap.Logger) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo, log: log}
}

// 管理画面用の一覧（新しい順）
func (u *AuditLogUsecase) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	filter.Limit = filter.NormalizedLimit()

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		u.log.Error("list audit logs", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}
