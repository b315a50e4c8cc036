package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 商品入力の検証
type ProductValidator interface {
	ValidateProduct(in model.InsertProduct) error
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	txm         repo.TransactionManager
	validator   ProductValidator
	clock       Clock
	log         *zap.Logger
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	txm repo.TransactionManager,
	validator ProductValidator,
	clock Clock,
	log *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		txm:         txm,
		validator:   validator,
		clock:       clock,
		log:         log,
	}
}

// 公開中の商品（id順）
func (u *ProductUsecase) ListActive(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return nil, u.internal("list active products", err)
	}
	return items, nil
}

// アーカイブ済みの商品（id順）
func (u *ProductUsecase) ListArchived(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListArchived(ctx)
	if err != nil {
		return nil, u.internal("list archived products", err)
	}
	return items, nil
}

// 商品詳細（アーカイブ済みも返す）
func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, u.internal("find product", err)
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in model.InsertProduct) (model.Product, error) {
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, err
	}

	var created model.Product
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		var p model.Product
		in.ApplyTo(&p)
		p.CreatedAt = u.clock.Now()

		var err error
		created, err = r.Products().Create(ctx, p)
		if err != nil {
			return err
		}

		//監査ログ（作成）
		return r.AuditLogs().Create(ctx, u.auditLog(
			model.AuditActionCreateProduct, model.AuditResourceProduct, created.ID, nil, created,
		))
	})
	if err != nil {
		return model.Product{}, u.internal("create product", err)
	}

	u.log.Info("product created", zap.Int64("product_id", created.ID))
	return created, nil
}

// name/description/price/imageUrlsを置き換える（無ければ404、作成はしない）
func (u *ProductUsecase) Update(ctx context.Context, id int64, in model.InsertProduct) (model.Product, error) {
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, err
	}

	var updated model.Product
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}

		updated, err = r.Products().Update(ctx, id, in)
		if err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, u.auditLog(
			model.AuditActionUpdateProduct, model.AuditResourceProduct, id, before, updated,
		))
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, u.internal("update product", err)
	}

	u.log.Info("product updated", zap.Int64("product_id", id))
	return updated, nil
}

// アーカイブ（2回目もエラーにしない）
func (u *ProductUsecase) Archive(ctx context.Context, id int64) (model.Product, error) {
	var archived model.Product
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}

		archived, err = r.Products().Archive(ctx, id)
		if err != nil {
			return err
		}

		//既にアーカイブ済みなら変化なしなのでログも残さない
		if before.Archived {
			return nil
		}
		return r.AuditLogs().Create(ctx, u.auditLog(
			model.AuditActionArchiveProduct, model.AuditResourceProduct, id, before, archived,
		))
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, u.internal("archive product", err)
	}
	return archived, nil
}

// 物理削除
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Products().Delete(ctx, id); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, u.auditLog(
			model.AuditActionDeleteProduct, model.AuditResourceProduct, id, before, nil,
		))
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return u.internal("delete product", err)
	}

	u.log.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// before/afterはnilなら空文字
func (u *ProductUsecase) auditLog(action model.AuditAction, rt model.AuditResourceType, id int64, before, after interface{}) model.AuditLog {
	return newAuditLog(u.clock.Now(), action, rt, id, before, after)
}

func (u *ProductUsecase) internal(op string, err error) error {
	u.log.Error(op, zap.Error(err))
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}

func newAuditLog(now time.Time, action model.AuditAction, rt model.AuditResourceType, id int64, before, after interface{}) model.AuditLog {
	return model.AuditLog{
		Actor:        model.AuditActorAdmin,
		Action:       action,
		ResourceType: rt,
		ResourceID:   id,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    now,
	}
}

func toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
