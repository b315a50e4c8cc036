package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var _ repo.ProductRepository = (*ProductGormRepository)(nil)

// 公開中の商品
func (r *ProductGormRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	return r.listByArchived(ctx, false)
}

// アーカイブ済みの商品
func (r *ProductGormRepository) ListArchived(ctx context.Context) ([]model.Product, error) {
	return r.listByArchived(ctx, true)
}

func (r *ProductGormRepository) listByArchived(ctx context.Context, archived bool) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("archived = ?", archived).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成（IDはテーブルの連番）
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = 0
	p.Archived = false
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.ImageURLs == nil {
		p.ImageURLs = datatypes.JSONSlice[string]{}
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, id int64, in model.InsertProduct) (model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"image_urls":  datatypes.JSONSlice[string](append([]string{}, in.ImageURLs...)),
	})
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// アーカイブ（既にtrueでも一致行があればOK）
func (r *ProductGormRepository) Archive(ctx context.Context, id int64) (model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("archived", true)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 商品削除（物理削除）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
