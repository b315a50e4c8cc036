package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
// 入力の検証は呼び出し側（usecase）が済ませている前提。
type ProductRepository interface {
	// 公開中（archived=false）の商品をID順で返す
	ListActive(ctx context.Context) ([]model.Product, error)
	// アーカイブ済みの商品をID順で返す
	ListArchived(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 新しいIDを振り、archived=falseで保存する
	Create(ctx context.Context, p model.Product) (model.Product, error)
	// id/archived/createdAtは保持したまま入力で置き換える
	Update(ctx context.Context, id int64, in model.InsertProduct) (model.Product, error)
	// archived=trueにする（何度呼んでも同じ）
	Archive(ctx context.Context, id int64) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}
