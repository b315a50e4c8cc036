package validator

import (
	"storefront/internal/domain/model"
)

// 商品の作成・更新の入力を検証
func (v *Validator) ValidateProduct(in model.InsertProduct) error {
	return v.validate(in)
}
