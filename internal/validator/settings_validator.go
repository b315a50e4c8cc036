package validator

import (
	"storefront/internal/domain/model"
)

// サイト設定のパッチを検証（指定されたフィールドだけ）
func (v *Validator) ValidateSettingsPatch(p model.SiteSettingsPatch) error {
	return v.validate(p)
}
