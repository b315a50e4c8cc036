package model

import "time"

// 商品作成、設定更新など。
type AuditAction string

const (
	AuditActionCreateProduct  AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct  AuditAction = "UPDATE_PRODUCT"
	AuditActionArchiveProduct AuditAction = "ARCHIVE_PRODUCT"
	AuditActionDeleteProduct  AuditAction = "DELETE_PRODUCT"
	//サイト設定を更新した操作。
	AuditActionUpdateSettings AuditAction = "UPDATE_SETTINGS"
)

// 何に対する操作か
type AuditResourceType string

const (
	//商品に対する操作。
	AuditResourceProduct AuditResourceType = "product"

	//サイト設定に対する操作（IDは常に1）。
	AuditResourceSettings AuditResourceType = "settings"
)

// 管理者はパスワード1つなので操作者は固定
const AuditActorAdmin = "admin"

// 監査ログ（管理者操作ログ）。
// 「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Actor string `gorm:"type:varchar(50);not null" json:"actor"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`

	ResourceID int64 `gorm:"not null;index" json:"resourceId"`

	//JSON文字列で保存する。削除後・作成前は空。
	BeforeJSON string `gorm:"type:text" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
