package model

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                      `gorm:"type:varchar(255);not null" json:"name"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Price       string                      `gorm:"type:varchar(32);not null" json:"price"`
	ImageURLs   datatypes.JSONSlice[string] `gorm:"column:image_urls;not null" json:"imageUrls"`
	Archived    bool                        `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
}

// 作成・更新で受け取る入力（id/archived/createdAtは含まない）
type InsertProduct struct {
	Name        string   `json:"name" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       string   `json:"price" validate:"required,price,max=32"`
	ImageURLs   []string `json:"imageUrls" validate:"required,min=1,dive,required,imageurl"`
}

// 入力をProductへ写す。
func (in InsertProduct) ApplyTo(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURLs = append(datatypes.JSONSlice[string]{}, in.ImageURLs...)
}

// 呼び出し側と画像スライスを共有しないコピー
func (p Product) Clone() Product {
	out := p
	out.ImageURLs = append(datatypes.JSONSlice[string]{}, p.ImageURLs...)
	return out
}
