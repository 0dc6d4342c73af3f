package models

import "time"

type Product struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`

	Category string `gorm:"size:50;index" json:"category"`
	SKU      string `gorm:"size:50;column:sku" json:"sku"`
	ImageURL string `gorm:"size:255" json:"image_url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
