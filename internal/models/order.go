package models

import "time"

// Order and OrderItem are schema-only for now: no order-processing logic
// exists yet, the tables are migrated so the catalog can grow into them.

type Order struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	OrderNumber   string `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	ShippingStreet  string `gorm:"size:255" json:"shipping_street"`
	ShippingCity    string `gorm:"size:100" json:"shipping_city"`
	ShippingState   string `gorm:"size:100" json:"shipping_state"`
	ShippingZipCode string `gorm:"size:20" json:"shipping_zip_code"`
	ShippingCountry string `gorm:"size:100" json:"shipping_country"`

	// pending, confirmed, processing, shipped, delivered, cancelled
	Status string `gorm:"size:20;index;default:'pending'" json:"status"`
	// pending, paid, failed, refunded
	PaymentStatus  string `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentMethod  string `gorm:"size:50" json:"payment_method"`
	TrackingNumber string `gorm:"size:100" json:"tracking_number"`

	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`

	Notes string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index" json:"product_id"`

	// Snapshot of the product at order time.
	ProductName string `gorm:"size:100;not null" json:"product_name"`
	ProductSKU  string `gorm:"size:50;column:product_sku" json:"product_sku"`

	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}
