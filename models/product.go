package models

import (
	"time"

	"gorm.io/gorm"
)

// LowStockThreshold is the stock level below which a product appears on the
// low-stock watchlist.
const LowStockThreshold = 10

// Product represents an item in the electronics catalog
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;index" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Brand         string         `json:"brand"`
	SKU           string         `gorm:"uniqueIndex" json:"sku"`
	Price         float64        `gorm:"not null" json:"price"`
	RegularPrice  float64        `json:"regular_price"`
	StockQuantity int            `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	CategoryID    *uint          `gorm:"index" json:"category_id"`
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product belongs on the low-stock watchlist.
func (p Product) IsLowStock() bool {
	return p.StockQuantity < LowStockThreshold
}

// ProductImage is one entry in a product's ordered image gallery
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	S3Key     string `json:"s3_key"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

// TableName specifies the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}
