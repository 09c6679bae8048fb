package models

import "time"

// District is a delivery zone with its own shipping cost
type District struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	City         string    `json:"city"`
	ShippingCost float64   `gorm:"not null;default:0" json:"shipping_cost"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the District model
func (District) TableName() string {
	return "districts"
}
