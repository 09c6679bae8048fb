package models

import "time"

// Banner is one slide of the storefront hero slider
type Banner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `json:"title"`
	ImageS3Key string    `json:"image_s3_key"`
	ImageURL   string    `gorm:"not null" json:"image_url"`
	LinkURL    string    `json:"link_url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Active     bool      `gorm:"not null" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Banner model
func (Banner) TableName() string {
	return "banners"
}
