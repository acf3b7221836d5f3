package models

import "github.com/shopspring/decimal"

// Product is immutable reference data seeded from the static catalog.
// End users never create products; carts and orders reference them by id.
type Product struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	RestaurantID string          `json:"restaurant_id" gorm:"index;not null"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL     string          `json:"image_url"`
	Category     string          `json:"category"`
	Available    bool            `json:"available" gorm:"default:true"`
}

func (Product) TableName() string { return "Products" }
