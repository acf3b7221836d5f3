package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-checkout selection for one (user, restaurant)
// pair. A user may own several cart rows, but at most one of them holds
// items at any time; the store clears the previous restaurant's items when
// the user starts ordering somewhere else.
type Cart struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	RestaurantID string     `json:"restaurant_id" gorm:"not null"`
	Items        []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Cart) TableName() string { return "Cart" }

// CartItem is one product line in a cart. (cart_id, product_id) is unique;
// repeated adds merge by summing quantity and a quantity of zero or less
// deletes the row.
type CartItem struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	CartID    string          `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID string          `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Notes     string          `json:"notes"`
}

func (CartItem) TableName() string { return "CartItems" }
