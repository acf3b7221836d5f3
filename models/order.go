package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPreparing, StatusReady, StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is an immutable snapshot of a cart taken at checkout. Only Status
// mutates after creation. OrderNumber is the human-facing sequential
// counter, independent of the ID.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	UserID          string          `json:"user_id" gorm:"index;not null"`
	RestaurantID    string          `json:"restaurant_id" gorm:"not null"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'preparing'"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2)"`
	ServiceFee      decimal.Decimal `json:"service_fee" gorm:"type:decimal(10,2)"`
	DeliveryAddress string          `json:"delivery_address"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	OrderNumber     int64           `json:"order_number"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Order) TableName() string { return "Orders" }

// OrderItem is a point-in-time copy of a cart item; price and quantity are
// snapshotted at promotion and never recomputed.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	OrderID   string          `json:"order_id" gorm:"index;not null"`
	ProductID string          `json:"product_id" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Notes     string          `json:"notes"`
}

func (OrderItem) TableName() string { return "OrderItems" }
