package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"easyfood/models"
)

// OrderSummary is an order row with its line count, for list screens.
type OrderSummary struct {
	models.Order
	ItemCount int `json:"item_count"`
}

// OrderItemView is an order line joined with product display data.
type OrderItemView struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
}

// OrderDetails is a full order with its lines.
type OrderDetails struct {
	models.Order
	Items []OrderItemView `json:"items"`
}

// CreateOrder promotes the user's active cart into an immutable order: it
// snapshots every cart item, assigns the next sequential order number,
// totals the items plus the fixed fees, and clears the cart. Everything
// happens in one transaction, so a failure leaves the cart untouched.
func (s *Store) CreateOrder(ctx context.Context, userID, deliveryAddress, customerName, customerPhone string) (string, error) {
	var orderID string
	err := s.withUserLock(userID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			cart, err := activeCart(tx, userID)
			if err != nil {
				return err
			}
			if cart == nil {
				return ErrEmptyCart
			}

			var items []models.CartItem
			if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
				return fmt.Errorf("load cart items: %w", err)
			}
			if len(items) == 0 {
				return ErrEmptyCart
			}

			total := decimal.Zero
			for _, item := range items {
				total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
			total = total.Add(s.fees.Delivery).Add(s.fees.Service)

			number, err := nextOrderNumber(tx)
			if err != nil {
				return err
			}

			order := models.Order{
				ID:              uuid.NewString(),
				UserID:          userID,
				RestaurantID:    cart.RestaurantID,
				Status:          models.StatusPreparing,
				TotalAmount:     total,
				DeliveryFee:     s.fees.Delivery,
				ServiceFee:      s.fees.Service,
				DeliveryAddress: deliveryAddress,
				CustomerName:    customerName,
				CustomerPhone:   customerPhone,
				OrderNumber:     number,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("insert order: %w", err)
			}

			for _, item := range items {
				orderItem := models.OrderItem{
					ID:        uuid.NewString(),
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Price:     item.Price,
					Notes:     item.Notes,
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return fmt.Errorf("insert order item: %w", err)
				}
			}

			if err := clearUserCartTx(tx, userID); err != nil {
				return err
			}

			orderID = order.ID
			s.log.Info("order created",
				"order_id", order.ID,
				"order_number", order.OrderNumber,
				"user_id", userID,
				"total", total.StringFixed(2))
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	s.events.publish(Event{Topic: TopicOrdersChanged, UserID: userID})
	return orderID, nil
}

// GetOrders returns the user's orders, newest first, each with its line
// count.
func (s *Store) GetOrders(ctx context.Context, userID string) ([]OrderSummary, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
			Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count order items: %w", err)
		}
		summaries = append(summaries, OrderSummary{Order: order, ItemCount: int(count)})
	}
	return summaries, nil
}

// GetOrdersByRestaurant returns a restaurant's orders, newest first,
// optionally filtered by status. Feeds the vendor dashboard.
func (s *Store) GetOrdersByRestaurant(ctx context.Context, restaurantID string, status models.OrderStatus) ([]OrderSummary, error) {
	query := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list restaurant orders: %w", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
			Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count order items: %w", err)
		}
		summaries = append(summaries, OrderSummary{Order: order, ItemCount: int(count)})
	}
	return summaries, nil
}

// GetOrderDetails returns one order with its lines joined against product
// display data.
func (s *Store) GetOrderDetails(ctx context.Context, orderID string) (*OrderDetails, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	items := []OrderItemView{}
	if err := s.db.WithContext(ctx).Table(`"OrderItems" oi`).
		Select("oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.notes, p.name, p.image_url").
		Joins(`JOIN "Products" p ON oi.product_id = p.id`).
		Where("oi.order_id = ?", orderID).
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return &OrderDetails{Order: order, Items: items}, nil
}

// UpdateOrderStatus sets the order's status. The store only enforces that
// the value is one of the five known statuses; lifecycle ordering is the
// caller's concern (vendor dashboard, simulated auto-advance).
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}

	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).Update("status", status).Error; err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	s.events.publish(Event{Topic: TopicOrdersChanged, UserID: order.UserID})
	return nil
}

func nextOrderNumber(tx *gorm.DB) (int64, error) {
	var max int64
	if err := tx.Model(&models.Order{}).
		Select("COALESCE(MAX(order_number), 0)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return max + 1, nil
}
