package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"easyfood/models"
)

// CartItemView is a cart line joined with product data for display. The
// image reference is classified so the presentation layer knows whether to
// load it from the network, from bundled assets, or show a placeholder.
type CartItemView struct {
	ID           string          `json:"id"`
	CartID       string          `json:"cart_id"`
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Notes        string          `json:"notes"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url"`
	RestaurantID string          `json:"restaurant_id"`
	ImageType    string          `json:"image_type"`
}

const (
	ImageRemote  = "remote"
	ImageLocal   = "local"
	ImageDefault = "default"
)

func classifyImage(url string) string {
	switch {
	case strings.HasPrefix(url, "http"):
		return ImageRemote
	case strings.HasPrefix(url, "assets/"), strings.HasPrefix(url, "images/"):
		return ImageLocal
	default:
		return ImageDefault
	}
}

// AddToCart applies a quantity delta for (userID, restaurantID, productID).
// Adding from a different restaurant than the one the user is currently
// ordering from clears the previous cart's items first, so only one
// restaurant's cart is ever non-empty. A repeated add merges by summing
// quantity; a merged quantity of zero or less deletes the line.
func (s *Store) AddToCart(ctx context.Context, userID, restaurantID, productID string, delta int, price decimal.Decimal, notes string) error {
	err := s.withUserLock(userID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("user %s: %w", userID, ErrNotFound)
				}
				return fmt.Errorf("load user: %w", err)
			}

			active, err := activeCart(tx, userID)
			if err != nil {
				return err
			}
			if active != nil && active.RestaurantID != restaurantID {
				if err := tx.Where("cart_id = ?", active.ID).
					Delete(&models.CartItem{}).Error; err != nil {
					return fmt.Errorf("clear previous restaurant cart: %w", err)
				}
			}

			cart, err := getOrCreateCart(tx, userID, restaurantID)
			if err != nil {
				return err
			}

			var item models.CartItem
			err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
				First(&item).Error
			switch {
			case err == nil:
				quantity := item.Quantity + delta
				if quantity <= 0 {
					if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
						return fmt.Errorf("delete cart item: %w", err)
					}
				} else if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
					Update("quantity", quantity).Error; err != nil {
					return fmt.Errorf("update cart item: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if delta <= 0 {
					return nil
				}
				item = models.CartItem{
					ID:        uuid.NewString(),
					CartID:    cart.ID,
					ProductID: productID,
					Quantity:  delta,
					Price:     price,
					Notes:     notes,
				}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("insert cart item: %w", err)
				}
			default:
				return fmt.Errorf("load cart item: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	return nil
}

// RemoveFromCart deletes a cart line unconditionally. Removing an id that
// does not exist is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, cartItemID string) error {
	// Resolve the owning user first so the delete serializes with that
	// user's other mutations.
	var userID string
	err := s.db.WithContext(ctx).
		Table(`"CartItems" ci`).
		Select("c.user_id").
		Joins(`JOIN "Cart" c ON ci.cart_id = c.id`).
		Where("ci.id = ?", cartItemID).
		Scan(&userID).Error
	if err != nil {
		return fmt.Errorf("resolve cart item owner: %w", err)
	}
	if userID == "" {
		return nil
	}

	if err := s.withUserLock(userID, func() error {
		if err := s.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", cartItemID).Error; err != nil {
			return fmt.Errorf("delete cart item: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	return nil
}

// GetCartItems returns the items of the user's active cart joined with
// product display data, or an empty slice when no cart has items.
func (s *Store) GetCartItems(ctx context.Context, userID string) ([]CartItemView, error) {
	views := []CartItemView{}
	err := s.withUserLock(userID, func() error {
		tx := s.db.WithContext(ctx)
		cart, err := activeCart(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return nil
		}
		if err := tx.Table(`"CartItems" ci`).
			Select("ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price, ci.notes, p.name, p.image_url, p.restaurant_id").
			Joins(`JOIN "Products" p ON ci.product_id = p.id`).
			Where("ci.cart_id = ?", cart.ID).
			Scan(&views).Error; err != nil {
			return fmt.Errorf("load cart items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].ImageType = classifyImage(views[i].ImageURL)
	}
	return views, nil
}

// ClearUserCart deletes every cart item and cart row owned by the user.
// Called after successful order promotion and on account deletion.
func (s *Store) ClearUserCart(ctx context.Context, userID string) error {
	err := s.withUserLock(userID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return clearUserCartTx(tx, userID)
		})
	})
	if err != nil {
		return err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	return nil
}

func clearUserCartTx(tx *gorm.DB, userID string) error {
	if err := tx.Where(`cart_id IN (SELECT id FROM "Cart" WHERE user_id = ?)`, userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
		return fmt.Errorf("delete carts: %w", err)
	}
	return nil
}

// MigrateGuestCartToUser reassigns the guest's cart(s) to the authenticated
// user. If the user already has a non-empty cart for the same restaurant
// the items merge by the same quantity-sum rule as AddToCart. If the user's
// non-empty cart belongs to a different restaurant the migration stops with
// ErrCartConflict and the caller decides whether to clear one side first.
func (s *Store) MigrateGuestCartToUser(ctx context.Context, guestID, userID string) error {
	if guestID == userID {
		return nil
	}
	err := s.withUserLocks(guestID, userID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var guestCarts []models.Cart
			if err := tx.Where("user_id = ?", guestID).
				Order("created_at ASC").Find(&guestCarts).Error; err != nil {
				return fmt.Errorf("load guest carts: %w", err)
			}

			target, err := activeCart(tx, userID)
			if err != nil {
				return err
			}

			for _, gc := range guestCarts {
				var items []models.CartItem
				if err := tx.Where("cart_id = ?", gc.ID).Find(&items).Error; err != nil {
					return fmt.Errorf("load guest cart items: %w", err)
				}
				if len(items) == 0 {
					if err := tx.Delete(&models.Cart{}, "id = ?", gc.ID).Error; err != nil {
						return fmt.Errorf("drop empty guest cart: %w", err)
					}
					continue
				}

				switch {
				case target == nil:
					if err := tx.Model(&models.Cart{}).Where("id = ?", gc.ID).
						Update("user_id", userID).Error; err != nil {
						return fmt.Errorf("reassign guest cart: %w", err)
					}
				case target.RestaurantID == gc.RestaurantID:
					if err := mergeCartItems(tx, target.ID, items); err != nil {
						return err
					}
					if err := tx.Delete(&models.Cart{}, "id = ?", gc.ID).Error; err != nil {
						return fmt.Errorf("drop merged guest cart: %w", err)
					}
				default:
					return fmt.Errorf("guest cart for restaurant %s vs active cart for %s: %w",
						gc.RestaurantID, target.RestaurantID, ErrCartConflict)
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: guestID})
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	return nil
}

// mergeCartItems folds guest items into the target cart using the
// quantity-sum rule.
func mergeCartItems(tx *gorm.DB, targetCartID string, items []models.CartItem) error {
	for _, item := range items {
		var existing models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", targetCartID, item.ProductID).
			First(&existing).Error
		switch {
		case err == nil:
			quantity := existing.Quantity + item.Quantity
			if quantity <= 0 {
				if err := tx.Delete(&models.CartItem{}, "id = ?", existing.ID).Error; err != nil {
					return fmt.Errorf("delete merged item: %w", err)
				}
			} else if err := tx.Model(&models.CartItem{}).Where("id = ?", existing.ID).
				Update("quantity", quantity).Error; err != nil {
				return fmt.Errorf("merge item quantity: %w", err)
			}
			if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return fmt.Errorf("delete guest item: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("cart_id", targetCartID).Error; err != nil {
				return fmt.Errorf("move guest item: %w", err)
			}
		default:
			return fmt.Errorf("load target item: %w", err)
		}
	}
	return nil
}

// activeCart returns the user's most recent cart that has at least one
// item, or nil when every cart is empty.
func activeCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where(`user_id = ? AND EXISTS (SELECT 1 FROM "CartItems" WHERE cart_id = "Cart".id)`, userID).
		Order("created_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	return &cart, nil
}

func getOrCreateCart(tx *gorm.DB, userID, restaurantID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Order("created_at DESC").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	cart = models.Cart{
		ID:           uuid.NewString(),
		UserID:       userID,
		RestaurantID: restaurantID,
	}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return &cart, nil
}
